package protocol

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed is returned when bytes cannot be decoded as the expected message.
var ErrMalformed = errors.New("protocol: malformed message")

type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

func (f field) expect(typ protowire.Type) error {
	if f.typ != typ {
		return fmt.Errorf("%w: field %d has wire type %d, want %d", ErrMalformed, f.num, f.typ, typ)
	}
	return nil
}

func (f field) str() (string, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(f.bytes), nil
}

func (f field) raw() ([]byte, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	return append([]byte(nil), f.bytes...), nil
}

func (f field) uint() (uint64, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return f.varint, nil
}

func (f field) boolean() (bool, error) {
	v, err := f.uint()
	return v != 0, err
}

// walk calls fn for every top-level field in b. Unknown fields are passed to
// fn as well; callers ignore the numbers they do not know.
func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendElem writes one element of a repeated bytes field, empty or not.
func appendElem(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendStrings(b []byte, num protowire.Number, vs []string) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	return b
}

func appendUint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	return appendUint(b, num, 1)
}

// appendMessage writes an embedded message. Unlike scalar fields, a present but
// empty message is still emitted.
func appendMessage(b []byte, num protowire.Number, m interface{ Marshal() []byte }) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.Marshal())
}

// Unmarshaler is implemented by every message in this package.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// DecodeAll decodes every raw item into a fresh T.
func DecodeAll[T any, PT interface {
	*T
	Unmarshaler
}](items [][]byte) ([]*T, error) {
	out := make([]*T, 0, len(items))
	for i, raw := range items {
		v := PT(new(T))
		if err := v.Unmarshal(raw); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, (*T)(v))
	}
	return out, nil
}

// DecodeOne decodes raw into a fresh T.
func DecodeOne[T any, PT interface {
	*T
	Unmarshaler
}](raw []byte) (*T, error) {
	v := PT(new(T))
	if err := v.Unmarshal(raw); err != nil {
		return nil, err
	}
	return (*T)(v), nil
}
