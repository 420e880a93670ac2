package validation

import (
	"strconv"

	gwerrors "github.com/kbukum/validator-gateway/errors"
)

// Validator checks query parameters in order and keeps the first failure.
// Later checks are skipped once one has failed.
type Validator struct {
	err *gwerrors.GatewayError
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// Err returns the first failure, or nil.
func (v *Validator) Err() *gwerrors.GatewayError {
	return v.err
}

// HasErrors returns true if a check has failed.
func (v *Validator) HasErrors() bool {
	return v.err != nil
}

func (v *Validator) fail(kind gwerrors.Kind, value string) *Validator {
	if v.err == nil {
		v.err = gwerrors.New(kind).WithDetail(value)
	}
	return v
}

// ResourceID checks an optional block, batch or transaction id.
func (v *Validator) ResourceID(_ string, value string) *Validator {
	if v.err != nil || value == "" {
		return v
	}
	if !IsResourceID(value) {
		return v.fail(gwerrors.InvalidResourceId, value)
	}
	return v
}

// ResourceIDs checks every id of a list.
func (v *Validator) ResourceIDs(field string, values []string) *Validator {
	for _, id := range values {
		if id == "" {
			v.fail(gwerrors.InvalidResourceId, id)
		}
		v.ResourceID(field, id)
	}
	return v
}

// StateAddress checks a full state address.
func (v *Validator) StateAddress(_ string, value string) *Validator {
	if v.err != nil {
		return v
	}
	if !IsStateAddress(value) {
		return v.fail(gwerrors.InvalidStateAddress, value)
	}
	return v
}

// AddressPrefix checks an optional state address prefix.
func (v *Validator) AddressPrefix(_ string, value string) *Validator {
	if v.err != nil {
		return v
	}
	if !IsAddressPrefix(value) {
		return v.fail(gwerrors.InvalidStateAddress, value)
	}
	return v
}

// Count checks an optional page size: a positive integer up to MaxCount.
func (v *Validator) Count(_ string, value string) *Validator {
	if v.err != nil || value == "" {
		return v
	}
	if _, ok := ParseCount(value); !ok {
		return v.fail(gwerrors.CountInvalid, "")
	}
	return v
}

// ParseCount parses a page size. ok is false unless 0 < n <= MaxCount.
func ParseCount(value string) (n int32, ok bool) {
	i, err := strconv.ParseInt(value, 10, 32)
	if err != nil || i <= 0 || i > MaxCount {
		return 0, false
	}
	return int32(i), true
}
