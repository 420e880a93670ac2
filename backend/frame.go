package backend

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kbukum/validator-gateway/protocol"
)

const frameHeaderSize = 4

// WriteFrame writes msg as one length-prefixed frame.
func WriteFrame(w io.Writer, msg *protocol.Message) error {
	body := msg.Marshal()
	buf := make([]byte, frameHeaderSize, frameHeaderSize+len(body))
	binary.BigEndian.PutUint32(buf, uint32(len(body)))
	buf = append(buf, body...)
	_, err := w.Write(buf)
	return err
}

// ReadFrame reads one frame and decodes it. Frames longer than maxSize are
// rejected without reading their body.
func ReadFrame(r io.Reader, maxSize int) (*protocol.Message, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(header[:])
	if maxSize > 0 && int64(n) > int64(maxSize) {
		return nil, fmt.Errorf("backend: frame of %d bytes exceeds limit of %d", n, maxSize)
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("backend: reading frame body: %w", err)
	}

	msg := new(protocol.Message)
	if err := msg.Unmarshal(body); err != nil {
		return nil, fmt.Errorf("backend: decoding frame: %w", err)
	}
	return msg, nil
}
