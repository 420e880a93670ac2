package decode

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	gwerrors "github.com/kbukum/validator-gateway/errors"
)

// DefaultMaxSize is the default ceiling for request bodies, 10 MiB.
const DefaultMaxSize int64 = 10 << 20

// Shape describes the body one endpoint accepts.
type Shape[T any] struct {
	// ContentType is the required media type, compared without parameters.
	ContentType string
	// WrongContentType is reported when the media type differs.
	WrongContentType gwerrors.Kind
	// Invalid is reported when Unmarshal fails.
	Invalid gwerrors.Kind
	// Unmarshal parses the raw body.
	Unmarshal func(body []byte) (T, error)
	// Validate checks the parsed value. Nil accepts everything.
	Validate func(v T) *gwerrors.GatewayError
}

// TooLarge returns the error for a body over maxSize.
func TooLarge(maxSize int64) *gwerrors.GatewayError {
	return gwerrors.New(gwerrors.RequestBodyTooLarge).WithDetail(strconv.FormatInt(maxSize, 10))
}

// ReadBody reads r into memory. A declared contentLength over maxSize is
// rejected before anything is read, and at most maxSize+1 bytes are ever
// read. A negative contentLength means unknown.
func ReadBody(r io.Reader, contentLength, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if contentLength > maxSize {
		return nil, TooLarge(maxSize)
	}

	body, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, TooLarge(tooLarge.Limit)
	}
	if err != nil {
		return nil, gwerrors.New(gwerrors.UnknownValidator).WithCause(fmt.Errorf("reading request body: %w", err))
	}
	if int64(len(body)) > maxSize {
		return nil, TooLarge(maxSize)
	}
	return body, nil
}

// Decode checks body against shape. Either a fully valid value is returned or
// exactly one *errors.GatewayError:
//
//  1. a body over maxSize fails with RequestBodyTooLarge and is not parsed;
//  2. a media type other than shape.ContentType fails with shape.WrongContentType;
//  3. a body shape.Unmarshal rejects fails with shape.Invalid;
//  4. a value shape.Validate rejects fails with the error it returns.
func Decode[T any](contentType string, body []byte, maxSize int64, shape Shape[T]) (T, error) {
	var zero T
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if int64(len(body)) > maxSize {
		return zero, TooLarge(maxSize)
	}

	if !MatchContentType(contentType, shape.ContentType) {
		return zero, gwerrors.New(shape.WrongContentType).
			WithCause(fmt.Errorf("content type %q, want %q", contentType, shape.ContentType))
	}

	v, err := shape.Unmarshal(body)
	if err != nil {
		return zero, gwerrors.New(shape.Invalid).WithCause(err)
	}

	if shape.Validate != nil {
		if gwErr := shape.Validate(v); gwErr != nil {
			return zero, gwErr
		}
	}
	return v, nil
}

// MatchContentType reports whether header names the media type want.
// Parameters such as charset are ignored.
func MatchContentType(header, want string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	return err == nil && mediaType == want
}
