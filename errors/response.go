package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON body of every failed HTTP request.
type ErrorResponse struct {
	Code    uint8  `json:"code"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Render converts a GatewayError into its client-facing body.
func (e *GatewayError) Render() ErrorResponse {
	d := e.Kind.Lookup()
	return ErrorResponse{
		Code:    d.Code,
		Title:   d.Title,
		Message: d.Message + e.Detail,
	}
}

// AsGatewayError extracts a GatewayError from err's chain.
func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if stderrors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}

// Is reports whether err carries a GatewayError of the given kind.
func Is(err error, kind Kind) bool {
	gwErr, ok := AsGatewayError(err)
	return ok && gwErr.Kind == kind
}

// Wrap converts any error into a GatewayError. Errors that already carry one are
// returned unchanged; anything else becomes UnknownValidator.
func Wrap(err error) *GatewayError {
	if err == nil {
		return nil
	}
	if gwErr, ok := AsGatewayError(err); ok {
		return gwErr
	}
	return New(UnknownValidator).WithCause(err)
}
