// Package decode turns HTTP request bodies into protocol requests.
//
// Each endpoint that takes a body declares a Shape: the media type it
// accepts, how to parse the bytes and what makes the result valid. Decode
// applies the checks in a fixed order (size, content type, parse, validate)
// and stops at the first failure, which is always a *errors.GatewayError.
package decode
