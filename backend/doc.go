// Package backend is the transport to the validator.
//
// A Channel sends framed protocol messages and reports everything that comes
// back to a bound Listener: correlated responses, the validator's global
// not-ready broadcast, and loss of the connection. It never correlates
// anything itself.
//
// StreamChannel is the TCP implementation. Frames are a 4-byte big-endian
// length followed by an encoded protocol.Message. It answers validator pings,
// and redials with backoff after the connection drops.
package backend
