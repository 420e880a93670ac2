// Package component defines the lifecycle contract shared by the gateway's
// long-running parts (validator connection, HTTP server) and the Registry that
// starts them in order and stops them in reverse.
package component
