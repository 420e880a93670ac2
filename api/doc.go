// Package api implements the gateway's REST endpoints. Each handler decodes
// and validates the request, sends one protocol request through the
// dispatcher, maps the response status onto the error taxonomy and renders
// the JSON envelope.
//
//	h := api.NewHandler(d, api.Config{MaxBodySize: 10 << 20, Timeout: 300 * time.Second}, log)
//	h.Register(srv.GinEngine())
package api
