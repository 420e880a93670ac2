// Package version exposes the gateway's build information.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/validator-gateway/version.Version=1.2.0" ./cmd/validator-gateway
//
// Unset values fall back to the VCS stamps recorded by the Go toolchain.
package version
