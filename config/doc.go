// Package config loads the gateway configuration.
//
// Values come from a YAML file, then from VALIDATOR_GATEWAY_ environment
// variables (optionally read from a .env file), then from command line flags.
// Underscores in variable names may separate sections or belong to a key, so
// VALIDATOR_GATEWAY_BACKEND_SEND_TIMEOUT sets backend.send_timeout.
//
// # Usage
//
//	cfg, err := config.Load(config.WithFlags(flags))
//
// The top-level keys bind, connect, timeout, client_max_size and verbose match
// the command line and seed the server, backend, retry and logging sections.
package config
