// Command validator-gateway serves the REST API of a validator node.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/validator-gateway/bootstrap"
	"github.com/kbukum/validator-gateway/config"
	"github.com/kbukum/validator-gateway/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(config.ServiceName, pflag.ContinueOnError)
	fs.StringP("bind", "B", config.DefaultBind, "identify host and port for api to run on")
	fs.StringP("connect", "C", config.DefaultConnect, "specify URL to connect to a running validator")
	fs.Float64P("timeout", "t", config.DefaultTimeout, "set time (in seconds) to wait for a validator response")
	fs.Int64("client-max-size", config.DefaultClientMaxSize, "the max size (in bytes) of a request body")
	fs.CountP("verbose", "v", "enable more verbose output to stderr")
	fs.String("config", "", "path to a YAML configuration file")
	fs.String("env-file", "", "path to a .env file")
	fs.Bool("validate", false, "validate the configuration and exit")
	fs.Bool("version", false, "print version information and exit")
	return fs
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintf(stdout, "%s %s\n", config.ServiceName, version.Get())
		return 0
	}

	opts := []config.LoaderOption{config.WithFlags(fs)}
	if path, _ := fs.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if path, _ := fs.GetString("env-file"); path != "" {
		opts = append(opts, config.WithEnvFile(path))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	if v, _ := fs.GetBool("validate"); v {
		fmt.Fprintf(stdout, "Configuration valid\n")
		fmt.Fprintf(stdout, "  Bind:    %s\n", cfg.Bind)
		fmt.Fprintf(stdout, "  Connect: %s\n", cfg.Backend.Address)
		fmt.Fprintf(stdout, "  Timeout: %s\n", cfg.TimeoutDuration())
		return 0
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing: %v\n", err)
		return 1
	}
	if err := app.Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
