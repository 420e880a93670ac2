// Package bootstrap assembles and runs the gateway.
//
// New wires the validator channel, the dispatcher, the HTTP server and the
// REST handlers from one configuration; Run starts them in that order, waits
// for a shutdown signal and stops them in reverse.
//
//	cfg, err := config.Load(config.WithFlags(flags))
//	if err != nil {
//	    return err
//	}
//	app, err := bootstrap.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	return app.Run(ctx)
package bootstrap
