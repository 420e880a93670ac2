// Package logger wraps zerolog for the gateway.
//
// Loggers are constructed once from Config and handed to each component,
// which tags its own copy:
//
//	log := logger.New(&cfg.Logging, cfg.Service.Name).WithComponent("dispatcher")
//	log.Debug("attempt sent", logger.Fields(logger.FieldCorrelationID, id, logger.FieldAttempt, 1))
//
// Output is JSON by default or a compact console format.
package logger
