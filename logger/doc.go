// Package logger provides structured logging for the API client runtime
// using zerolog.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "petstore").WithComponent("dispatch")
//	log.Debug("request settled", logger.Fields(logger.FieldStatus, 200))
//
// Clients built without a logger use Nop, which discards everything.
package logger
