// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the ray id set by the rayid middleware from a
// Fiber context and attaches it to the log entry, so every line logged while
// serving a request (including the sync runs it triggers) can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (default) or console
//   - File: optional path of a rotating JSON log file (lumberjack), sized by
//     MaxSizeMB and MaxBackups
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
