// Package logger provides structured logging for REST API services.
//
// This package extends the standard library's log/slog with context-based
// attribute injection, an ANSI color console handler, and daily-rotated
// plain-text log files. The logger is always passed around as a dependency;
// there is no package-level singleton.
//
// # Overview
//
// The package provides:
//   - Context extractors that inject request-scoped values (e.g., request IDs) into every entry
//   - A decorator that wraps any slog.Handler to add extraction behavior
//   - A console handler with color-coded levels for local development
//   - Daily-rotated file handlers: stdout-YYYY-MM-DD.log and stderr-YYYY-MM-DD.log
//   - Multi-handler support for routing logs to several destinations at once
//
// # Basic Usage
//
// Create a logger writing to the console and a log directory:
//
//	log := logger.New(
//		logger.WithDirectory("./logs"),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// console: 2024-03-01 10:22:41.003 [01HT...] [INFO] request processed status=200
//	// logs/stdout-2024-03-01.log receives the same line without color codes
//
// Records at ERROR and above go to stderr-YYYY-MM-DD.log, everything below to
// stdout-YYYY-MM-DD.log. Files roll over at midnight local time based on the
// date embedded in the file name.
//
// # Context Extractors
//
// A ContextExtractor is a function that extracts a log attribute from context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every log call, ensuring fresh values for request-scoped
// data. Return false to skip the attribute for that entry. The request ID
// attribute, when present, is rendered in the fixed [<requestId>] slot of the
// line format rather than as a trailing key=value pair.
package logger
