// Package logging centralizes slog construction and the structured field
// vocabulary used across the generation pipeline.
//
// Loggers are built from configuration (console or JSON format, optional log
// file alongside stdout) and enriched per request via WithContext, which
// folds correlation id, task, and video id fields out of the context so every
// stage logs with the same keys.
package logging
