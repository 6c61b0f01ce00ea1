// Package services defines shared utilities consumed by the generation
// pipeline stages and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers, task names,
//     and video identifiers for logging.
//   - Structured error markers plus the Wrap helper that translate stage
//     failures into the pipeline's closed error taxonomy, so callers can
//     branch on Kind instead of matching message text.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error classification, observability) stays uniform across stages.
package services
