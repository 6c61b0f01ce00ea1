// Package transcript resolves YouTube transcripts for the generation
// pipeline.
//
// The resolver is a pure I/O boundary: it shells out to a helper script,
// joins the returned caption fragments into one text blob, and collapses
// every transport or parse failure into a source-unavailable error. Text
// below the minimum viable length is reported as unavailable rather than
// returned, so callers never attempt generation on unusable material.
package transcript
