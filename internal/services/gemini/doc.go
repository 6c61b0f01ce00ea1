// Package gemini wraps the Gemini generateContent REST API.
//
// The client issues a single bounded-timeout POST per call and returns the
// raw response envelope untouched, including vendor-level error payloads.
// Interpreting the envelope (error classification, text extraction, JSON
// validation) is the generation package's job; retry and fallback policy
// belong to callers, so the client never retries on its own.
package gemini
