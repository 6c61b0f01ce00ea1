// Package artifacts persists validated generation results in SQLite.
//
// The Store keys each artifact by video, task, and subtype, and upserts on
// that key so regenerating replaces the previous result instead of piling up
// duplicates. Payloads are stored as JSON exactly as validated; reading one
// back returns the same structure the pipeline produced.
//
// Schema changes are additive migration files under migrations/; the store
// applies any it has not yet recorded on open.
package artifacts
