// Package generation turns raw source material (a video transcript, or
// title/channel metadata as a fallback) into validated study artifacts by
// prompting the Gemini API and strictly validating its free-form responses.
//
// The pipeline runs strictly downward: resolve source, build prompt, call
// the generation client once, then locate and validate the embedded payload.
// Only the summary task carries a fallback tier; every other task surfaces
// its first failure directly. All failures are tagged with the services
// package error taxonomy, so callers branch on kind rather than message text.
package generation
