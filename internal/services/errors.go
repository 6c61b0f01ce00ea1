package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for the pipeline error taxonomy. Every stage converts its
// internal failures into one of these before returning; no raw transport or
// parse error crosses a package boundary untagged.
var (
	ErrUnconfigured      = errors.New("unconfigured")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrTimeout           = errors.New("timeout")
	ErrRateLimited       = errors.New("rate limited")
	ErrUpstream          = errors.New("upstream error")
	ErrEmptyGeneration   = errors.New("empty generation")
	ErrUnparsable        = errors.New("unparsable response")
	ErrSchemaViolation   = errors.New("schema violation")
)

// ErrorKind names an error taxonomy bucket for logging and caller branching.
type ErrorKind string

const (
	KindUnconfigured      ErrorKind = "unconfigured"
	KindInvalidInput      ErrorKind = "invalid_input"
	KindSourceUnavailable ErrorKind = "source_unavailable"
	KindTimeout           ErrorKind = "timeout"
	KindRateLimited       ErrorKind = "rate_limited"
	KindUpstream          ErrorKind = "upstream_error"
	KindEmptyGeneration   ErrorKind = "empty_generation"
	KindUnparsable        ErrorKind = "unparsable_response"
	KindSchemaViolation   ErrorKind = "schema_violation"
	KindUnknown           ErrorKind = "unknown"
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrUpstream
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind classifies an error against the taxonomy markers. Errors without a
// marker report KindUnknown.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnconfigured):
		return KindUnconfigured
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrSourceUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrEmptyGeneration):
		return KindEmptyGeneration
	case errors.Is(err, ErrUnparsable):
		return KindUnparsable
	case errors.Is(err, ErrSchemaViolation):
		return KindSchemaViolation
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	default:
		return KindUnknown
	}
}

// Recoverable reports whether the summary fallback tier may absorb the error.
// Only source resolution failures qualify; everything else surfaces as-is for
// non-summary tasks.
func Recoverable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
