package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"tubenote/internal/config"
	"tubenote/internal/logging"
	"tubenote/internal/services"
)

// MinLength is the minimum viable transcript length in characters. Shorter
// transcripts are reported as unavailable.
const MinLength = 100

const defaultTimeout = 30 * time.Second

// Resolver retrieves the transcript text for a video identifier.
type Resolver interface {
	Resolve(ctx context.Context, videoID string) (string, error)
}

// CommandRunner executes the helper process and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ScriptResolver fetches transcripts through the python helper script.
type ScriptResolver struct {
	cfg    config.Transcript
	logger *slog.Logger
	runner CommandRunner
}

// NewScriptResolver constructs a resolver from configuration.
func NewScriptResolver(cfg config.Transcript, logger *slog.Logger) *ScriptResolver {
	return &ScriptResolver{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "transcript"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (r *ScriptResolver) WithCommandRunner(runner CommandRunner) {
	r.runner = runner
}

type scriptPayload struct {
	Success    bool             `json:"success"`
	Transcript []scriptFragment `json:"transcript"`
	Error      string           `json:"error"`
}

type scriptFragment struct {
	Text string `json:"text"`
}

// Resolve fetches the transcript for videoID and joins its fragments in
// source order. A blank identifier is a caller error; every helper failure
// collapses to a source-unavailable error.
func (r *ScriptResolver) Resolve(ctx context.Context, videoID string) (string, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return "", services.Wrap(services.ErrInvalidInput, "transcript", "resolve", "video id required", nil)
	}

	timeout := defaultTimeout
	if r.cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(r.cfg.TimeoutSeconds) * time.Second
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := logging.WithContext(ctx, r.logger)

	stdout, err := r.run(runCtx, r.pythonBinary(), r.cfg.ScriptPath, videoID)
	if err != nil {
		logger.Warn("transcript helper failed", logging.String("video_id", videoID), logging.Error(err))
		return "", services.Wrap(services.ErrSourceUnavailable, "transcript", "run helper", "transcript fetch failed", err)
	}

	var payload scriptPayload
	if err := json.Unmarshal(stdout, &payload); err != nil {
		logger.Warn("transcript helper output unreadable", logging.String("video_id", videoID), logging.Error(err))
		return "", services.Wrap(services.ErrSourceUnavailable, "transcript", "parse helper output", "transcript fetch failed", err)
	}
	if !payload.Success {
		reason := strings.TrimSpace(payload.Error)
		if reason == "" {
			reason = "transcript not available"
		}
		logger.Info("transcript not available", logging.String("video_id", videoID), logging.String("reason", reason))
		return "", services.Wrap(services.ErrSourceUnavailable, "transcript", "resolve", reason, nil)
	}

	text := joinFragments(payload.Transcript)
	if length := utf8.RuneCountInString(text); length < MinLength {
		logger.Info("transcript too short",
			logging.String("video_id", videoID),
			logging.Int("length", length))
		return "", services.Wrap(services.ErrSourceUnavailable, "transcript", "resolve",
			fmt.Sprintf("transcript too short (%d chars)", length), nil)
	}
	return text, nil
}

func (r *ScriptResolver) pythonBinary() string {
	if strings.TrimSpace(r.cfg.PythonBinary) != "" {
		return r.cfg.PythonBinary
	}
	return "python3"
}

func (r *ScriptResolver) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.runner != nil {
		return r.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stderr = &stderr
	stdout, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout, nil
}

func joinFragments(fragments []scriptFragment) string {
	texts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		texts = append(texts, fragment.Text)
	}
	return strings.Join(texts, "\n")
}
