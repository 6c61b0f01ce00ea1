package generation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"tubenote/internal/logging"
	"tubenote/internal/services"
	"tubenote/internal/services/gemini"
	"tubenote/internal/transcript"
)

// Generator issues one generation call and returns the raw envelope.
type Generator interface {
	Generate(ctx context.Context, prompt string) (gemini.Envelope, error)
}

// Pipeline wires source resolution, prompt building, generation, and
// response validation into per-task operations. It holds no mutable state;
// every invocation is independent and safe to repeat.
type Pipeline struct {
	resolver  transcript.Resolver
	generator Generator
	logger    *slog.Logger
}

// NewPipeline constructs a pipeline from its collaborators.
func NewPipeline(resolver transcript.Resolver, generator Generator, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		resolver:  resolver,
		generator: generator,
		logger:    logging.NewComponentLogger(logger, "generation"),
	}
}

// Invoke dispatches a task against the supplied source material. Task
// dispatch is exhaustive; adding a task without wiring it here is a compile
// and review error, not a silent fallthrough.
func (p *Pipeline) Invoke(ctx context.Context, task Task, source Source) (Result, error) {
	result := Result{Task: task}
	switch task {
	case TaskQuiz:
		quiz, err := p.GenerateQuiz(ctx, source.VideoID, source.Title)
		if err != nil {
			return result, err
		}
		result.Quiz = quiz
	case TaskSummary:
		summary, err := p.SummarizeVideo(ctx, source.VideoID, source.Title, source.Channel)
		if err != nil {
			return result, err
		}
		result.Summary = summary
	case TaskQuoteSuggestion:
		quotes, err := p.SuggestQuotes(ctx, source.VideoID, source.Title)
		if err != nil {
			return result, err
		}
		result.Quotes = quotes
	case TaskEntryDraft:
		content, err := p.GenerateEntry(ctx, source.VideoID, source.EntryKind, source.Title)
		if err != nil {
			return result, err
		}
		result.Content = content
	case TaskCommentCategorization:
		comments, err := p.CategorizeComments(ctx, source.Comments, source.Title)
		if err != nil {
			return result, err
		}
		result.Comments = comments
	default:
		return result, services.Wrap(services.ErrInvalidInput, "pipeline", "invoke", "unknown task", nil)
	}
	return result, nil
}

// GenerateQuiz produces a validated five-question quiz from the video's
// transcript. There is no fallback tier: resolver and validation failures
// surface directly.
func (p *Pipeline) GenerateQuiz(ctx context.Context, videoID, title string) (*QuizDraft, error) {
	ctx = p.taskContext(ctx, TaskQuiz, videoID)
	logger := logging.WithContext(ctx, p.logger)

	text, err := p.resolver.Resolve(ctx, videoID)
	if err != nil {
		return nil, err
	}
	env, err := p.generator.Generate(ctx, buildQuizPrompt(orTitle(title), text))
	if err != nil {
		return nil, err
	}
	quiz, err := extractQuiz(env)
	if err != nil {
		logger.Warn("quiz generation failed",
			logging.String(logging.FieldErrorKind, string(services.Kind(err))),
			logging.Error(err))
		return nil, err
	}
	logger.Info("quiz generated", logging.Int("questions", len(quiz.Questions)))
	return quiz, nil
}

// SuggestQuotes extracts 5-8 quotable statements from the video's transcript.
func (p *Pipeline) SuggestQuotes(ctx context.Context, videoID, title string) ([]string, error) {
	ctx = p.taskContext(ctx, TaskQuoteSuggestion, videoID)
	logger := logging.WithContext(ctx, p.logger)

	text, err := p.resolver.Resolve(ctx, videoID)
	if err != nil {
		return nil, err
	}
	env, err := p.generator.Generate(ctx, buildSuggestQuotesPrompt(orTitle(title), text))
	if err != nil {
		return nil, err
	}
	quotes, err := extractQuotes(env)
	if err != nil {
		logger.Warn("quote suggestion failed",
			logging.String(logging.FieldErrorKind, string(services.Kind(err))),
			logging.Error(err))
		return nil, err
	}
	logger.Info("quotes suggested", logging.Int("quotes", len(quotes)))
	return quotes, nil
}

// GenerateEntry drafts free-text entry content for the given subtype.
func (p *Pipeline) GenerateEntry(ctx context.Context, videoID string, kind EntryKind, title string) (string, error) {
	ctx = p.taskContext(ctx, TaskEntryDraft, videoID)
	logger := logging.WithContext(ctx, p.logger)

	text, err := p.resolver.Resolve(ctx, videoID)
	if err != nil {
		return "", err
	}
	env, err := p.generator.Generate(ctx, buildEntryPrompt(kind, orTitle(title), text))
	if err != nil {
		return "", err
	}
	content, err := extractContent(env, TaskEntryDraft.String())
	if err != nil {
		logger.Warn("entry generation failed",
			logging.String("entry_kind", kind.String()),
			logging.String(logging.FieldErrorKind, string(services.Kind(err))),
			logging.Error(err))
		return "", err
	}
	logger.Info("entry generated", logging.String("entry_kind", kind.String()))
	return content, nil
}

// CategorizeComments assigns each comment a category from the fixed
// vocabulary. Categorization degrades per comment: positions the model
// skipped or mislabeled come back unassigned rather than failing the batch.
func (p *Pipeline) CategorizeComments(ctx context.Context, comments []Comment, videoTitle string) ([]CategorizedComment, error) {
	ctx = p.taskContext(ctx, TaskCommentCategorization, "")
	logger := logging.WithContext(ctx, p.logger)

	if len(comments) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "comment_categorization", "categorize", "no comments supplied", nil)
	}
	env, err := p.generator.Generate(ctx, buildCategorizePrompt(comments, videoTitle))
	if err != nil {
		return nil, err
	}
	categorized, err := extractCategories(env, comments)
	if err != nil {
		logger.Warn("comment categorization failed",
			logging.String(logging.FieldErrorKind, string(services.Kind(err))),
			logging.Error(err))
		return nil, err
	}
	assigned := 0
	for _, comment := range categorized {
		if comment.Category != CategoryUnassigned {
			assigned++
		}
	}
	logger.Info("comments categorized",
		logging.Int("comments", len(categorized)),
		logging.Int("assigned", assigned))
	return categorized, nil
}

// SummarizeVideo generates a study guide with a two-state fallback: a
// transcript attempt first, then a title-only attempt on any failure. At most
// one fallback hop is made, and the later failure wins because it reflects
// the last attempt actually made.
func (p *Pipeline) SummarizeVideo(ctx context.Context, videoID, title, channel string) (*Summary, error) {
	ctx = p.taskContext(ctx, TaskSummary, videoID)
	logger := logging.WithContext(ctx, p.logger)

	if strings.TrimSpace(videoID) == "" {
		return nil, services.Wrap(services.ErrInvalidInput, "summary", "summarize", "video id required", nil)
	}

	summary, err := p.summarizeFromTranscript(ctx, videoID, title)
	if err == nil {
		logger.Info("summary generated", logging.String("confidence", string(summary.Confidence)))
		return summary, nil
	}
	logger.Info("transcript summary failed, falling back to title",
		logging.String(logging.FieldErrorKind, string(services.Kind(err))),
		logging.Error(err))

	summary, err = p.summarizeFromTitle(ctx, title, channel)
	if err != nil {
		logger.Warn("summary generation failed",
			logging.String(logging.FieldErrorKind, string(services.Kind(err))),
			logging.Error(err))
		return nil, err
	}
	logger.Info("summary generated", logging.String("confidence", string(summary.Confidence)))
	return summary, nil
}

func (p *Pipeline) summarizeFromTranscript(ctx context.Context, videoID, title string) (*Summary, error) {
	text, err := p.resolver.Resolve(ctx, videoID)
	if err != nil {
		// The generation client is never called without usable source text.
		return nil, err
	}
	env, err := p.generator.Generate(ctx, buildSummaryTranscriptPrompt(orTitle(title), text))
	if err != nil {
		return nil, err
	}
	content, err := extractContent(env, TaskSummary.String())
	if err != nil {
		return nil, err
	}
	return &Summary{Text: content, Confidence: ConfidencePrimary}, nil
}

func (p *Pipeline) summarizeFromTitle(ctx context.Context, title, channel string) (*Summary, error) {
	env, err := p.generator.Generate(ctx, buildSummaryTitlePrompt(orTitle(title), channel))
	if err != nil {
		return nil, err
	}
	content, err := extractContent(env, TaskSummary.String())
	if err != nil {
		return nil, err
	}
	return &Summary{Text: FallbackDisclaimer + content, Confidence: ConfidenceFallback}, nil
}

func (p *Pipeline) taskContext(ctx context.Context, task Task, videoID string) context.Context {
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	ctx = services.WithTask(ctx, task.String())
	if videoID != "" {
		ctx = services.WithVideoID(ctx, videoID)
	}
	return ctx
}
