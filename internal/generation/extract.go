package generation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tubenote/internal/services"
	"tubenote/internal/services/gemini"
)

// envelopeText classifies vendor-level errors and pulls the generated text
// out of the envelope. Quota and rate-limit markers in the vendor message map
// to a retry-later failure; any other vendor error surfaces with its message
// folded in.
func envelopeText(env gemini.Envelope, stage string) (string, error) {
	if env.Error != nil {
		return "", classifyAPIError(stage, env.Error.Message)
	}
	text := env.Text()
	if strings.TrimSpace(text) == "" {
		return "", services.Wrap(services.ErrEmptyGeneration, stage, "extract text", "no generated content", nil)
	}
	return text, nil
}

func classifyAPIError(stage, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "API error"
	}
	if strings.Contains(message, "429") || strings.Contains(strings.ToLower(message), "quota") {
		return services.Wrap(services.ErrRateLimited, stage, "generate",
			"request limit reached, wait before retrying: "+message, nil)
	}
	return services.Wrap(services.ErrUpstream, stage, "generate", message, nil)
}

type quizPayload struct {
	Questions []quizQuestionPayload `json:"questions"`
}

type quizQuestionPayload struct {
	QuestionText  string `json:"question_text"`
	Option1       string `json:"option_1"`
	Option2       string `json:"option_2"`
	Option3       string `json:"option_3"`
	Option4       string `json:"option_4"`
	CorrectOption any    `json:"correct_option"`
}

// extractQuiz validates the quiz response. Any single invalid question fails
// the entire batch; a partial quiz is unusable.
func extractQuiz(env gemini.Envelope) (*QuizDraft, error) {
	const stage = "quiz"
	text, err := envelopeText(env, stage)
	if err != nil {
		return nil, err
	}
	span, ok := firstJSONSpan(text)
	if !ok {
		return nil, services.Wrap(services.ErrUnparsable, stage, "locate payload", "no JSON object in response", nil)
	}
	var payload quizPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, services.Wrap(services.ErrUnparsable, stage, "parse payload", "", err)
	}
	if len(payload.Questions) != 5 {
		return nil, services.Wrap(services.ErrSchemaViolation, stage, "validate questions",
			fmt.Sprintf("expected 5 questions, got %d", len(payload.Questions)), nil)
	}

	draft := &QuizDraft{Questions: make([]QuizQuestion, 0, len(payload.Questions))}
	for i, q := range payload.Questions {
		options := [4]string{q.Option1, q.Option2, q.Option3, q.Option4}
		if strings.TrimSpace(q.QuestionText) == "" {
			return nil, invalidQuestion(i, "question text is blank")
		}
		for j, option := range options {
			if strings.TrimSpace(option) == "" {
				return nil, invalidQuestion(i, fmt.Sprintf("option %d is blank", j+1))
			}
		}
		correct := coerceInt(q.CorrectOption)
		if correct < 1 || correct > 4 {
			return nil, invalidQuestion(i, fmt.Sprintf("correct_option %v out of range", q.CorrectOption))
		}
		draft.Questions = append(draft.Questions, QuizQuestion{
			Question:      q.QuestionText,
			Options:       options,
			CorrectOption: correct,
		})
	}
	return draft, nil
}

func invalidQuestion(index int, reason string) error {
	return services.Wrap(services.ErrSchemaViolation, "quiz", "validate questions",
		fmt.Sprintf("question %d: %s", index+1, reason), nil)
}

// coerceInt converts the loosely typed correct_option value to an int.
// Models return it as a JSON number or a numeric string interchangeably.
func coerceInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	case int:
		return v
	default:
		return 0
	}
}

type quotesPayload struct {
	Quotes []string `json:"quotes"`
}

// extractQuotes validates the quote suggestion response: a non-empty array of
// non-blank strings, with no upper bound enforced.
func extractQuotes(env gemini.Envelope) ([]string, error) {
	const stage = "quote_suggestion"
	text, err := envelopeText(env, stage)
	if err != nil {
		return nil, err
	}
	span, ok := firstJSONSpan(text)
	if !ok {
		return nil, services.Wrap(services.ErrUnparsable, stage, "locate payload", "no JSON object in response", nil)
	}
	var payload quotesPayload
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, services.Wrap(services.ErrUnparsable, stage, "parse payload", "", err)
	}
	if len(payload.Quotes) == 0 {
		return nil, services.Wrap(services.ErrSchemaViolation, stage, "validate quotes", "no quotes found", nil)
	}
	for i, quote := range payload.Quotes {
		if strings.TrimSpace(quote) == "" {
			return nil, services.Wrap(services.ErrSchemaViolation, stage, "validate quotes",
				fmt.Sprintf("quote %d is blank", i+1), nil)
		}
	}
	return payload.Quotes, nil
}

// extractCategories re-attaches categories to the original comments by
// 1-based position. Missing or out-of-vocabulary assignments degrade that
// single comment to unassigned instead of failing the batch; a partially
// categorized batch is still useful.
func extractCategories(env gemini.Envelope, comments []Comment) ([]CategorizedComment, error) {
	const stage = "comment_categorization"
	text, err := envelopeText(env, stage)
	if err != nil {
		return nil, err
	}
	span, ok := firstJSONSpan(text)
	if !ok {
		return nil, services.Wrap(services.ErrUnparsable, stage, "locate payload", "no JSON object in response", nil)
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, services.Wrap(services.ErrUnparsable, stage, "parse payload", "", err)
	}
	mapping, ok := raw["categories"].(map[string]any)
	if !ok {
		return nil, services.Wrap(services.ErrSchemaViolation, stage, "validate categories", "categories is not a mapping", nil)
	}

	categorized := make([]CategorizedComment, 0, len(comments))
	for i, comment := range comments {
		category := CategoryUnassigned
		if value, ok := mapping[strconv.Itoa(i+1)].(string); ok && ValidCategory(value) {
			category = Category(value)
		}
		categorized = append(categorized, CategorizedComment{Comment: comment, Category: category})
	}
	return categorized, nil
}

// extractContent validates free-text responses: non-blank after trimming, no
// structural parse attempted.
func extractContent(env gemini.Envelope, stage string) (string, error) {
	text, err := envelopeText(env, stage)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
