package artifacts

import (
	"encoding/json"
	"fmt"
	"time"

	"tubenote/internal/generation"
)

// Artifact is one stored generation result.
type Artifact struct {
	ID        int64
	VideoID   string
	Task      string
	Subtype   string
	Payload   string
	RequestID string
	Model     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// quizPayload mirrors the validated quiz structure for storage.
type quizPayload struct {
	Questions []quizQuestionPayload `json:"questions"`
}

type quizQuestionPayload struct {
	Question      string    `json:"question"`
	Options       [4]string `json:"options"`
	CorrectOption int       `json:"correct_option"`
}

type summaryPayload struct {
	Text       string `json:"text"`
	Confidence string `json:"confidence"`
}

type quotesPayload struct {
	Quotes []string `json:"quotes"`
}

type contentPayload struct {
	Content string `json:"content"`
}

type categoriesPayload struct {
	Comments []categorizedCommentPayload `json:"comments"`
}

type categorizedCommentPayload struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// EncodePayload serializes a pipeline result for storage.
func EncodePayload(result generation.Result) (string, error) {
	var payload any
	switch result.Task {
	case generation.TaskQuiz:
		if result.Quiz == nil {
			return "", fmt.Errorf("quiz result has no quiz")
		}
		questions := make([]quizQuestionPayload, 0, len(result.Quiz.Questions))
		for _, q := range result.Quiz.Questions {
			questions = append(questions, quizQuestionPayload{
				Question:      q.Question,
				Options:       q.Options,
				CorrectOption: q.CorrectOption,
			})
		}
		payload = quizPayload{Questions: questions}
	case generation.TaskSummary:
		if result.Summary == nil {
			return "", fmt.Errorf("summary result has no summary")
		}
		payload = summaryPayload{Text: result.Summary.Text, Confidence: string(result.Summary.Confidence)}
	case generation.TaskQuoteSuggestion:
		payload = quotesPayload{Quotes: result.Quotes}
	case generation.TaskEntryDraft:
		payload = contentPayload{Content: result.Content}
	case generation.TaskCommentCategorization:
		comments := make([]categorizedCommentPayload, 0, len(result.Comments))
		for _, c := range result.Comments {
			comments = append(comments, categorizedCommentPayload{
				ID:       c.ID,
				Text:     c.Text,
				Category: string(c.Category),
			})
		}
		payload = categoriesPayload{Comments: comments}
	default:
		return "", fmt.Errorf("unknown task %q", result.Task)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}

// DecodeQuiz reconstructs a quiz draft from a stored artifact.
func DecodeQuiz(artifact *Artifact) (*generation.QuizDraft, error) {
	var payload quizPayload
	if err := json.Unmarshal([]byte(artifact.Payload), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal quiz payload: %w", err)
	}
	draft := &generation.QuizDraft{Questions: make([]generation.QuizQuestion, 0, len(payload.Questions))}
	for _, q := range payload.Questions {
		draft.Questions = append(draft.Questions, generation.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectOption: q.CorrectOption,
		})
	}
	return draft, nil
}

// DecodeSummary reconstructs a summary from a stored artifact.
func DecodeSummary(artifact *Artifact) (*generation.Summary, error) {
	var payload summaryPayload
	if err := json.Unmarshal([]byte(artifact.Payload), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal summary payload: %w", err)
	}
	return &generation.Summary{
		Text:       payload.Text,
		Confidence: generation.Confidence(payload.Confidence),
	}, nil
}

// DecodeQuotes reconstructs a quote list from a stored artifact.
func DecodeQuotes(artifact *Artifact) ([]string, error) {
	var payload quotesPayload
	if err := json.Unmarshal([]byte(artifact.Payload), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal quotes payload: %w", err)
	}
	return payload.Quotes, nil
}

// DecodeContent reconstructs free-text entry content from a stored artifact.
func DecodeContent(artifact *Artifact) (string, error) {
	var payload contentPayload
	if err := json.Unmarshal([]byte(artifact.Payload), &payload); err != nil {
		return "", fmt.Errorf("unmarshal content payload: %w", err)
	}
	return payload.Content, nil
}

// DecodeComments reconstructs categorized comments from a stored artifact.
func DecodeComments(artifact *Artifact) ([]generation.CategorizedComment, error) {
	var payload categoriesPayload
	if err := json.Unmarshal([]byte(artifact.Payload), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal comments payload: %w", err)
	}
	comments := make([]generation.CategorizedComment, 0, len(payload.Comments))
	for _, c := range payload.Comments {
		comments = append(comments, generation.CategorizedComment{
			Comment:  generation.Comment{ID: c.ID, Text: c.Text},
			Category: generation.Category(c.Category),
		})
	}
	return comments, nil
}
