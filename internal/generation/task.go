package generation

import (
	"fmt"
	"strings"
)

// Task selects which prompt builder and validator an invocation uses.
type Task int

const (
	TaskQuiz Task = iota
	TaskSummary
	TaskQuoteSuggestion
	TaskEntryDraft
	TaskCommentCategorization
)

func (t Task) String() string {
	switch t {
	case TaskQuiz:
		return "quiz"
	case TaskSummary:
		return "summary"
	case TaskQuoteSuggestion:
		return "quote_suggestion"
	case TaskEntryDraft:
		return "entry_draft"
	case TaskCommentCategorization:
		return "comment_categorization"
	default:
		return fmt.Sprintf("task(%d)", int(t))
	}
}

// EntryKind selects the entry draft subtype.
type EntryKind int

const (
	EntryKeyPoint EntryKind = iota
	EntryQuote
	EntryAction
)

func (k EntryKind) String() string {
	switch k {
	case EntryKeyPoint:
		return "key_point"
	case EntryQuote:
		return "quote"
	case EntryAction:
		return "action"
	default:
		return fmt.Sprintf("entry(%d)", int(k))
	}
}

// ParseEntryKind maps a user-facing name to an EntryKind.
func ParseEntryKind(value string) (EntryKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "keypoint", "key_point", "key-point":
		return EntryKeyPoint, nil
	case "quote":
		return EntryQuote, nil
	case "action":
		return EntryAction, nil
	default:
		return 0, fmt.Errorf("unknown entry type %q (expected keypoint, quote, or action)", value)
	}
}

// Category is a comment category from the fixed vocabulary. The zero value
// means the model did not assign a usable category to the comment.
type Category string

const (
	CategoryUnassigned  Category = ""
	CategoryFunny       Category = "funny"
	CategoryInformative Category = "informative"
	CategoryEmotional   Category = "emotional"
	CategoryRelatable   Category = "relatable"
)

// Categories lists the closed vocabulary in prompt order.
var Categories = []Category{CategoryFunny, CategoryInformative, CategoryEmotional, CategoryRelatable}

// ValidCategory reports whether value belongs to the vocabulary.
func ValidCategory(value string) bool {
	switch Category(value) {
	case CategoryFunny, CategoryInformative, CategoryEmotional, CategoryRelatable:
		return true
	default:
		return false
	}
}

// Comment is one caller-supplied comment awaiting categorization.
type Comment struct {
	ID   string
	Text string
}

// CategorizedComment pairs a caller-supplied comment with its category.
// Correlation with the vendor response is positional: the response refers to
// comments by their 1-based position in the batch, not by ID.
type CategorizedComment struct {
	Comment
	Category Category
}

// QuizQuestion is one validated four-option question.
type QuizQuestion struct {
	Question      string
	Options       [4]string
	CorrectOption int // 1..4
}

// QuizDraft is a validated five-question quiz.
type QuizDraft struct {
	Questions []QuizQuestion
}

// Confidence marks which tier produced a summary.
type Confidence string

const (
	ConfidencePrimary  Confidence = "primary"
	ConfidenceFallback Confidence = "fallback"
)

// Summary is a generated study guide.
type Summary struct {
	Text       string
	Confidence Confidence
}

// Source is the material a caller supplies for an invocation. VideoID drives
// transcript resolution; Title and Channel feed the summary fallback tier;
// Comments and EntryKind apply only to their respective tasks.
type Source struct {
	VideoID   string
	Title     string
	Channel   string
	EntryKind EntryKind
	Comments  []Comment
}

// Result is the validated payload of a successful invocation. Exactly one
// field matching the task is populated.
type Result struct {
	Task     Task
	Quiz     *QuizDraft
	Quotes   []string
	Content  string
	Summary  *Summary
	Comments []CategorizedComment
}
