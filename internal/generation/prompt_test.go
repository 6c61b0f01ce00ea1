package generation

import (
	"strings"
	"testing"
)

func TestTruncateTranscriptWithinBudget(t *testing.T) {
	text := strings.Repeat("a", maxSourceChars)
	prompt := buildQuizPrompt("Title", text)
	if !strings.Contains(prompt, text) {
		t.Fatal("text within budget must pass through verbatim")
	}
	if strings.Contains(prompt, truncationMarker) {
		t.Fatal("no truncation marker expected within budget")
	}
}

func TestTruncateTranscriptOverBudget(t *testing.T) {
	head := strings.Repeat("a", maxSourceChars)
	tail := strings.Repeat("z", 50)
	prompt := buildQuizPrompt("Title", head+tail)
	if !strings.Contains(prompt, head+truncationMarker) {
		t.Fatal("expected first 30000 chars followed by the truncation marker")
	}
	if strings.Contains(prompt, "zzzz") {
		t.Fatal("remainder must never appear in the prompt")
	}
}

func TestBuildersArePure(t *testing.T) {
	first := buildSummaryTranscriptPrompt("Title", "transcript body")
	second := buildSummaryTranscriptPrompt("Title", "transcript body")
	if first != second {
		t.Fatal("prompt builders must be deterministic")
	}
}

func TestSummaryTitlePromptIncludesChannel(t *testing.T) {
	withChannel := buildSummaryTitlePrompt("Intro to X", "The X Channel")
	if !strings.Contains(withChannel, "Channel: The X Channel") {
		t.Fatal("channel line missing")
	}
	without := buildSummaryTitlePrompt("Intro to X", "  ")
	if strings.Contains(without, "Channel:") {
		t.Fatal("blank channel must be omitted")
	}
}

func TestOrTitlePlaceholder(t *testing.T) {
	if got := orTitle("  "); got != titlePlaceholder {
		t.Fatalf("orTitle blank = %q", got)
	}
	if got := orTitle("Real Title"); got != "Real Title" {
		t.Fatalf("orTitle = %q", got)
	}
}

func TestBuildEntryPromptVariants(t *testing.T) {
	keyPoint := buildEntryPrompt(EntryKeyPoint, "Title", "body")
	quote := buildEntryPrompt(EntryQuote, "Title", "body")
	action := buildEntryPrompt(EntryAction, "Title", "body")
	if keyPoint == quote || quote == action || keyPoint == action {
		t.Fatal("entry prompt variants must differ")
	}
	if !strings.Contains(action, "3-5 concrete actions") {
		t.Fatal("action prompt missing instruction")
	}
}

func TestBuildCategorizePromptNumbersComments(t *testing.T) {
	comments := []Comment{
		{ID: "c1", Text: "so funny"},
		{ID: "c2", Text: "very informative"},
		{ID: "c3", Text: "made me cry"},
	}
	prompt := buildCategorizePrompt(comments, "Learning Go")
	for _, want := range []string{"1. so funny", "2. very informative", "3. made me cry"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing numbered comment %q", want)
		}
	}
	if !strings.Contains(prompt, `"Learning Go"`) {
		t.Fatal("prompt missing title context")
	}
	for _, category := range Categories {
		if !strings.Contains(prompt, string(category)+":") {
			t.Fatalf("prompt missing category %q", category)
		}
	}
}

func TestBuildCategorizePromptClampsLongComments(t *testing.T) {
	long := strings.Repeat("x", maxCommentChars*2)
	prompt := buildCategorizePrompt([]Comment{{ID: "c1", Text: long}}, "")
	if strings.Contains(prompt, long) {
		t.Fatal("long comment must be clamped")
	}
	if !strings.Contains(prompt, strings.Repeat("x", maxCommentChars-3)+"...") {
		t.Fatal("clamped comment should end with ellipsis")
	}
}
