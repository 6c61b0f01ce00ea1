package generation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"tubenote/internal/services"
	"tubenote/internal/services/gemini"
)

func envWithText(text string) gemini.Envelope {
	return gemini.Envelope{
		Candidates: []gemini.Candidate{
			{Content: gemini.Content{Parts: []gemini.Part{{Text: text}}}},
		},
	}
}

func envWithError(message string) gemini.Envelope {
	return gemini.Envelope{Error: &gemini.APIError{Code: 400, Message: message}}
}

func validQuizJSON() string {
	questions := make([]string, 0, 5)
	for i, correct := range []int{1, 2, 3, 4, 1} {
		questions = append(questions, fmt.Sprintf(`{
			"question_text": "Question %d?",
			"option_1": "A%d", "option_2": "B%d", "option_3": "C%d", "option_4": "D%d",
			"correct_option": %d
		}`, i+1, i+1, i+1, i+1, i+1, correct))
	}
	return `{"questions": [` + strings.Join(questions, ",") + `]}`
}

func TestExtractQuizHappyPath(t *testing.T) {
	env := envWithText("Here is your quiz:\n" + validQuizJSON() + "\nEnjoy!")
	quiz, err := extractQuiz(env)
	if err != nil {
		t.Fatalf("extractQuiz returned error: %v", err)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("got %d questions", len(quiz.Questions))
	}
	wantCorrect := []int{1, 2, 3, 4, 1}
	for i, q := range quiz.Questions {
		if q.Question != fmt.Sprintf("Question %d?", i+1) {
			t.Fatalf("question %d out of order: %q", i+1, q.Question)
		}
		if q.CorrectOption != wantCorrect[i] {
			t.Fatalf("question %d correct = %d, want %d", i+1, q.CorrectOption, wantCorrect[i])
		}
		if q.Options[0] != fmt.Sprintf("A%d", i+1) {
			t.Fatalf("question %d options reordered: %v", i+1, q.Options)
		}
	}
}

func TestExtractQuizAllOrNothing(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{
			name: "three questions",
			json: `{"questions": [
				{"question_text": "Q1?", "option_1": "a", "option_2": "b", "option_3": "c", "option_4": "d", "correct_option": 1},
				{"question_text": "Q2?", "option_1": "a", "option_2": "b", "option_3": "c", "option_4": "d", "correct_option": 2},
				{"question_text": "Q3?", "option_1": "a", "option_2": "b", "option_3": "c", "option_4": "d", "correct_option": 3}
			]}`,
		},
		{
			name: "blank option",
			json: strings.Replace(validQuizJSON(), `"B3"`, `"  "`, 1),
		},
		{
			name: "correct option out of range",
			json: strings.Replace(validQuizJSON(), `"correct_option": 4`, `"correct_option": 7`, 1),
		},
		{
			name: "blank question text",
			json: strings.Replace(validQuizJSON(), `"Question 2?"`, `""`, 1),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := extractQuiz(envWithText(tc.json))
			if !errors.Is(err, services.ErrSchemaViolation) {
				t.Fatalf("expected schema violation, got %v", err)
			}
		})
	}
}

func TestExtractQuizCoercesStringCorrectOption(t *testing.T) {
	json := strings.Replace(validQuizJSON(), `"correct_option": 2`, `"correct_option": "2"`, 1)
	quiz, err := extractQuiz(envWithText(json))
	if err != nil {
		t.Fatalf("expected string coercion to succeed, got %v", err)
	}
	if quiz.Questions[1].CorrectOption != 2 {
		t.Fatalf("coerced correct option = %d", quiz.Questions[1].CorrectOption)
	}
}

func TestExtractQuizRateLimited(t *testing.T) {
	_, err := extractQuiz(envWithError("429 quota exceeded"))
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected rate limited, got %v", err)
	}
	if !strings.Contains(err.Error(), "wait before retrying") {
		t.Fatalf("rate limit message should instruct waiting, got %v", err)
	}
}

func TestExtractQuizUpstreamError(t *testing.T) {
	_, err := extractQuiz(envWithError("invalid request payload"))
	if !errors.Is(err, services.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid request payload") {
		t.Fatalf("vendor message should be folded in, got %v", err)
	}
}

func TestExtractQuizEmptyGeneration(t *testing.T) {
	_, err := extractQuiz(envWithText("   "))
	if !errors.Is(err, services.ErrEmptyGeneration) {
		t.Fatalf("expected empty generation, got %v", err)
	}
	_, err = extractQuiz(gemini.Envelope{})
	if !errors.Is(err, services.ErrEmptyGeneration) {
		t.Fatalf("expected empty generation for missing candidates, got %v", err)
	}
}

func TestExtractQuizNoJSON(t *testing.T) {
	_, err := extractQuiz(envWithText("I could not produce a quiz, sorry."))
	if !errors.Is(err, services.ErrUnparsable) {
		t.Fatalf("expected unparsable, got %v", err)
	}
}

func TestExtractQuizOnlyFirstSpanAttempted(t *testing.T) {
	// The first balanced span is malformed JSON; the valid quiz after it
	// must never be tried.
	text := `{"questions": [}` + "\n" + validQuizJSON()
	_, err := extractQuiz(envWithText(text))
	if !errors.Is(err, services.ErrUnparsable) {
		t.Fatalf("expected unparsable for malformed first span, got %v", err)
	}
}

func TestExtractQuotes(t *testing.T) {
	env := envWithText(`{"quotes": ["Stay curious.", "Ship it."]}`)
	quotes, err := extractQuotes(env)
	if err != nil {
		t.Fatalf("extractQuotes returned error: %v", err)
	}
	if len(quotes) != 2 || quotes[0] != "Stay curious." {
		t.Fatalf("quotes = %v", quotes)
	}
}

func TestExtractQuotesEmptyArray(t *testing.T) {
	_, err := extractQuotes(envWithText(`{"quotes": []}`))
	if !errors.Is(err, services.ErrSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestExtractQuotesBlankElement(t *testing.T) {
	_, err := extractQuotes(envWithText(`{"quotes": ["fine", "  "]}`))
	if !errors.Is(err, services.ErrSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestExtractCategoriesPositionalCorrespondence(t *testing.T) {
	comments := []Comment{
		{ID: "c1", Text: "first"},
		{ID: "c2", Text: "second"},
		{ID: "c3", Text: "third"},
		{ID: "c4", Text: "fourth"},
	}
	// Position 2 is skipped, position 4 carries an out-of-vocabulary label.
	env := envWithText(`{"categories": {"1": "funny", "3": "emotional", "4": "profound"}}`)
	categorized, err := extractCategories(env, comments)
	if err != nil {
		t.Fatalf("extractCategories returned error: %v", err)
	}
	if len(categorized) != 4 {
		t.Fatalf("got %d categorized comments", len(categorized))
	}
	for i, comment := range categorized {
		if comment.ID != comments[i].ID || comment.Text != comments[i].Text {
			t.Fatalf("position %d: comment reordered: %+v", i+1, comment)
		}
	}
	want := []Category{CategoryFunny, CategoryUnassigned, CategoryEmotional, CategoryUnassigned}
	for i, comment := range categorized {
		if comment.Category != want[i] {
			t.Fatalf("position %d: category = %q, want %q", i+1, comment.Category, want[i])
		}
	}
}

func TestExtractCategoriesNotAMapping(t *testing.T) {
	_, err := extractCategories(envWithText(`{"categories": ["funny"]}`), []Comment{{ID: "c1"}})
	if !errors.Is(err, services.ErrSchemaViolation) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestExtractContentTrims(t *testing.T) {
	content, err := extractContent(envWithText("\n  key point summary  \n"), "entry_draft")
	if err != nil {
		t.Fatalf("extractContent returned error: %v", err)
	}
	if content != "key point summary" {
		t.Fatalf("content = %q", content)
	}
}
