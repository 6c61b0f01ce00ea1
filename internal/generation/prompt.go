package generation

import (
	"fmt"
	"strings"
)

const (
	// maxSourceChars bounds the transcript text embedded in a prompt.
	maxSourceChars = 30000
	// truncationMarker tells the model that transcript content was cut.
	truncationMarker = "\n\n(transcript truncated due to length)"
	// titlePlaceholder stands in when the caller supplied no title.
	titlePlaceholder = "YouTube video"
	// FallbackDisclaimer prefixes summaries generated without transcript access.
	FallbackDisclaimer = "Note: the transcript could not be retrieved, so this guide was generated from the video title alone.\n\n"
	// maxCommentChars clamps each comment inside the categorization prompt.
	maxCommentChars = 300
)

// truncateTranscript enforces the prompt character budget. Text within the
// budget passes through verbatim; longer text is cut at the budget and the
// truncation marker is appended.
func truncateTranscript(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSourceChars {
		return text
	}
	return string(runes[:maxSourceChars]) + truncationMarker
}

func orTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return titlePlaceholder
	}
	return title
}

const quizPromptTemplate = `Below is the transcript of the YouTube video "%s".
Create a quiz of 5 questions that checks understanding of the video's content.

[Transcript]
%s

[Response format]
Respond with the following JSON only. Do not include any other text.

{
  "questions": [
    {
      "question_text": "the question",
      "option_1": "first option",
      "option_2": "second option",
      "option_3": "third option",
      "option_4": "fourth option",
      "correct_option": 1
    }
  ]
}

[Rules]
- Create exactly 5 questions.
- Each question has exactly 4 options.
- correct_option is the number of the correct option (1-4).
- Base every question on the video's content.
- Aim for medium difficulty (not too easy, not too hard).
- Phrase each question as a question.
- Make the options clearly distinguishable.`

func buildQuizPrompt(title, transcript string) string {
	return fmt.Sprintf(quizPromptTemplate, title, truncateTranscript(transcript))
}

const summaryTranscriptPromptTemplate = `Below is the transcript of the YouTube video "%s".
Analyze the content and write a study guide for viewers.

[Transcript]
%s

[Response format]
## What this video teaches
Summarize the video's main theme and learning points in 2-3 sentences.

## Key points
List 3-5 important points made in the video as bullet points.

## Questions to reflect on
- (a question viewers should ask themselves after watching)
- (another question viewers should ask themselves after watching)

## Actions to deepen the learning
Suggest 2-3 concrete actions viewers can take based on the video's content.

## Related keywords
List 3-5 search keywords related to this video.`

func buildSummaryTranscriptPrompt(title, transcript string) string {
	return fmt.Sprintf(summaryTranscriptPromptTemplate, title, truncateTranscript(transcript))
}

const summaryTitlePromptTemplate = `Write a study guide that helps viewers learn from the following YouTube video.

Video title: %s
%s
Respond in the following format:

## What this video teaches
Explain the video's likely main theme and learnings in 2-3 sentences, inferred from the title.

## Questions to consider before watching
- (a question viewers should ask themselves before watching)
- (another question viewers should ask themselves before watching)

## Actions to deepen the learning
Suggest 2-3 concrete actions viewers can take after watching this video.

## Related keywords
List 3-5 search keywords related to this video.`

func buildSummaryTitlePrompt(title, channel string) string {
	channelInfo := ""
	if strings.TrimSpace(channel) != "" {
		channelInfo = fmt.Sprintf("Channel: %s\n", channel)
	}
	return fmt.Sprintf(summaryTitlePromptTemplate, title, channelInfo)
}

const suggestQuotesPromptTemplate = `Below is the transcript of the YouTube video "%s".
Extract 5-8 memorable, quotable statements from this video.

[Transcript]
%s

[Response format]
Respond with the following JSON only. Do not include any other text.

{
  "quotes": [
    "first quote",
    "second quote",
    "third quote"
  ]
}

[Rules]
- Extract only words actually spoken in the video.
- Keep each quote to about 1-2 sentences.
- Prefer moving, instructive, or distinctive statements.
- Stay close to the original wording; do not invent or summarize.`

func buildSuggestQuotesPrompt(title, transcript string) string {
	return fmt.Sprintf(suggestQuotesPromptTemplate, title, truncateTranscript(transcript))
}

const keyPointPromptTemplate = `Below is the transcript of the YouTube video "%s".
Summarize the video's content.

[Transcript]
%s

[Response format]
- Describe the video's main theme in one sentence.
- List 3-5 key points as concise bullet points.

Respond in plain text, not markdown. Do not use headings (# or ##).`

const entryQuotePromptTemplate = `Below is the transcript of the YouTube video "%s".
Extract 3-5 striking, quotable statements from this video.

[Transcript]
%s

[Response format]
Wrap each quote in quotation marks, one per line.

Example:
"The secret to success is doing a little every day"
"Don't fear failure, learn from it"

Extract only words actually spoken in the video.
Stay close to the original wording; do not invent or summarize.`

const actionPromptTemplate = `Below is the transcript of the YouTube video "%s".
Suggest concrete actions viewers of this video can put into practice.

[Transcript]
%s

[Response format]
Based on the video's content, suggest 3-5 concrete actions viewers can start today.
Keep each action to one line, specific and achievable.

Example:
- Make 10 minutes of morning meditation a habit
- Schedule time to read one book per week

Suggest only actions related to the video's content.`

func buildEntryPrompt(kind EntryKind, title, transcript string) string {
	transcript = truncateTranscript(transcript)
	switch kind {
	case EntryQuote:
		return fmt.Sprintf(entryQuotePromptTemplate, title, transcript)
	case EntryAction:
		return fmt.Sprintf(actionPromptTemplate, title, transcript)
	default:
		return fmt.Sprintf(keyPointPromptTemplate, title, transcript)
	}
}

const categorizePromptTemplate = `You are an expert at classifying YouTube comments.
Below are YouTube comments%s. Assign each comment to its best-fitting category.

[Categories and criteria]

funny:
- Comments going for a laugh, jokes, quips
- Sarcasm and witty phrasing
- Amusing turns of phrase or comparisons

informative:
- Supplementary information or explanations of the video content
- Shared expertise or background knowledge
- Reference links and related information

emotional:
- Comments expressing being moved or in tears
- Shared experiences of being deeply touched
- Profound gratitude or admiration

relatable:
- "So true!" style agreement
- Shared experiences or feelings
- Strong endorsement of the video's message

[Tie-breaking]
- "I laughed" alone is funny; "I laughed and cried" is emotional.
- Plain praise ("Amazing!", "Love this") is relatable.
- For information plus a reaction, judge by the main intent.
- When unsure, judge by what a reader of the comment would feel.

[Comments]
%s

[Response format]
Respond with JSON only. No explanations.

{
  "categories": {
    "1": "funny",
    "2": "informative",
    "3": "emotional"
  }
}`

func buildCategorizePrompt(comments []Comment, videoTitle string) string {
	titleContext := ""
	if strings.TrimSpace(videoTitle) != "" {
		titleContext = fmt.Sprintf(" on the video %q", videoTitle)
	}

	lines := make([]string, 0, len(comments))
	for i, comment := range comments {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, clampComment(comment.Text)))
	}
	return fmt.Sprintf(categorizePromptTemplate, titleContext, strings.Join(lines, "\n"))
}

func clampComment(text string) string {
	runes := []rune(text)
	if len(runes) <= maxCommentChars {
		return text
	}
	return string(runes[:maxCommentChars-3]) + "..."
}
