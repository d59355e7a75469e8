package lesson

import (
	"strings"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// Extractor recovers the paragraph and questions from composed lesson text.
type Extractor interface {
	Extract(source string) types.LessonMaterial
}

// NewExtractor returns the extractor for a lesson format. Unknown or empty
// formats get the heuristic extractor.
func NewExtractor(format string) Extractor {
	if format == types.FormatDelimited {
		return DelimitedExtractor{}
	}
	return HeuristicExtractor{}
}

// HeuristicExtractor treats the first line containing "question" (any case)
// as the start of the question block. Lines before it form the paragraph;
// that line and every non-blank line after it are questions. Without such a
// line the whole text is the paragraph.
type HeuristicExtractor struct{}

// Extract implements Extractor.
func (HeuristicExtractor) Extract(source string) types.LessonMaterial {
	text := strings.TrimSpace(source)
	lines := splitLines(text)

	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), "question") {
			start = i
			break
		}
	}
	if start < 0 {
		return types.LessonMaterial{Source: source, Paragraph: text, Questions: []string{}}
	}

	return types.LessonMaterial{
		Source:    source,
		Paragraph: strings.TrimSpace(strings.Join(lines[:start], "\n")),
		Questions: nonBlank(lines[start:]),
	}
}

// DelimitedExtractor splits on a line equal to QuestionsDelimiter. Text
// without the delimiter goes through HeuristicExtractor.
type DelimitedExtractor struct{}

// Extract implements Extractor.
func (DelimitedExtractor) Extract(source string) types.LessonMaterial {
	text := strings.TrimSpace(source)
	lines := splitLines(text)

	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), QuestionsDelimiter) {
			return types.LessonMaterial{
				Source:    source,
				Paragraph: strings.TrimSpace(strings.Join(lines[:i], "\n")),
				Questions: nonBlank(lines[i+1:]),
			}
		}
	}
	return HeuristicExtractor{}.Extract(source)
}

// nonBlank keeps the lines that are not blank. Kept lines are not trimmed.
func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
