package lesson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

func TestHeuristicExtractor(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		wantParagraph string
		wantQuestions []string
	}{
		{
			name:          "marker line starts questions",
			source:        "The lucid stream ran on.\nIt was serene.\n\nQuestions:\n1. What is lucid?\n\n2. Use serene in a sentence.",
			wantParagraph: "The lucid stream ran on.\nIt was serene.",
			wantQuestions: []string{"Questions:", "1. What is lucid?", "2. Use serene in a sentence."},
		},
		{
			name:          "marker matches any case",
			source:        "A paragraph.\nPRACTICE QUESTIONS\nQ1",
			wantParagraph: "A paragraph.",
			wantQuestions: []string{"PRACTICE QUESTIONS", "Q1"},
		},
		{
			name:          "marker on first line",
			source:        "Question one?\nQuestion two?",
			wantParagraph: "",
			wantQuestions: []string{"Question one?", "Question two?"},
		},
		{
			name:          "paragraph mentioning question triggers early split",
			source:        "She raised a question about the vivid mural.\nIt stayed with her.",
			wantParagraph: "",
			wantQuestions: []string{"She raised a question about the vivid mural.", "It stayed with her."},
		},
		{
			name:          "no marker",
			source:        "  Just a paragraph.\n\nWith two parts.  ",
			wantParagraph: "Just a paragraph.\n\nWith two parts.",
			wantQuestions: []string{},
		},
		{
			name:          "crlf",
			source:        "Para.\r\nQuestions\r\n1. Why?\r\n",
			wantParagraph: "Para.",
			wantQuestions: []string{"Questions", "1. Why?"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeuristicExtractor{}.Extract(tt.source)
			assert.Equal(t, tt.source, got.Source)
			assert.Equal(t, tt.wantParagraph, got.Paragraph)
			assert.Equal(t, tt.wantQuestions, got.Questions)
		})
	}
}

func TestHeuristicExtractor_BoundaryProperty(t *testing.T) {
	lines := []string{"First line.", "", "Second line.", "Here are the Questions", "", "1. a", "2. b", "   ", "3. c"}
	source := strings.Join(lines, "\n")

	got := HeuristicExtractor{}.Extract(source)

	k := 3
	assert.Equal(t, strings.TrimSpace(strings.Join(lines[:k], "\n")), got.Paragraph)
	nonBlankCount := 0
	for _, l := range lines[k:] {
		if strings.TrimSpace(l) != "" {
			nonBlankCount++
		}
	}
	assert.Len(t, got.Questions, nonBlankCount)
}

func TestDelimitedExtractor(t *testing.T) {
	t.Run("splits on delimiter", func(t *testing.T) {
		source := "A paragraph that asks a question.\n\n### QUESTIONS\n1. One?\n\n2. Two?"
		got := DelimitedExtractor{}.Extract(source)
		assert.Equal(t, "A paragraph that asks a question.", got.Paragraph)
		assert.Equal(t, []string{"1. One?", "2. Two?"}, got.Questions)
	})

	t.Run("delimiter is case insensitive and trimmed", func(t *testing.T) {
		got := DelimitedExtractor{}.Extract("Para.\n  ### questions  \nQ1")
		assert.Equal(t, "Para.", got.Paragraph)
		assert.Equal(t, []string{"Q1"}, got.Questions)
	})

	t.Run("falls back to heuristic", func(t *testing.T) {
		source := "Para.\nQuestions:\n1. One?"
		assert.Equal(t, HeuristicExtractor{}.Extract(source), DelimitedExtractor{}.Extract(source))
	})
}

func TestNewExtractor(t *testing.T) {
	assert.IsType(t, HeuristicExtractor{}, NewExtractor(""))
	assert.IsType(t, HeuristicExtractor{}, NewExtractor(types.FormatHeuristic))
	assert.IsType(t, DelimitedExtractor{}, NewExtractor(types.FormatDelimited))
	assert.IsType(t, HeuristicExtractor{}, NewExtractor("bogus"))
}
