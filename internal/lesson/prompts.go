package lesson

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// System instructions for each completion step.
const (
	wordsSystem    = "You are a helpful english vocabulary generator.You will generate useful words for exam writing that is secondary 6 level"
	patternsSystem = "You are a helpful assistant."
	lessonSystem   = "You are a helpful assistant specialized in educational content."
	reviewSystem   = lessonSystem
)

const wordsPrompt = "Generate exactly 5 secondary 6 English vocabulary words. " +
	"No definitions, no explanations—just the words, one per line."

// QuestionsDelimiter separates the paragraph from the questions when the
// lesson is requested in the delimited format.
const QuestionsDelimiter = "### QUESTIONS"

func patternsPrompt(word string) string {
	return fmt.Sprintf("Provide exactly 2 descriptive sentence patterns using the word '%s'. "+
		"Output them on separate lines, and do not include explanations.", word)
}

// LessonPrompt builds the composition prompt for entries. The delimited
// format adds an instruction to separate the parts with QuestionsDelimiter.
func LessonPrompt(entries []types.WordEntry, format string) string {
	var listing strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&listing, "Word: %s\nPatterns:\n", e.Word.Text)
		bullets := make([]string, len(e.Patterns))
		for i, p := range e.Patterns {
			bullets[i] = "- " + p
		}
		listing.WriteString(strings.Join(bullets, "\n"))
		listing.WriteString("\n\n")
	}

	var sb strings.Builder
	sb.WriteString("You have the following 5 vocabulary words and their 2 sentence patterns each:\n\n")
	sb.WriteString(listing.String())
	sb.WriteString("\n")
	sb.WriteString("1) Write a short paragraph (no more than 300 words) that naturally incorporates these words or references their patterns.\n")
	sb.WriteString("2) Then create exactly 5 questions to help a learner practice using these words and patterns.\n")
	sb.WriteString("Do not include answers, just the questions.\n")
	sb.WriteString("Format your response with the paragraph first, then a clear separation, then the questions listed.\n")
	if format == types.FormatDelimited {
		fmt.Fprintf(&sb, "Put a line containing only %s between the paragraph and the questions, one question per line after it.\n", QuestionsDelimiter)
	}
	return sb.String()
}

// ReviewPrompt builds the feedback prompt from the lesson text and the
// answers, labelled Q1, Q2, and so on.
func ReviewPrompt(answers types.AnswerSet, source string) string {
	var sb strings.Builder
	sb.WriteString("Here is a paragraph, a set of questions, and the student's answers to those questions.\n\n")
	sb.WriteString("Paragraph and Questions:\n")
	sb.WriteString(source)
	sb.WriteString("\n\n")
	sb.WriteString("Student's Answers:\n")
	for i, ans := range answers {
		fmt.Fprintf(&sb, "Q%d: %s\n", i+1, ans)
	}
	sb.WriteString("\nPlease review each answer and provide feedback on its correctness. ")
	sb.WriteString("If the answer is correct, acknowledge it. If not, provide guidance or hints to help improve the answer.")
	return sb.String()
}
