package types

// LessonMaterial is the paragraph and practice questions generated from the
// most recent words. Source is the raw model text; Paragraph and Questions
// are what an extractor recovered from it.
type LessonMaterial struct {
	Source    string   `json:"source"`
	Paragraph string   `json:"paragraph"`
	Questions []string `json:"questions"`
}

// AnswerSet holds free-text answers aligned by position with the questions
// of a LessonMaterial.
type AnswerSet []string
