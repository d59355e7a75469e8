// Package render writes lessons and feedback as HTML documents.
//
// Model text is placed into the documents through html/template, so markup
// in a paragraph, question, or answer is escaped rather than interpreted.
// Feedback is converted from markdown with goldmark; raw HTML in the
// markdown is dropped.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templateFS, "templates/*.tmpl"))

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Lesson writes the lesson document for m to w: the paragraph, then a form
// with one answer field per question named answer_1, answer_2, and so on.
func Lesson(w io.Writer, m types.LessonMaterial) error {
	if err := templates.ExecuteTemplate(w, "lesson.html.tmpl", m); err != nil {
		return fmt.Errorf("rendering lesson: %w", err)
	}
	return nil
}

type feedbackView struct {
	Answers types.AnswerSet
	Body    template.HTML
}

// Feedback writes a document showing answers and the feedback text, which
// is rendered as markdown.
func Feedback(w io.Writer, answers types.AnswerSet, feedback string) error {
	view := feedbackView{Answers: answers, Body: Markdown(feedback)}
	if err := templates.ExecuteTemplate(w, "feedback.html.tmpl", view); err != nil {
		return fmt.Errorf("rendering feedback: %w", err)
	}
	return nil
}

// Markdown converts text to HTML. Raw HTML in text is omitted. If
// conversion fails the escaped text is returned.
func Markdown(text string) template.HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(out.String())
}
