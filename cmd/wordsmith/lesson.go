// Lesson command for the wordsmith CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordsmith/internal/lesson"
	"github.com/mesh-intelligence/wordsmith/internal/render"
	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

type lessonOutput struct {
	RunID      string   `json:"run_id"`
	Candidates []string `json:"candidates"`
	NewWords   []string `json:"new_words"`
	Output     string   `json:"output,omitempty"`
	Paragraph  string   `json:"paragraph,omitempty"`
	Questions  []string `json:"questions,omitempty"`
	Feedback   string   `json:"feedback,omitempty"`
}

func newLessonCmd(a *app) *cobra.Command {
	var (
		output  string
		answers []string
	)
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Generate new words and a lesson from the most recent ones",
		Long: `Generate vocabulary words, store each new word with two example
sentences, and write a lesson built from the five most recent words as an
HTML form. The raw lesson text is saved beside the form with a .txt
extension. When --answer is given the answers are reviewed right away and
the feedback is written to feedback.html.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLesson(cmd, a.outputPath(output), answers)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "lesson document path (default from config: lesson.html)")
	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "answer to review, repeat in question order")
	return cmd
}

func (a *app) runLesson(cmd *cobra.Command, output string, answers []string) error {
	ctx := cmd.Context()

	if sourcePath(output) == output {
		return userErr(fmt.Errorf("output %s would be overwritten by the lesson text; use a .html path", output))
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}
	store, err := a.attachStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	res, err := lesson.NewPipeline(client, store, a.cfg, a.log).Run(ctx)
	if err != nil {
		return sysErr(fmt.Errorf("lesson: %w", err))
	}

	out := lessonOutput{
		RunID:      res.RunID.String(),
		Candidates: res.Candidates,
		NewWords:   res.NewWords,
	}
	if !a.flags.json {
		fmt.Fprintf(a.stdout, "Generated vocabulary words:\n%s\n\n", strings.Join(res.Candidates, "\n"))
	}

	if !res.Composed() {
		if a.flags.json {
			return writeJSON(a.stdout, out)
		}
		fmt.Fprintln(a.stdout, "No new vocabulary words were added to the database.")
		return nil
	}

	m := *res.Material
	if err := render.WriteLessonFile(output, m); err != nil {
		return sysErr(fmt.Errorf("write lesson: %w", err))
	}
	if err := render.WriteSourceFile(sourcePath(output), m.Source); err != nil {
		return sysErr(fmt.Errorf("write lesson text: %w", err))
	}
	a.log.Info("lesson written", zap.String("path", output), zap.String("run_id", out.RunID))
	out.Output = output
	out.Paragraph = m.Paragraph
	out.Questions = m.Questions

	if !a.flags.json {
		fmt.Fprintf(a.stdout, "New vocabulary words added to the database: %s\n\n", strings.Join(res.NewWords, ", "))
		fmt.Fprintf(a.stdout, "Paragraph and Questions:\n\n%s\n\n", m.Source)
		fmt.Fprintf(a.stdout, "HTML learning material has been generated: %s\n", output)
	}

	if len(answers) > 0 {
		feedback, err := a.review(ctx, client, types.AnswerSet(answers), m.Source, feedbackPath(output))
		if err != nil {
			return err
		}
		out.Feedback = feedback
	}

	if a.flags.json {
		return writeJSON(a.stdout, out)
	}
	return nil
}
