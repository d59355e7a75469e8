// Review command for the wordsmith CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wordsmith/internal/completion"
	"github.com/mesh-intelligence/wordsmith/internal/lesson"
	"github.com/mesh-intelligence/wordsmith/internal/render"
	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

type reviewOutput struct {
	Source   string   `json:"source"`
	Answers  []string `json:"answers"`
	Feedback string   `json:"feedback"`
	Output   string   `json:"output"`
}

func newReviewCmd(a *app) *cobra.Command {
	var (
		answers     []string
		answersFile string
		source      string
		output      string
	)
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Get feedback on answers to the last lesson",
		Long: `Send answers to the questions of a saved lesson to the model and
print its feedback. Answers come from repeated --answer flags or from a
file with one answer per line. The lesson text defaults to the .txt file
saved beside the configured lesson document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := collectAnswers(answers, answersFile)
			if err != nil {
				return err
			}

			if source == "" {
				source = sourcePath(a.outputPath(""))
			}
			text, err := os.ReadFile(source)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					return userErr(fmt.Errorf("lesson text %s not found; run wordsmith lesson first", source))
				}
				return sysErr(fmt.Errorf("read lesson text: %w", err))
			}

			client, err := a.newClient()
			if err != nil {
				return err
			}
			if output == "" {
				output = feedbackPath(source)
			}
			feedback, err := a.review(cmd.Context(), client, set, string(text), output)
			if err != nil {
				return err
			}
			if a.flags.json {
				return writeJSON(a.stdout, reviewOutput{Source: source, Answers: set, Feedback: feedback, Output: output})
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "answer to review, repeat in question order")
	cmd.Flags().StringVar(&answersFile, "answers-file", "", "file with one answer per line")
	cmd.Flags().StringVar(&source, "source", "", "saved lesson text (default: lesson.txt beside the lesson document)")
	cmd.Flags().StringVar(&output, "feedback-output", "", "feedback document path (default: feedback.html beside the lesson text)")
	return cmd
}

// collectAnswers merges flag answers with the lines of answersFile. Blank
// lines in the file are kept as empty answers so later answers stay aligned
// with their questions.
func collectAnswers(answers []string, answersFile string) (types.AnswerSet, error) {
	set := types.AnswerSet(append([]string{}, answers...))
	if answersFile != "" {
		data, err := os.ReadFile(answersFile)
		if err != nil {
			return nil, userErr(fmt.Errorf("read answers file: %w", err))
		}
		set = append(set, answerLines(string(data))...)
	}
	if len(set) == 0 {
		return nil, userErr(errors.New("no answers given; use --answer or --answers-file"))
	}
	return set, nil
}

// answerLines splits text into one trimmed answer per line. Only the empty
// line after a final newline is dropped.
func answerLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// review asks the model for feedback, prints it unless JSON output is on,
// and writes the feedback document to output. A failed model call is
// reported inside the feedback text, not as an error.
func (a *app) review(ctx context.Context, client completion.Client, answers types.AnswerSet, source, output string) (string, error) {
	feedback := lesson.NewReviewer(client, a.cfg, a.log).Review(ctx, answers, source)
	if !a.flags.json {
		fmt.Fprintf(a.stdout, "Feedback to user:\n%s\n", feedback)
	}
	if err := render.WriteFeedbackFile(output, answers, feedback); err != nil {
		return feedback, sysErr(fmt.Errorf("write feedback: %w", err))
	}
	return feedback, nil
}
