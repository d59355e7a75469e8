package lesson

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordsmith/internal/completion"
	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// ReviewErrorPrefix starts the text Review returns when the model call fails.
const ReviewErrorPrefix = "An error occurred while generating feedback: "

// Reviewer asks the model for feedback on a student's answers.
type Reviewer struct {
	client   completion.Client
	sampling types.Sampling
	log      *zap.Logger
}

// NewReviewer returns a reviewer using the review sampling of cfg.
func NewReviewer(client completion.Client, cfg types.Config, log *zap.Logger) *Reviewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reviewer{
		client:   client,
		sampling: cfg.SamplingFor(types.StepReview),
		log:      log,
	}
}

// Review returns the model's feedback on answers to the lesson in source.
// It never fails: a failed call yields text starting with ReviewErrorPrefix.
func (r *Reviewer) Review(ctx context.Context, answers types.AnswerSet, source string) string {
	feedback, err := r.client.Complete(ctx, reviewSystem, ReviewPrompt(answers, source), r.sampling)
	if err != nil {
		r.log.Warn("review failed", zap.Int("answers", len(answers)), zap.Error(err))
		return ReviewErrorPrefix + err.Error()
	}
	return strings.TrimSpace(feedback)
}
