package lesson

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/wordsmith/internal/completion"
	"github.com/mesh-intelligence/wordsmith/pkg/types"
)

// RecentLimit is the number of stored words a lesson is composed from.
const RecentLimit = 5

// Result describes one pipeline run.
type Result struct {
	RunID      uuid.UUID
	Candidates []string
	NewWords   []string
	Recent     []types.WordEntry

	// Material is nil when the run added no new words.
	Material *types.LessonMaterial
}

// Composed reports whether the run produced a lesson.
func (r *Result) Composed() bool {
	return r != nil && r.Material != nil
}

// Pipeline generates, stores, and composes vocabulary lessons.
type Pipeline struct {
	client    completion.Client
	store     types.Vocabulary
	cfg       types.Config
	extractor Extractor
	log       *zap.Logger
}

// NewPipeline returns a pipeline that calls client and persists to store.
// The extractor follows cfg.LessonFormat.
func NewPipeline(client completion.Client, store types.Vocabulary, cfg types.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		client:    client,
		store:     store,
		cfg:       cfg,
		extractor: NewExtractor(cfg.LessonFormat),
		log:       log,
	}
}

// WithExtractor replaces the extractor used to split composed text.
func (p *Pipeline) WithExtractor(e Extractor) *Pipeline {
	p.extractor = e
	return p
}

// Run executes one lesson run. A run that adds no new words returns a
// Result with a nil Material and no error. Failures are *StepError values.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID, err := uuid.NewV7()
	if err != nil {
		runID = uuid.New()
	}
	log := p.log.With(zap.String("run_id", runID.String()))
	start := time.Now()

	res := &Result{RunID: runID}

	res.Candidates, err = p.GenerateWords(ctx)
	if err != nil {
		return res, err
	}
	log.Info("generated candidate words", zap.Strings("words", res.Candidates))

	res.NewWords, err = p.Persist(ctx, res.Candidates)
	if err != nil {
		return res, err
	}
	if len(res.NewWords) == 0 {
		log.Info("no new words added; skipping lesson", zap.Duration("elapsed", time.Since(start)))
		return res, nil
	}
	log.Info("stored new words", zap.Strings("words", res.NewWords))

	res.Recent, err = p.store.RecentWords(ctx, RecentLimit)
	if err != nil {
		return res, stepErr(StepRecentWords, err)
	}

	material, err := p.ComposeLesson(ctx, res.Recent)
	if err != nil {
		return res, err
	}
	res.Material = &material
	log.Info("composed lesson",
		zap.Int("recent_words", len(res.Recent)),
		zap.Int("questions", len(material.Questions)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// GenerateWords asks the model for candidate words, one per line.
func (p *Pipeline) GenerateWords(ctx context.Context) ([]string, error) {
	text, err := p.client.Complete(ctx, wordsSystem, wordsPrompt, p.cfg.SamplingFor(types.StepWords))
	if err != nil {
		return nil, stepErr(StepGenerateWords, err)
	}
	return ParseLines(text), nil
}

// GeneratePatterns asks the model for example sentences using word. Fewer
// than two lines are returned as they are.
func (p *Pipeline) GeneratePatterns(ctx context.Context, word string) ([]string, error) {
	text, err := p.client.Complete(ctx, patternsSystem, patternsPrompt(word), p.cfg.SamplingFor(types.StepPatterns))
	if err != nil {
		return nil, stepErr(StepGeneratePatterns, err)
	}
	return ParseLines(text), nil
}

// Persist stores each candidate that is not yet in the store together with
// its generated patterns and returns the words that were new. A word and
// its patterns commit in one transaction, so a failed pattern request
// leaves the word absent.
func (p *Pipeline) Persist(ctx context.Context, candidates []string) ([]string, error) {
	added := []string{}
	for _, word := range candidates {
		var wasNew bool
		err := p.store.InTx(ctx, func(w types.WordWriter) error {
			id, isNew, err := w.EnsureWord(ctx, word)
			if err != nil {
				return stepErr(StepPersist, err)
			}
			if !isNew {
				return nil
			}
			patterns, err := p.GeneratePatterns(ctx, word)
			if err != nil {
				return err
			}
			for _, pattern := range patterns {
				if err := w.AddPattern(ctx, id, pattern); err != nil {
					return stepErr(StepPersist, err)
				}
			}
			wasNew = true
			p.log.Debug("stored word", zap.String("word", word), zap.Int64("id", id), zap.Int("patterns", len(patterns)))
			return nil
		})
		if err != nil {
			var se *StepError
			if errors.As(err, &se) {
				return added, err
			}
			return added, stepErr(StepPersist, err)
		}
		if wasNew {
			added = append(added, word)
		} else {
			p.log.Debug("word already stored", zap.String("word", word))
		}
	}
	return added, nil
}

// ComposeLesson asks the model for a paragraph and questions built from
// entries and extracts them from the reply.
func (p *Pipeline) ComposeLesson(ctx context.Context, entries []types.WordEntry) (types.LessonMaterial, error) {
	prompt := LessonPrompt(entries, p.cfg.LessonFormat)
	text, err := p.client.Complete(ctx, lessonSystem, prompt, p.cfg.SamplingFor(types.StepLesson))
	if err != nil {
		return types.LessonMaterial{}, stepErr(StepComposeLesson, err)
	}
	return p.extractor.Extract(text), nil
}
