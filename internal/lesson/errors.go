package lesson

// Pipeline step names reported by StepError.
const (
	StepGenerateWords    = "generate words"
	StepGeneratePatterns = "generate patterns"
	StepPersist          = "persist"
	StepRecentWords      = "recent words"
	StepComposeLesson    = "compose lesson"
)

// StepError reports which pipeline step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func stepErr(step string, err error) error {
	return &StepError{Step: step, Err: err}
}
