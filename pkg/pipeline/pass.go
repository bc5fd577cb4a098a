package pipeline

// Outcome is the closed set of results a single pass run can produce.
type Outcome string

// Supported outcomes.
const (
	OutcomeOk      Outcome = "ok"
	OutcomeWarning Outcome = "warning"
	OutcomeError   Outcome = "error"
)

// PassResult is what Pass.Run returns for a single invocation.
type PassResult struct {
	Outcome Outcome
	Message string
}

func passOk() PassResult                      { return PassResult{Outcome: OutcomeOk} }
func passWarning(msg string) PassResult       { return PassResult{Outcome: OutcomeWarning, Message: msg} }
func passError(msg string) PassResult         { return PassResult{Outcome: OutcomeError, Message: msg} }

// Pass is a single post-processing step. Implementations mutate ctx
// in place and report whether they succeeded outright, succeeded with a
// caveat, or failed.
type Pass interface {
	Name() string
	Run(ctx *GenerationContext) PassResult
}
