package framework

import (
	"fmt"
	"io"
	"runtime/debug"
)

// Failure describes why a test did not pass. It doubles as the wire shape
// for the error field of cross-boundary result messages.
type Failure struct {
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

func (f *Failure) Error() string { return f.Message }

// NewFailure wraps an error with the stack trace text at the point where the
// failure was captured.
func NewFailure(err error) *Failure {
	return &Failure{Message: err.Error(), Stack: string(debug.Stack())}
}

// Outcome is the result of running one test.
type Outcome struct {
	Passed bool     `json:"passed"`
	Error  *Failure `json:"error,omitempty"`
}

// CloneableOutcome projects an outcome into a form safe to pass across a
// structured-clone boundary: only the failure's stack text survives, not its
// message or any other property. An outcome with no error needs no
// projection and is returned as-is.
func CloneableOutcome(o *Outcome) *Outcome {
	if o.Error == nil {
		return o
	}
	return &Outcome{Passed: o.Passed, Error: &Failure{Stack: o.Error.Stack}}
}

// TestResult pairs a test's address and description with its outcome.
type TestResult struct {
	Address     Address
	Description string
	Outcome     *Outcome
}

// Results accumulates every result of a suite run, with failures also
// collected separately for summary reporting.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

func PrintResults(dest io.Writer, results Results) {
	if results.OK() {
		fmt.Fprintf(dest, "All tests passed (%d)\n", len(results.Tests))
		return
	}
	fmt.Fprintf(dest, "%d tests, %d failures:\n", len(results.Tests), len(results.Failures))
	for _, failure := range results.Failures {
		fmt.Fprintf(dest, "  %s\n", failure.Description)
	}
}
