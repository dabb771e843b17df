package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneableOutcomeWithoutErrorReturnsSameValue(t *testing.T) {
	original := &Outcome{Passed: true}
	assert.Same(t, original, CloneableOutcome(original))
}

func TestCloneableOutcomeKeepsOnlyStackText(t *testing.T) {
	failure := NewFailure(errors.New("hi"))
	original := &Outcome{Passed: false, Error: failure}

	projected := CloneableOutcome(original)
	require.NotSame(t, original, projected)
	assert.False(t, projected.Passed)
	require.NotNil(t, projected.Error)
	assert.Equal(t, failure.Stack, projected.Error.Stack)
	assert.Empty(t, projected.Error.Message)

	// source is untouched
	assert.Equal(t, "hi", original.Error.Message)
}

func TestNewFailureCapturesStack(t *testing.T) {
	failure := NewFailure(errors.New("oops"))
	assert.Equal(t, "oops", failure.Message)
	assert.Equal(t, "oops", failure.Error())
	assert.Contains(t, failure.Stack, "goroutine")
}

func TestResultsOK(t *testing.T) {
	assert.True(t, Results{}.OK())

	failed := Results{
		Tests:    []TestResult{{Description: "x", Outcome: &Outcome{}}},
		Failures: []TestResult{{Description: "x", Outcome: &Outcome{}}},
	}
	assert.False(t, failed.OK())
}
