package framework

import (
	"context"

	"github.com/framespec/framespec/logging"
)

// TestRef identifies a test to a reporter: its structural address, its full
// description, and whether it is marked for isolated emphasis.
type TestRef struct {
	Address     Address
	Description string
	Isolated    bool
}

// TestReporter receives progress notifications as a suite runs. It covers
// the human-readable side of reporting only; cross-boundary result messages
// go through a ResultSink and are not affected by the reporter in use.
type TestReporter interface {
	TestStarted(ref TestRef)
	TestError(ref TestRef, err error)
	TestFinished(ref TestRef, outcome *Outcome, debugOutput logging.CapturedOutput)
}

type nullReporter struct{}

func (n nullReporter) TestStarted(TestRef)                                    {}
func (n nullReporter) TestError(TestRef, error)                               {}
func (n nullReporter) TestFinished(TestRef, *Outcome, logging.CapturedOutput) {}

func NullReporter() TestReporter { return nullReporter{} }

type debugLoggerKey struct{}

// WithDebugLogger attaches a debug logger to the context passed into a
// test's fixtures, implementation, and cleanups.
func WithDebugLogger(ctx context.Context, logger logging.Logger) context.Context {
	return context.WithValue(ctx, debugLoggerKey{}, logger)
}

// DebugLogger returns the debug logger attached to a test run's context.
// Output sent to it is captured and handed to the reporter when the test
// finishes. Always non-nil; without an attached logger it discards output.
func DebugLogger(ctx context.Context) logging.Logger {
	if logger, ok := ctx.Value(debugLoggerKey{}).(logging.Logger); ok {
		return logger
	}
	return logging.NullLogger()
}
