package framework

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Config holds the recognized per-test options.
type Config struct {
	// Timeout, when positive, bounds the test implementation's running time.
	// Exceeding it fails the test exactly as any other failure would.
	Timeout time.Duration

	// Isolated marks a test for visual emphasis in reports, typically one
	// that was re-invoked on its own through an address parameter.
	Isolated bool

	// Params carries arbitrary author-defined options. The framework passes
	// them through to result messages without interpreting them.
	Params ldvalue.Value
}

// Test is a leaf unit of executable behavior attached to one topic. Tests
// are created during the definition pass and immutable afterward.
type Test struct {
	description string
	impl        TestFunc
	config      Config
	topic       *Topic
}

func (t *Test) Description() string { return t.description }

func (t *Test) Config() Config { return t.config }

// FullDescription is the owning topic's full description plus the test's own.
func (t *Test) FullDescription() string {
	base := t.topic.FullDescription()
	if base == "" {
		return t.description
	}
	return base + " " + t.description
}

// Run executes the test: it folds the topic chain's fixtures into a fresh
// environment, invokes the implementation under the configured timeout, and
// then runs the cleanup chain exactly once whether or not the test passed.
// Any failure, including a panic or a cleanup error, is captured into the
// returned Outcome; Run never panics or returns an error directly.
func (t *Test) Run(ctx context.Context) *Outcome {
	var env Env
	err := protect(func() error {
		built, buildErr := t.topic.BuildEnv(ctx)
		env = built
		if buildErr != nil {
			return buildErr
		}
		return t.invoke(ctx, env)
	})

	cleanupErr := protect(func() error {
		return t.topic.CleanupEnv(ctx, env)
	})
	if err == nil && cleanupErr != nil {
		err = fmt.Errorf("cleanup failed: %w", cleanupErr)
	}

	if err != nil {
		return &Outcome{Passed: false, Error: NewFailure(err)}
	}
	return &Outcome{Passed: true}
}

// invoke runs the implementation, racing it against a FailTimer when a
// timeout is configured. On expiry the implementation's context is cancelled
// so well-behaved tests can stop doing work, but the test is already
// considered failed at that point.
func (t *Test) invoke(ctx context.Context, env Env) error {
	if t.config.Timeout <= 0 {
		return t.impl(ctx, env)
	}

	timer := FailAfter(t.config.Timeout)
	defer timer.Cancel()

	implCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- protect(func() error { return t.impl(implCtx, env) })
	}()

	select {
	case err := <-done:
		return err
	case err := <-timer.Expired():
		cancel()
		return err
	}
}

// protect converts a panic in f into a returned error, preserving the stack.
func protect(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
		}
	}()
	return f()
}
