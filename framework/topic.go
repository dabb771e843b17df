package framework

import (
	"context"
)

// Env is the execution environment threaded through fixtures, test
// implementations, and cleanups. The framework never inspects it; producers
// declare whatever concrete accumulator type suits their suite and replace or
// keep it wholesale at each fixture step.
type Env interface{}

// Fixture is a setup step registered on a topic. It receives the environment
// accumulated so far and may return a replacement; returning nil keeps the
// prior environment unchanged.
type Fixture func(ctx context.Context, env Env) (Env, error)

// Cleanup is a teardown step registered on a topic. Cleanups run once per
// test, in reverse registration order, walking from the test's topic up
// through every ancestor.
type Cleanup func(ctx context.Context, env Env) error

// TestFunc is the implementation of a single test.
type TestFunc func(ctx context.Context, env Env) error

// Topic is one grouping level in the test tree. Child ordering is insertion
// order and is load-bearing: it defines the structural addresses used to
// re-invoke any test in isolation.
//
// The parent pointer is a non-owning back-reference used only for upward
// lookups (full descriptions, the cleanup chain, address resolution); the
// child slices are the ownership edges.
type Topic struct {
	description string
	parent      *Topic
	tests       []*Test
	subtopics   []*Topic
	fixtures    []Fixture
	cleanups    []Cleanup
}

func (t *Topic) Description() string { return t.description }

// FullDescription is the topic's description prefixed by all of its
// ancestors' descriptions, which is how tests are identified in reports.
func (t *Topic) FullDescription() string {
	if t.parent == nil {
		return t.description
	}
	base := t.parent.FullDescription()
	if base == "" {
		return t.description
	}
	return base + " " + t.description
}

// AddSubtopic creates a new child topic, links it under this one, and
// returns it.
func (t *Topic) AddSubtopic(description string) *Topic {
	sub := &Topic{description: description, parent: t}
	t.subtopics = append(t.subtopics, sub)
	return sub
}

// AddTest creates a new test owned by this topic and returns it.
func (t *Topic) AddTest(description string, impl TestFunc, config Config) *Test {
	test := &Test{description: description, impl: impl, config: config, topic: t}
	t.tests = append(t.tests, test)
	return test
}

// AddFixture registers a setup step on this topic.
func (t *Topic) AddFixture(f Fixture) {
	t.fixtures = append(t.fixtures, f)
}

// AddCleanup registers a teardown step on this topic.
func (t *Topic) AddCleanup(c Cleanup) {
	t.cleanups = append(t.cleanups, c)
}

// BuildEnv composes a fresh execution environment by applying every fixture
// from the root topic down to this one, in registration order at each level.
// It is recomputed for every test run so state never leaks between sibling
// tests except through closures a fixture deliberately captures.
func (t *Topic) BuildEnv(ctx context.Context) (Env, error) {
	var chain []*Topic
	for cur := t; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	var env Env
	for i := len(chain) - 1; i >= 0; i-- {
		for _, fixture := range chain[i].fixtures {
			next, err := fixture(ctx, env)
			if err != nil {
				return env, err
			}
			if next != nil {
				env = next
			}
		}
	}
	return env, nil
}

// CleanupEnv runs this topic's cleanups in reverse registration order, then
// the parent's, continuing to the root. Every cleanup runs even if an
// earlier one fails; the first failure is returned.
func (t *Topic) CleanupEnv(ctx context.Context, env Env) error {
	var firstErr error
	for cur := t; cur != nil; cur = cur.parent {
		for i := len(cur.cleanups) - 1; i >= 0; i-- {
			if err := cur.cleanups[i](ctx, env); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (t *Topic) testCount() int {
	n := len(t.tests)
	for _, sub := range t.subtopics {
		n += sub.testCount()
	}
	return n
}
