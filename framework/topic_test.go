package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopTest(ctx context.Context, env Env) error { return nil }

func TestTopicFullDescriptionAccumulatesAncestors(t *testing.T) {
	root := &Topic{}
	outer := root.AddSubtopic("a stream")
	inner := outer.AddSubtopic("with events")

	assert.Equal(t, "", root.FullDescription())
	assert.Equal(t, "a stream", outer.FullDescription())
	assert.Equal(t, "a stream with events", inner.FullDescription())

	test := inner.AddTest("delivers them", noopTest, Config{})
	assert.Equal(t, "a stream with events delivers them", test.FullDescription())
}

func TestTopicChildOrderingIsInsertionOrder(t *testing.T) {
	root := &Topic{}
	first := root.AddSubtopic("first")
	second := root.AddSubtopic("second")
	require.Equal(t, []*Topic{first, second}, root.subtopics)

	t1 := root.AddTest("one", noopTest, Config{})
	t2 := root.AddTest("two", noopTest, Config{})
	require.Equal(t, []*Test{t1, t2}, root.tests)
}

func TestBuildEnvFoldsFixturesRootToLeaf(t *testing.T) {
	root := &Topic{}
	child := root.AddSubtopic("child")

	root.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		return []string{"root"}, nil
	})
	child.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		return append(env.([]string), "child"), nil
	})

	env, err := child.BuildEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "child"}, env)
}

func TestBuildEnvKeepsPriorValueWhenFixtureReturnsNil(t *testing.T) {
	root := &Topic{}
	child := root.AddSubtopic("child")

	root.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		return "from root", nil
	})
	sideEffectRan := false
	child.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		sideEffectRan = true
		return nil, nil
	})

	env, err := child.BuildEnv(context.Background())
	require.NoError(t, err)
	assert.True(t, sideEffectRan)
	assert.Equal(t, "from root", env)
}

func TestBuildEnvIsRecomputedFreshEachTime(t *testing.T) {
	root := &Topic{}
	calls := 0
	root.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		calls++
		return calls, nil
	})

	env1, err := root.BuildEnv(context.Background())
	require.NoError(t, err)
	env2, err := root.BuildEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, env1)
	assert.Equal(t, 2, env2)
}

func TestBuildEnvStopsAtFirstFixtureError(t *testing.T) {
	root := &Topic{}
	child := root.AddSubtopic("child")
	fakeErr := errors.New("setup exploded")

	root.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		return "partial", nil
	})
	child.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		return nil, fakeErr
	})
	laterRan := false
	child.AddFixture(func(ctx context.Context, env Env) (Env, error) {
		laterRan = true
		return nil, nil
	})

	env, err := child.BuildEnv(context.Background())
	assert.Equal(t, fakeErr, err)
	assert.Equal(t, "partial", env)
	assert.False(t, laterRan)
}

func TestCleanupEnvRunsReverseOrderThenAncestors(t *testing.T) {
	root := &Topic{}
	child := root.AddSubtopic("child")

	var order []string
	record := func(name string) Cleanup {
		return func(ctx context.Context, env Env) error {
			order = append(order, name)
			return nil
		}
	}
	root.AddCleanup(record("root-1"))
	root.AddCleanup(record("root-2"))
	child.AddCleanup(record("child-1"))
	child.AddCleanup(record("child-2"))

	require.NoError(t, child.CleanupEnv(context.Background(), nil))
	assert.Equal(t, []string{"child-2", "child-1", "root-2", "root-1"}, order)
}

func TestCleanupEnvRunsEverythingDespiteAnError(t *testing.T) {
	root := &Topic{}
	child := root.AddSubtopic("child")
	fakeErr := errors.New("teardown exploded")

	rootRan := false
	root.AddCleanup(func(ctx context.Context, env Env) error {
		rootRan = true
		return nil
	})
	child.AddCleanup(func(ctx context.Context, env Env) error {
		return fakeErr
	})

	err := child.CleanupEnv(context.Background(), nil)
	assert.Equal(t, fakeErr, err)
	assert.True(t, rootRan, "ancestor cleanup should still run after a failure")
}
