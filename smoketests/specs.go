package smoketests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/framespec/framespec/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func AllSpecs() []*framework.Spec {
	return []*framework.Spec{
		EnvironmentSpec(),
		TimingSpec(),
	}
}

// envState is the accumulator threaded through the environment-folding spec.
type envState struct {
	trail []string
}

func (e *envState) push(step string) *envState {
	next := &envState{trail: append(append([]string(nil), e.trail...), step)}
	return next
}

func (e *envState) trailString() string {
	return strings.Join(e.trail, ">")
}

// EnvironmentSpec verifies fixture folding and cleanup ordering through the
// harness's own public API.
func EnvironmentSpec() *framework.Spec {
	return framework.NewSpec(func(api framework.API) {
		api.Describe("environment folding", func() {
			api.Before(func(ctx context.Context, env framework.Env) (framework.Env, error) {
				return &envState{trail: []string{"outer"}}, nil
			})
			api.Defer(func(ctx context.Context, env framework.Env) error {
				framework.DebugLogger(ctx).Printf("outer cleanup saw %q", env.(*envState).trailString())
				return nil
			})

			api.It("sees the outer fixture", func(ctx context.Context, env framework.Env) error {
				state := env.(*envState)
				if state.trailString() != "outer" {
					return fmt.Errorf("expected trail %q, got %q", "outer", state.trailString())
				}
				return nil
			})

			api.Describe("with a nested topic", func() {
				api.Before(func(ctx context.Context, env framework.Env) (framework.Env, error) {
					return env.(*envState).push("nested"), nil
				})
				api.Before(func(ctx context.Context, env framework.Env) (framework.Env, error) {
					// Keeps the prior environment: a fixture with side
					// effects only.
					framework.DebugLogger(ctx).Printf("nested fixture ran")
					return nil, nil
				})

				api.It("sees both fixtures in order", func(ctx context.Context, env framework.Env) error {
					state := env.(*envState)
					if state.trailString() != "outer>nested" {
						return fmt.Errorf("expected trail %q, got %q", "outer>nested", state.trailString())
					}
					return nil
				})
			})

			api.It("gets a fresh environment after the nested topic ran", func(ctx context.Context, env framework.Env) error {
				state := env.(*envState)
				if state.trailString() != "outer" {
					return fmt.Errorf("nested state leaked into sibling test: %q", state.trailString())
				}
				return nil
			}, framework.Config{
				Params: ldvalue.ObjectBuild().Set("checks", ldvalue.String("isolation")).Build(),
			})
		})
	})
}

// TimingSpec exercises the delay and cancellable-timeout primitives the way
// a test author would.
func TimingSpec() *framework.Spec {
	return framework.NewSpec(func(api framework.API) {
		api.Describe("timing", func() {
			api.It("completes a short delay", func(ctx context.Context, env framework.Env) error {
				return framework.Delay(ctx, time.Millisecond*10)
			})

			api.It("finishes well inside its deadline", func(ctx context.Context, env framework.Env) error {
				return framework.Delay(ctx, time.Millisecond*5)
			}, framework.Config{Timeout: time.Second * 5})

			api.It("never sees a cancelled timeout fire", func(ctx context.Context, env framework.Env) error {
				timer := framework.FailAfter(time.Millisecond * 20)
				timer.Cancel()
				if err := framework.Delay(ctx, time.Millisecond*40); err != nil {
					return err
				}
				select {
				case err := <-timer.Expired():
					return fmt.Errorf("cancelled timer fired anyway: %w", err)
				default:
					return nil
				}
			}, framework.Config{Isolated: true})
		})
	})
}
