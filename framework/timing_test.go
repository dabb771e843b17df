package framework

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayWaitsForDuration(t *testing.T) {
	start := time.Now()
	err := Delay(context.Background(), time.Millisecond*20)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond*20)
}

func TestDelayReturnsEarlyOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Delay(ctx, time.Second*10)
	assert.Equal(t, context.Canceled, err)
}

func TestFailTimerFiresAfterDuration(t *testing.T) {
	timer := FailAfter(time.Millisecond * 10)
	select {
	case err := <-timer.Expired():
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out")
	case <-time.After(time.Second * 5):
		t.Fatal("timer never fired")
	}
}

func TestFailTimerCancelledBeforeExpiryNeverFires(t *testing.T) {
	timer := FailAfter(time.Millisecond * 20)
	timer.Cancel()

	// Wait well past the original duration to be sure nothing arrives late.
	select {
	case err := <-timer.Expired():
		t.Fatalf("cancelled timer fired: %s", err)
	case <-time.After(time.Millisecond * 80):
	}
}

func TestFailTimerCancelAfterExpiryIsANoOp(t *testing.T) {
	timer := FailAfter(time.Millisecond * 5)

	var fired error
	select {
	case fired = <-timer.Expired():
	case <-time.After(time.Second * 5):
		t.Fatal("timer never fired")
	}
	require.Error(t, fired)

	timer.Cancel() // already signaled; must not panic or block
	timer.Cancel()
}
