package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

func TestWatchdog_RunsToCompletion(t *testing.T) {
	wd := NewWatchdog(time.Second, time.Millisecond)

	steps := 0
	err := wd.Run(context.Background(), func() (bool, error) {
		steps++
		return steps >= 4, nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 4, steps)
}

func TestWatchdog_DeadlineForcesReset(t *testing.T) {
	wd := NewWatchdog(20*time.Millisecond, time.Millisecond)

	resetCalled := false
	err := wd.Run(context.Background(), func() (bool, error) {
		return false, nil // never finishes
	}, func() { resetCalled = true })

	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.True(t, resetCalled, "a timed-out operation must be forcibly reset")
}

func TestWatchdog_StepErrorResets(t *testing.T) {
	wd := NewWatchdog(time.Second, time.Millisecond)
	stepErr := errors.New("boom")

	resetCalled := false
	err := wd.Run(context.Background(), func() (bool, error) {
		return false, stepErr
	}, func() { resetCalled = true })

	assert.ErrorIs(t, err, stepErr)
	assert.True(t, resetCalled)
}

func TestWatchdog_ContextCancellation(t *testing.T) {
	wd := NewWatchdog(time.Minute, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	resetCalled := false
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	err := wd.Run(ctx, func() (bool, error) {
		return false, nil
	}, func() { resetCalled = true })

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, resetCalled)
}
