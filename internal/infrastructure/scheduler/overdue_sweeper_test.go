package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOverdueSweeper_RunOnStart(t *testing.T) {
	var calls atomic.Int32
	sweep := func(ctx context.Context, now time.Time) (int, error) {
		calls.Add(1)
		return 3, nil
	}

	sweeper := NewOverdueSweeper(OverdueSweeperConfig{
		Interval:   time.Hour,
		RunOnStart: true,
	}, sweep, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(stopCtx))

	_, count := sweeper.LastRun()
	assert.Equal(t, 3, count)
}

func TestOverdueSweeper_PeriodicRuns(t *testing.T) {
	var calls atomic.Int32
	sweep := func(ctx context.Context, now time.Time) (int, error) {
		calls.Add(1)
		return 0, nil
	}

	sweeper := NewOverdueSweeper(OverdueSweeperConfig{
		Interval:   20 * time.Millisecond,
		RunOnStart: false,
	}, sweep, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(stopCtx))
}

func TestOverdueSweeper_SweepErrorDoesNotStopLoop(t *testing.T) {
	var calls atomic.Int32
	sweep := func(ctx context.Context, now time.Time) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("db unavailable")
		}
		return 1, nil
	}

	sweeper := NewOverdueSweeper(OverdueSweeperConfig{
		Interval:   20 * time.Millisecond,
		RunOnStart: true,
	}, sweep, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(stopCtx))

	_, count := sweeper.LastRun()
	assert.Equal(t, 1, count)
}

func TestOverdueSweeper_DoubleStart(t *testing.T) {
	sweeper := NewOverdueSweeper(OverdueSweeperConfig{
		Interval: time.Hour,
	}, func(ctx context.Context, now time.Time) (int, error) {
		return 0, nil
	}, zap.NewNop())

	require.NoError(t, sweeper.Start(context.Background()))
	assert.Error(t, sweeper.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sweeper.Stop(stopCtx))
}

func TestOverdueSweeper_StopWhenNotRunning(t *testing.T) {
	sweeper := NewOverdueSweeper(OverdueSweeperConfig{}, func(ctx context.Context, now time.Time) (int, error) {
		return 0, nil
	}, nil)

	assert.NoError(t, sweeper.Stop(context.Background()))
}
