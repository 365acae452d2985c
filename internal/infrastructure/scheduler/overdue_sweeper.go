package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SweepFunc marks everything due before now and reports how many rows changed.
type SweepFunc func(ctx context.Context, now time.Time) (int, error)

// OverdueSweeperConfig holds configuration for the overdue sweeper
type OverdueSweeperConfig struct {
	// Interval between sweep runs
	Interval time.Duration
	// RunOnStart triggers a sweep immediately when the sweeper starts
	RunOnStart bool
}

// DefaultOverdueSweeperConfig returns default sweeper configuration
func DefaultOverdueSweeperConfig() OverdueSweeperConfig {
	return OverdueSweeperConfig{
		Interval:   time.Hour,
		RunOnStart: true,
	}
}

// OverdueSweeper periodically runs a sweep function that flags overdue
// invoices. The state transition itself lives in the billing service; the
// sweeper only drives the clock.
type OverdueSweeper struct {
	config OverdueSweeperConfig
	sweep  SweepFunc
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRun   time.Time
	lastCount int
}

// NewOverdueSweeper creates a new overdue sweeper
func NewOverdueSweeper(config OverdueSweeperConfig, sweep SweepFunc, logger *zap.Logger) *OverdueSweeper {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueSweeper{
		config: config,
		sweep:  sweep,
		logger: logger,
	}
}

// Start begins the periodic sweep loop
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("overdue sweeper already running")
	}
	s.isRunning = true
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(runCtx)

	s.logger.Info("Overdue sweeper started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)
	return nil
}

// Stop halts the sweep loop and waits for an in-flight run to finish
func (s *OverdueSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweeper stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for overdue sweeper to stop: %w", ctx.Err())
	}
}

// LastRun returns the time of the last completed sweep and its count
func (s *OverdueSweeper) LastRun() (time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastCount
}

func (s *OverdueSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.runOnce(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *OverdueSweeper) runOnce(ctx context.Context) {
	now := time.Now()
	count, err := s.sweep(ctx, now)
	if err != nil {
		s.logger.Error("Overdue sweep failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.lastRun = now
	s.lastCount = count
	s.mu.Unlock()

	if count > 0 {
		s.logger.Info("Overdue sweep completed",
			zap.Int("marked_overdue", count),
			zap.Time("as_of", now),
		)
	} else {
		s.logger.Debug("Overdue sweep completed, nothing to mark")
	}
}
