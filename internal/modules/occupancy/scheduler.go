package occupancy

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Biller raises recurring charges for a billing period ("2006-01").
type Biller interface {
	GenerateMonthlyCharges(ctx context.Context, period string) (int, error)
}

// Scheduler runs the periodic global recalculation and monthly billing.
type Scheduler struct {
	recalc       *Recalculator
	billing      Biller
	recalcEvery  time.Duration
	billingEvery time.Duration
	logger       *zap.Logger
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	now          func() time.Time
}

func NewScheduler(recalc *Recalculator, billing Biller, recalcEvery, billingEvery time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		recalc:       recalc,
		billing:      billing,
		recalcEvery:  recalcEvery,
		billingEvery: billingEvery,
		logger:       logger,
		stopChan:     make(chan struct{}),
		now:          time.Now,
	}
}

// Start launches the background tasks. A zero interval disables a task.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("recalc_interval", s.recalcEvery),
		zap.Duration("billing_interval", s.billingEvery),
	)

	if s.recalc != nil && s.recalcEvery > 0 {
		s.run(ctx, "recalculation", s.recalcEvery, s.recalculate)
	}
	if s.billing != nil && s.billingEvery > 0 {
		s.run(ctx, "billing", s.billingEvery, s.bill)
	}
}

// Stop signals every task and waits for the running iteration to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, name string, every time.Duration, task func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		task(ctx)

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				task(ctx)
			case <-s.stopChan:
				s.logger.Info("task stopped", zap.String("task", name))
				return
			case <-ctx.Done():
				s.logger.Info("task cancelled", zap.String("task", name))
				return
			}
		}
	}()
}

func (s *Scheduler) recalculate(ctx context.Context) {
	if _, err := s.recalc.RecalculateAll(ctx); err != nil {
		s.logger.Error("scheduled recalculation failed", zap.Error(err))
	}
}

func (s *Scheduler) bill(ctx context.Context) {
	period := s.now().Format("2006-01")
	n, err := s.billing.GenerateMonthlyCharges(ctx, period)
	if err != nil {
		s.logger.Error("scheduled billing failed", zap.String("period", period), zap.Error(err))
		return
	}
	s.logger.Info("scheduled billing completed", zap.String("period", period), zap.Int("created", n))
}
