package alerts

import (
	"context"
	"time"
)

const defaultPollInterval = 60 * time.Second

// Runner периодически вызывает Scheduler.Tick
type Runner struct {
	scheduler    *Scheduler
	timeProvider TimeProvider
	logger       Logger
	interval     time.Duration
}

// NewRunner создает фоновый обработчик уведомлений
func NewRunner(scheduler *Scheduler, interval time.Duration, logger Logger) *Runner {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Runner{
		scheduler:    scheduler,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		interval:     interval,
	}
}

// WithTimeProvider устанавливает кастомный провайдер времени (для тестов)
func (r *Runner) WithTimeProvider(tp TimeProvider) *Runner {
	r.timeProvider = tp
	return r
}

// Run выполняет первый проход сразу, затем каждые interval до отмены ctx
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("Run: alert scheduler started, interval=%s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Run: alert scheduler stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Runner) tick(ctx context.Context) {
	if _, err := r.scheduler.Tick(ctx, r.timeProvider.Now()); err != nil {
		r.logger.Error("Run: tick failed: %v", err)
	}
}
