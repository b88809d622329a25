package worker

import (
	"context"
	"time"

	"github.com/simecdev/simec-api/internal/service/lifecycle"
	"github.com/simecdev/simec-api/pkg/logger"
)

// SweepWorker drives the lifecycle engine on a fixed interval. The sweep
// runs synchronously inside the single loop goroutine, so two sweeps can
// never overlap; a cycle that overruns the interval simply delays the next
// tick.
type SweepWorker struct {
	engine   *lifecycle.Engine
	interval time.Duration
	logger   *logger.Logger
}

func NewSweepWorker(engine *lifecycle.Engine, interval time.Duration, log *logger.Logger) *SweepWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SweepWorker{
		engine:   engine,
		interval: interval,
		logger:   log,
	}
}

func (w *SweepWorker) Start(ctx context.Context) {
	w.logger.Info("sweep worker started", "interval", w.interval.String())

	// First sweep immediately, then on the ticker.
	w.engine.Run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sweep worker shutting down")
			return
		case <-ticker.C:
			w.engine.Run(ctx)
		}
	}
}
