package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultFinalizationSchedule = "@every 1m"
	defaultTickTimeout          = 30 * time.Second
)

type orderFinalizer interface {
	Handle(ctx context.Context, cmd commands.FinalizeDeliveredOrdersCommand) ([]kernel.UUID, error)
}

// FinalizationJob runs the finalization sweep on a cron schedule.
// Ticks never overlap: a tick still running when the next one fires
// causes the next one to be skipped.
type FinalizationJob struct {
	handler   orderFinalizer
	clock     ports.Clock
	schedule  string
	batchSize int
	timeout   time.Duration

	cron   *cron.Cron
	logger *zap.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewFinalizationJob creates the sweep job. An empty schedule falls back to
// DefaultFinalizationSchedule and a non-positive batch size to
// commands.DefaultFinalizationBatchSize.
func NewFinalizationJob(
	handler orderFinalizer,
	clock ports.Clock,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) *FinalizationJob {
	if schedule == "" {
		schedule = DefaultFinalizationSchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultFinalizationBatchSize
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FinalizationJob{
		handler:   handler,
		clock:     clock,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   defaultTickTimeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With(zap.String("component", "finalization_job")),
	}
}

// Start registers the sweep with the scheduler and starts it.
func (j *FinalizationJob) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cancel != nil {
		return errors.New("finalization job already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	if _, err := j.cron.AddFunc(j.schedule, func() { _, _ = j.RunOnce(ctx) }); err != nil {
		cancel()
		return err
	}
	j.ctx, j.cancel = ctx, cancel

	j.cron.Start()
	j.logger.Info("Finalization job started", zap.String("schedule", j.schedule))
	return nil
}

// RunOnce executes a single sweep tick and returns the number of orders
// finalized by it.
func (j *FinalizationJob) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cmd, err := commands.NewFinalizeDeliveredOrdersCommand(j.clock.Now(), j.batchSize)
	if err != nil {
		j.logger.Error("Finalization tick rejected", zap.Error(err))
		return 0, err
	}

	finalized, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return len(finalized), err
		}
		j.logger.Error("Finalization tick failed", zap.Int("finalized", len(finalized)), zap.Error(err))
		return len(finalized), err
	}

	if len(finalized) > 0 {
		j.logger.Debug("Finalization tick completed", zap.Int("finalized", len(finalized)))
	}
	return len(finalized), nil
}

// Stop cancels an in-flight tick and waits for it to return.
func (j *FinalizationJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-j.cron.Stop().Done()
	j.logger.Info("Finalization job stopped")
}
