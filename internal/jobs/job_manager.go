package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a background task with an explicit lifecycle.
type Job interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  Job
}

// JobManager coordinates all scheduled jobs in the application.
// Jobs start in registration order and stop in reverse order.
type JobManager struct {
	jobs   []namedJob
	logger *zap.Logger
}

// NewJobManager creates a job manager running the finalization sweep.
func NewJobManager(finalization *FinalizationJob, logger *zap.Logger) *JobManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	jm := &JobManager{logger: logger.With(zap.String("component", "job_manager"))}
	if finalization != nil {
		jm.Register("finalization", finalization)
	}
	return jm
}

// Register adds a job. It must be called before StartAll.
func (jm *JobManager) Register(name string, job Job) {
	if job == nil {
		return
	}
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, nj := range jm.jobs {
		if err := nj.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", nj.name, err)
		}
	}
	jm.logger.Info("Jobs started", zap.Int("count", len(jm.jobs)))
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
