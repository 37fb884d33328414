package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a scheduled task.
type Job interface {
	Name() string
	Start() error
	// Stop unschedules the job and waits for a running tick to finish.
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs   []Job
	logger *zap.Logger
}

func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{
		jobs:   jobs,
		logger: logger,
	}
}

// StartAll starts the jobs in order. If one fails the already started jobs
// are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
		jm.logger.Info("job started", zap.String("job", job.Name()))
	}
	return nil
}

// StopAll stops the jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
		jm.logger.Info("job stopped", zap.String("job", jm.jobs[i].Name()))
	}
}
