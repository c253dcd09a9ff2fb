package jobs

import (
	"context"
	"time"

	"society-console-backend/internal/config"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/service"
)

const (
	JobMarkOverdueMaintenance = "mark-overdue-maintenance"
	JobRecomputeVerification  = "recompute-verification"
	JobAll                    = "all"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	now      func() time.Time
	timeout  time.Duration
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Amenities    service.AmenityService
	Verification service.VerificationService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		services: services,
		config:   cfg,
		now:      time.Now,
		timeout:  5 * time.Minute,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery. It reports
// whether the job finished without error or panic.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			ok = false
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	start := jr.now()
	if err := jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return false
	}
	logger.Info("Job completed", "job", jobName, "duration_ms", jr.now().Sub(start).Milliseconds())
	return true
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() bool {
	ok := jr.MarkOverdueMaintenance()
	return jr.RecomputeVerificationProgress() && ok
}

// RunOnce runs the named job, or every job for JobAll. Unknown names return
// false.
func (jr *JobRunner) RunOnce(name string) bool {
	switch name {
	case JobMarkOverdueMaintenance:
		return jr.MarkOverdueMaintenance()
	case JobRecomputeVerification:
		return jr.RecomputeVerificationProgress()
	case JobAll:
		return jr.RunAll()
	}
	logger.Error("Unknown job name", "job", name)
	return false
}
