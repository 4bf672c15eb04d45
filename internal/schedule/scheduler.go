package schedule

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler re-runs a task on a fixed interval. The job runs in singleton
// mode, so a run that takes longer than the interval is never overlapped by
// the next one.
type Scheduler struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	task      func()
	logger    *log.Logger
	running   bool
}

// New creates a scheduler that invokes task every interval
func New(interval time.Duration, task func(), logger *log.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %v", interval)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: scheduler,
		interval:  interval,
		task:      task,
		logger:    logger,
	}, nil
}

// Start registers the interval job and begins scheduling
func (s *Scheduler) Start() error {
	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create interval job: %w", err)
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Printf("schedule.start: interval=%s", s.interval)
	return nil
}

// Stop shuts the scheduler down, waiting for a running task to finish
func (s *Scheduler) Stop() error {
	if !s.running {
		return fmt.Errorf("scheduler is not running")
	}

	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}

	s.running = false
	s.logger.Printf("schedule.stop: stopped")
	return nil
}

// IsRunning reports whether the scheduler has been started
func (s *Scheduler) IsRunning() bool {
	return s.running
}
