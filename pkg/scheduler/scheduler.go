package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"rental-crm/pkg/logger"
)

// EventScheduler รัน job ตาม cron expression (งาน housekeeping เช่น sample metrics)
type EventScheduler interface {
	Start()
	Stop()
	AddJob(id, cronExpr string, task func()) error
	RemoveJob(id string) error
	ListJobs() map[string]*JobInfo
	IsRunning() bool
}

type JobInfo struct {
	ID       string
	CronExpr string
	LastRun  *time.Time
	NextRun  *time.Time
}

type GocronScheduler struct {
	scheduler *gocron.Scheduler
	jobs      map[string]*gocronJob
	mu        sync.RWMutex
	running   bool
}

type gocronJob struct {
	cronExpr string
	job      *gocron.Job

	// lock แยกจาก scheduler; Stop รอ job ที่กำลังรันโดยถือ s.mu อยู่
	mu      sync.Mutex
	lastRun *time.Time
}

func (j *gocronJob) markRun(t time.Time) {
	j.mu.Lock()
	j.lastRun = &t
	j.mu.Unlock()
}

func (j *gocronJob) lastRunCopy() *time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.lastRun == nil {
		return nil
	}
	t := *j.lastRun
	return &t
}

func NewEventScheduler() EventScheduler {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	return &GocronScheduler{
		scheduler: scheduler,
		jobs:      make(map[string]*gocronJob),
	}
}

func (s *GocronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.scheduler.StartAsync()
	s.running = true
	logger.Info("Event scheduler started", "jobs", len(s.jobs))
}

func (s *GocronScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.scheduler.Stop()
	s.running = false
	logger.Info("Event scheduler stopped")
}

func (s *GocronScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *GocronScheduler) AddJob(id, cronExpr string, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[id]; exists {
		return fmt.Errorf("job with ID %s already exists", id)
	}

	entry := &gocronJob{cronExpr: cronExpr}
	job, err := s.scheduler.Cron(cronExpr).Do(func() {
		entry.markRun(time.Now())

		defer func() {
			if r := recover(); r != nil {
				logger.Error("Scheduled job panicked", "job_id", id, "error", r)
			}
		}()
		task()
	})
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", id, err)
	}

	entry.job = job
	s.jobs[id] = entry
	logger.Debug("Job added", "job_id", id, "cron", cronExpr, "next_run", job.NextRun().Format(time.RFC3339))
	return nil
}

func (s *GocronScheduler) RemoveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID %s not found", id)
	}

	s.scheduler.RemoveByReference(j.job)
	delete(s.jobs, id)
	return nil
}

// ListJobs คืน snapshot ของ job ทั้งหมด
func (s *GocronScheduler) ListJobs() map[string]*JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[string]*JobInfo, len(s.jobs))
	for id, j := range s.jobs {
		info := &JobInfo{ID: id, CronExpr: j.cronExpr, LastRun: j.lastRunCopy()}
		nextRun := j.job.NextRun()
		info.NextRun = &nextRun
		jobs[id] = info
	}
	return jobs
}
