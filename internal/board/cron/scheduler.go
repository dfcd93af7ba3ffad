package cronjob

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper removes entries that have been idle for longer than maxAge.
type Sweeper interface {
	Sweep(maxAge time.Duration) int
}

type job struct {
	name     string
	schedule string
	sweeper  Sweeper
	maxAge   time.Duration
}

type Scheduler struct {
	cron *cron.Cron
	jobs []job
}

// NewScheduler returns a scheduler that sweeps stale drag sessions from
// sweeper on schedule.
func NewScheduler(sweeper Sweeper, schedule string, maxAge time.Duration) *Scheduler {
	s := &Scheduler{cron: cron.New()}
	s.AddSweep("drag_sessions", schedule, sweeper, maxAge)
	return s
}

// AddSweep registers another sweep job. It must be called before Start.
func (s *Scheduler) AddSweep(name, schedule string, sweeper Sweeper, maxAge time.Duration) {
	s.jobs = append(s.jobs, job{name: name, schedule: schedule, sweeper: sweeper, maxAge: maxAge})
}

// Start registers the sweep jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	for _, j := range s.jobs {
		j := j
		if _, err := s.cron.AddFunc(j.schedule, func() { runJob(j) }); err != nil {
			log.Printf("Failed to create cron job %s: %v", j.name, err)
			return err
		}
		log.Printf("Cron job registered: %s (%s, ttl %s)", j.name, j.schedule, j.maxAge)
	}

	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunSweep runs every registered sweep once, immediately.
func (s *Scheduler) RunSweep() {
	for _, j := range s.jobs {
		runJob(j)
	}
}

func runJob(j job) {
	if removed := j.sweeper.Sweep(j.maxAge); removed > 0 {
		log.Printf("[info] operation=sweep_%s removed=%d", j.name, removed)
	}
}
