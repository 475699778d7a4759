package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pfjus/Weather-Chatbot/internal/weather"
)

// Scheduler periodically refreshes cached current conditions for a fixed
// list of cities so frequent conversations get warm answers. It only
// overwrites existing cache entries; nothing is ever evicted by time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	gateway   *weather.Gateway
	cities    []string
	interval  time.Duration
}

// New creates a Scheduler warming the given cities on the given interval.
func New(cities []string, interval time.Duration, gateway *weather.Gateway) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		gateway:   gateway,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic warm job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no warm cities configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running cache warm job")

		var wg sync.WaitGroup
		for _, city := range s.cities {
			city := city
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := s.gateway.Refresh(ctx, city); err != nil {
					log.Printf("scheduler: warm fetch failed for %s: %v", city, err)
				}
			}()
		}
		wg.Wait()
		log.Println("scheduler: completed cache warm job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
