package scheduler

import (
	"log"
	"time"

	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/service"
)

// Scheduler drives the posting loop: one tick per minute, evaluated against
// the stored schedule policy. The tick itself decides whether to post.
type Scheduler struct {
	services *service.Instance
	ticker   *time.Ticker
	stopChan chan struct{}
}

func New(services *service.Instance) *Scheduler {
	return &Scheduler{
		services: services,
		stopChan: make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.ticker = time.NewTicker(time.Minute)

	go func() {
		log.Println("Scheduler started, ticking every minute")
		for {
			select {
			case <-s.ticker.C:
				s.tick()
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopChan)
	log.Println("Scheduler stopped")
}

func (s *Scheduler) tick() {
	result := s.services.Poster.Tick()
	if result.Posted || result.Done != "" || result.Error != "" {
		log.Printf("Tick: posted=%v done=%q error=%q", result.Posted, result.Done, result.Error)
	}
}
