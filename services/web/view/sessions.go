package view

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

type sessionEntry struct {
	ctrl     *Controller
	lastSeen time.Time
}

// Sessions maps session ids to controllers. State lives only in memory and
// is lost on restart.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	factory func() *Controller
	now     func() time.Time
}

// NewSessions builds an empty registry; factory creates fresh controllers.
func NewSessions(factory func() *Controller) *Sessions {
	return &Sessions{
		entries: make(map[string]*sessionEntry),
		factory: factory,
		now:     time.Now,
	}
}

// Get returns the controller for id and marks it as recently used.
func (s *Sessions) Get(id string) (*Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.ctrl, true
}

// Create starts a new session and returns its id.
func (s *Sessions) Create() (string, *Controller) {
	id := uuid.NewString()
	ctrl := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &sessionEntry{ctrl: ctrl, lastSeen: s.now()}
	return id, ctrl
}

// GetOrCreate resolves id, starting a new session when it is unknown.
func (s *Sessions) GetOrCreate(id string) (string, *Controller, bool) {
	if id != "" {
		if ctrl, ok := s.Get(id); ok {
			return id, ctrl, false
		}
	}
	newID, ctrl := s.Create()
	return newID, ctrl, true
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops sessions idle for longer than maxIdle and reports how many.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	evicted := 0
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

// StartSweeper schedules Sweep every interval. Stop the returned cron on
// shutdown.
func StartSweeper(sessions *Sessions, interval, maxIdle time.Duration) (*cron.Cron, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid sweep interval: %s", interval)
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if n := sessions.Sweep(maxIdle); n > 0 {
			log.Printf("evicted %d idle sessions (%d active)", n, sessions.Len())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}
	c.Start()
	return c, nil
}
