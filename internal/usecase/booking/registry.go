package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/petsit-scheduler/internal/domain/booking"
)

type session struct {
	ctl      *Controller
	lastUsed time.Time
}

// Registry keeps one session controller per actor. Sessions nobody used for
// idleTTL and that have no open stream are dropped by Sweep.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	factory  func(domain.Actor) *Controller
	idleTTL  time.Duration
	now      func() time.Time
}

func NewRegistry(factory func(domain.Actor) *Controller, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &Registry{
		sessions: make(map[string]*session),
		factory:  factory,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Get returns the actor's session, replacing it if the role changed.
func (r *Registry) Get(actor domain.Actor) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[actor.ID]; ok && s.ctl.Actor() == actor {
		s.lastUsed = now
		return s.ctl
	}
	c := r.factory(actor)
	r.sessions[actor.ID] = &session{ctl: c, lastUsed: now}
	return c
}

// Touch restarts the idle clock, e.g. when a stream closes.
func (r *Registry) Touch(actorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[actorID]; ok {
		s.lastUsed = r.now()
	}
}

func (r *Registry) Drop(actorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, actorID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and returns how many went.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	n := 0
	for id, s := range r.sessions {
		if s.lastUsed.After(cutoff) || s.ctl.Subscribers() > 0 {
			continue
		}
		delete(r.sessions, id)
		n++
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
