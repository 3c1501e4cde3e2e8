package puzzle

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"bodypuzzle/pkg/realtime"
)

// Stream event names.
const (
	EventState   = "state"
	EventOutcome = "outcome"
)

// Store holds sessions and delegates to realtime.RoomStore for broadcast and
// the per-session clock loop.
type Store struct {
	r       *realtime.RoomStore[*Session]
	catalog *Catalog
	cfg     Config

	mu      sync.Mutex
	repaint map[string]bool // sessions whose next clock pass must publish
}

// NewStore creates an in-memory session store for one catalog and config.
func NewStore(c *Catalog, cfg Config) *Store {
	return &Store{
		r:       realtime.NewRoomStore[*Session](),
		catalog: c,
		cfg:     cfg.withDefaults(),
		repaint: make(map[string]bool),
	}
}

// CreateSession starts a new session and registers its broadcaster.
func (s *Store) CreateSession(now time.Time) *Session {
	sess := NewSession(uuid.NewString(), s.catalog, s.cfg, now)
	s.r.Create(sess.ID, sess)
	return sess
}

// GetSession returns a session by ID if it exists.
func (s *Store) GetSession(id string) (*Session, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.r.Len()
}

// Broadcaster returns the SSE broadcaster for a session.
func (s *Store) Broadcaster(id string) (*realtime.Broadcaster, bool) {
	return s.r.Broadcaster(id)
}

// PublishState tells subscribers to re-render from a fresh snapshot.
func (s *Store) PublishState(id string) {
	s.r.Publish(id, realtime.Event{Name: EventState})
}

// PublishOutcome sends a placement outcome for transient feedback.
func (s *Store) PublishOutcome(id string, outcome Outcome) {
	s.r.Publish(id, realtime.Event{Name: EventOutcome, Payload: outcome})
}

// EnsureClock starts the session's countdown loop if it is not running, or
// wakes it so it picks up a new schedule. The pass that follows always
// publishes state; later passes publish only when the clock moved or the
// session finished. While the session is finished the loop holds no timer.
func (s *Store) EnsureClock(id string) {
	s.markRepaint(id)
	if s.r.Running(id) {
		s.r.Wake(id)
		return
	}
	s.r.RunLoop(id, func(state *Session, now time.Time) (time.Time, []realtime.Event, bool) {
		if state == nil {
			return time.Time{}, nil, true
		}
		var events []realtime.Event
		repaint := s.takeRepaint(id)
		if state.Advance(now) || repaint {
			events = []realtime.Event{{Name: EventState}}
		}
		next, ok := state.NextTimer(now)
		if !ok {
			return time.Time{}, events, false
		}
		return next, events, false
	})
}

func (s *Store) markRepaint(id string) {
	s.mu.Lock()
	s.repaint[id] = true
	s.mu.Unlock()
}

func (s *Store) takeRepaint(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.repaint[id] {
		return false
	}
	delete(s.repaint, id)
	return true
}

// Close tears a session down, cancelling its clock and ending its streams.
func (s *Store) Close(id string) bool {
	s.mu.Lock()
	delete(s.repaint, id)
	s.mu.Unlock()
	return s.r.Delete(id)
}

// Sweep closes sessions idle for longer than ttl and returns how many it closed.
func (s *Store) Sweep(now time.Time, ttl time.Duration) int {
	closed := 0
	for _, room := range s.r.Rooms() {
		if room.State == nil || room.State.IdleFor(now) <= ttl {
			continue
		}
		if s.Close(room.ID) {
			closed++
		}
	}
	return closed
}
