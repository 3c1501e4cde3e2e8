package realtime

import (
	"context"
	"sync"
	"time"
)

// Room holds state and a broadcaster for one room.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

type loop struct {
	cancel context.CancelFunc
	wake   chan struct{}
}

// RoomStore manages rooms, their broadcasters and their timing loops.
type RoomStore[T any] struct {
	mu    sync.RWMutex
	rooms map[string]*Room[T]
	loops map[string]*loop
}

// NewRoomStore creates an empty room store.
func NewRoomStore[T any]() *RoomStore[T] {
	return &RoomStore[T]{
		rooms: make(map[string]*Room[T]),
		loops: make(map[string]*loop),
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Rooms returns a snapshot of all rooms.
func (s *RoomStore[T]) Rooms() []*Room[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Room[T], 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

// Len reports the number of live rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Broadcaster returns the broadcaster for the room.
func (s *RoomStore[T]) Broadcaster(id string) (*Broadcaster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return r.hub, true
}

// Publish notifies subscribers of the room's broadcaster. Unknown rooms are ignored.
func (s *RoomStore[T]) Publish(id string, event Event) {
	hub, ok := s.Broadcaster(id)
	if !ok {
		return
	}
	hub.Publish(event)
}

// Delete tears a room down: its loop is cancelled, its subscribers are
// closed and the room is forgotten. It reports whether the room existed.
func (s *RoomStore[T]) Delete(id string) bool {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	l, hasLoop := s.loops[id]
	delete(s.loops, id)
	s.mu.Unlock()

	if hasLoop {
		l.cancel()
	}
	if ok && r.hub != nil {
		r.hub.Close()
	}
	return ok
}

// TickFunc is called by RunLoop to determine the next wake time and events to publish.
// A zero next time parks the loop until Wake is called. stop true means exit the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, events []Event, stop bool)

// RunLoop starts a timing loop for the room. If a loop already exists for id,
// it is not started again. Unknown rooms get no loop.
func (s *RoomStore[T]) RunLoop(id string, tick TickFunc[T]) {
	s.mu.Lock()
	room, ok := s.rooms[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if _, running := s.loops[id]; running {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &loop{cancel: cancel, wake: make(chan struct{}, 1)}
	s.loops[id] = l
	s.mu.Unlock()

	go func() {
		defer func() {
			cancel()
			s.mu.Lock()
			if s.loops[id] == l {
				delete(s.loops, id)
			}
			s.mu.Unlock()
		}()

		for {
			if ctx.Err() != nil {
				return
			}
			next, events, stop := tick(room.State, time.Now().UTC())
			if stop {
				return
			}
			for _, e := range events {
				s.Publish(id, e)
			}

			if next.IsZero() {
				select {
				case <-ctx.Done():
					return
				case <-l.wake:
					continue
				}
			}

			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			case <-l.wake:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
		}
	}()
}

// Running reports whether a loop is registered for the room.
func (s *RoomStore[T]) Running(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loops[id]
	return ok
}

// Wake unblocks the room's loop so it recomputes immediately.
func (s *RoomStore[T]) Wake(id string) {
	s.mu.RLock()
	l, ok := s.loops[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
