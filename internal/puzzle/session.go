package puzzle

import (
	"fmt"
	"sync"
	"time"

	"bodypuzzle/internal/board"
	"bodypuzzle/pkg/realtime"
)

type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Session owns one play-through: the board, the countdown, the phase and the
// single active drag. Every method is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	ID        string
	CreatedAt time.Time

	cfg     Config
	catalog *Catalog
	engine  *Engine
	board   *Board
	clock   realtime.Countdown
	phase   Phase

	dragItem  string
	highlight string
	finishAt  time.Time // pending win transition, zero when none
	lastSeen  time.Time

	muted bool
	music bool
}

// NewSession creates a session and starts playing at now.
func NewSession(id string, c *Catalog, cfg Config, now time.Time) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		cfg:       cfg,
		catalog:   c,
		engine:    NewEngine(c, cfg),
		board:     NewBoard(c),
		clock:     realtime.NewCountdown(cfg.Duration, cfg.TickInterval),
	}
	s.restartLocked(now)
	return s
}

// Restart performs a full reset from any phase: score 0, every item
// unplaced, occupied set empty, countdown back to the full duration.
func (s *Session) Restart(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restartLocked(now)
}

func (s *Session) restartLocked(now time.Time) {
	s.board.Reset()
	s.clock.Start(now)
	s.phase = PhasePlaying
	s.dragItem = ""
	s.highlight = ""
	s.finishAt = time.Time{}
	s.lastSeen = now
}

// Advance applies due countdown ticks and a due win transition. It reports
// whether anything visible changed.
func (s *Session) Advance(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advanceLocked(now)
}

func (s *Session) advanceLocked(now time.Time) bool {
	if s.phase != PhasePlaying {
		return false
	}
	if !s.finishAt.IsZero() {
		if now.Before(s.finishAt) {
			return false
		}
		s.finishLocked()
		return true
	}
	ticked, expired := s.clock.Advance(now)
	if expired {
		s.finishLocked()
		return true
	}
	return ticked > 0
}

func (s *Session) finishLocked() {
	s.phase = PhaseFinished
	s.clock.Stop()
	s.finishAt = time.Time{}
	s.dragItem = ""
	s.highlight = ""
}

// NextTimer returns when the session next needs Advance: the next countdown
// tick or the pending win transition, whichever is first.
func (s *Session) NextTimer(now time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return time.Time{}, false
	}
	if !s.finishAt.IsZero() {
		return s.finishAt, true
	}
	return s.clock.NextWake()
}

// BeginDrag starts dragging itemID. Only one drag may be active; a second
// pointer-down is refused with ErrDragActive.
func (s *Session) BeginDrag(itemID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	s.advanceLocked(now)
	if s.phase != PhasePlaying {
		return ErrNotPlaying
	}
	if s.dragItem != "" {
		return fmt.Errorf("%w: %q", ErrDragActive, s.dragItem)
	}
	item, ok := s.board.Item(itemID)
	if !ok {
		return unknownItem(s.catalog, itemID)
	}
	if item.Placed {
		return ErrItemPlaced
	}
	s.dragItem = itemID
	s.highlight = ""
	if free := s.engine.Candidates(s.board, item); len(free) > 0 {
		s.highlight = free[0].ID
	}
	return nil
}

// Hover reports the target the dragged item would snap into if released at
// client. It never changes session state.
func (s *Session) Hover(itemID string, client board.Point, box board.Rect) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying {
		return "", ErrNotPlaying
	}
	if s.dragItem == "" || s.dragItem != itemID {
		return "", ErrNoActiveDrag
	}
	if !box.Measured() {
		return "", nil
	}
	t, ok, err := s.engine.Match(s.board, itemID, board.ToLogical(client, box, s.cfg.Viewbox))
	if err != nil || !ok {
		return "", err
	}
	return t.ID, nil
}

// EndDrag releases the active drag at client and runs the placement attempt.
// A release over an unmeasured board scores as a miss. When the last item
// lands the countdown freezes and the session finishes after the grace delay.
func (s *Session) EndDrag(itemID string, client board.Point, box board.Rect, now time.Time) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	s.advanceLocked(now)
	if s.dragItem == "" || s.dragItem != itemID {
		return Outcome{}, ErrNoActiveDrag
	}
	s.dragItem = ""
	s.highlight = ""
	if s.phase != PhasePlaying {
		return Outcome{}, ErrNotPlaying
	}

	var (
		outcome Outcome
		err     error
	)
	if box.Measured() {
		outcome, err = s.engine.Attempt(s.board, itemID, board.ToLogical(client, box, s.cfg.Viewbox))
	} else {
		outcome, err = s.engine.Miss(s.board, itemID)
	}
	if err != nil {
		return Outcome{}, err
	}
	if outcome.Kind == OutcomeSuccess && s.board.AllPlaced() {
		s.clock.Stop()
		s.finishAt = now.Add(s.cfg.GraceDelay)
		s.advanceLocked(now)
	}
	return outcome, nil
}

// CancelDrag abandons the active drag without scoring it.
func (s *Session) CancelDrag(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragItem == "" || (itemID != "" && s.dragItem != itemID) {
		return ErrNoActiveDrag
	}
	s.dragItem = ""
	s.highlight = ""
	return nil
}

// SetMuted toggles sound feedback. It has no effect on scoring.
func (s *Session) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

// SetMusic toggles background music. It has no effect on scoring.
func (s *Session) SetMusic(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.music = on
}

// Touch records client activity for idle expiry.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// IdleFor returns how long the session has gone without client activity.
func (s *Session) IdleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Catalog returns the registry the session was built from.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// Config returns the session's effective configuration.
func (s *Session) Config() Config {
	return s.cfg
}
