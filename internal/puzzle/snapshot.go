package puzzle

import (
	"time"

	"bodypuzzle/internal/board"
)

// ItemState is an item as the presentation layer sees it.
type ItemState struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Image    string      `json:"image"`
	Placed   bool        `json:"placed"`
	TargetID string      `json:"target,omitempty"`
	Position board.Point `json:"position"` // percent of the board, set when placed
}

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	ID                string         `json:"id"`
	Phase             Phase          `json:"phase"`
	Score             int            `json:"score"`
	Remaining         int            `json:"remaining"`
	Duration          int            `json:"duration"`
	Items             []ItemState    `json:"items"`
	Targets           []board.Target `json:"targets"`
	Viewbox           board.Viewbox  `json:"viewbox"`
	HighlightedTarget string         `json:"highlightedTarget,omitempty"`
	Dragging          string         `json:"dragging,omitempty"`
	Placed            int            `json:"placed"`
	Total             int            `json:"total"`
	Won               bool           `json:"won"`
	TimeBonus         int            `json:"timeBonus"`
	FinalScore        int            `json:"finalScore"`
	Muted             bool           `json:"muted"`
	Music             bool           `json:"music"`
}

// Snapshot returns a consistent view of the session after applying any due
// timers.
func (s *Session) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceLocked(now)

	items := make([]ItemState, 0, len(s.board.Items))
	for _, item := range s.board.Items {
		st := ItemState{
			ID:       item.ID,
			Label:    item.Label,
			Image:    item.Image,
			Placed:   item.Placed,
			TargetID: item.TargetID,
		}
		if item.Placed {
			if t, ok := s.catalog.Target(item.TargetID); ok {
				st.Position = board.Percent(t.Center(), s.cfg.Viewbox)
			}
		}
		items = append(items, st)
	}
	targets := make([]board.Target, len(s.catalog.Targets))
	copy(targets, s.catalog.Targets)

	placed := s.board.PlacedCount()
	won := s.board.AllPlaced()
	bonus := 0
	if s.phase == PhaseFinished && won {
		bonus = s.clock.Remaining
	}
	return Snapshot{
		ID:                s.ID,
		Phase:             s.phase,
		Score:             s.board.Score,
		Remaining:         s.clock.Remaining,
		Duration:          s.cfg.Duration,
		Items:             items,
		Targets:           targets,
		Viewbox:           s.cfg.Viewbox,
		HighlightedTarget: s.highlight,
		Dragging:          s.dragItem,
		Placed:            placed,
		Total:             len(s.board.Items),
		Won:               won,
		TimeBonus:         bonus,
		FinalScore:        s.board.Score + bonus,
		Muted:             s.muted,
		Music:             s.music,
	}
}
