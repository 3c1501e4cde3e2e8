package puzzle

import (
	"bodypuzzle/internal/board"
)

// Item is the per-session state of one draggable organ.
type Item struct {
	ItemDef
	Placed   bool
	TargetID string // resolved target once placed
}

// Board is the mutable placement state of one play-through: items, the
// occupied targets and the running score. An item is placed exactly when its
// TargetID is in Occupied.
type Board struct {
	Items    []Item
	Occupied map[string]bool
	Score    int
}

// NewBoard creates an unplaced board from the catalog's items.
func NewBoard(c *Catalog) *Board {
	b := &Board{}
	b.Items = make([]Item, 0, len(c.Items))
	for _, def := range c.Items {
		b.Items = append(b.Items, Item{ItemDef: def})
	}
	b.Reset()
	return b
}

// Reset unplaces every item, empties the occupied set and zeroes the score.
func (b *Board) Reset() {
	for i := range b.Items {
		b.Items[i].Placed = false
		b.Items[i].TargetID = ""
	}
	b.Occupied = make(map[string]bool)
	b.Score = 0
}

// Item returns the item with the given id.
func (b *Board) Item(id string) (*Item, bool) {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return &b.Items[i], true
		}
	}
	return nil, false
}

// PlacedCount returns how many items are placed.
func (b *Board) PlacedCount() int {
	n := 0
	for _, item := range b.Items {
		if item.Placed {
			n++
		}
	}
	return n
}

// AllPlaced reports whether every item is placed.
func (b *Board) AllPlaced() bool {
	return len(b.Items) > 0 && b.PlacedCount() == len(b.Items)
}

type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the result of one placement attempt. Delta is the nominal point
// change; Score is the running score after the floor is applied.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	ItemID   string      `json:"item"`
	Label    string      `json:"label"`
	TargetID string      `json:"target,omitempty"`
	Delta    int         `json:"delta"`
	Score    int         `json:"score"`
}

// Engine decides placements against a fixed target registry.
type Engine struct {
	catalog    *Catalog
	multiplier float64
	reward     int
	penalty    int
}

// NewEngine binds the engine to a catalog and the scoring part of cfg.
func NewEngine(c *Catalog, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		catalog:    c,
		multiplier: cfg.SnapMultiplier,
		reward:     cfg.Reward,
		penalty:    cfg.Penalty,
	}
}

// Candidates returns the item's declared targets that are still free, in
// declaration order.
func (e *Engine) Candidates(b *Board, item *Item) []board.Target {
	out := make([]board.Target, 0, len(item.Targets))
	for _, id := range item.Targets {
		if b.Occupied[id] {
			continue
		}
		t, ok := e.catalog.Target(id)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Match returns the free target of item that p snaps into, nearest first.
// It does not touch the board.
func (e *Engine) Match(b *Board, itemID string, p board.Point) (board.Target, bool, error) {
	item, err := e.unplaced(b, itemID)
	if err != nil {
		return board.Target{}, false, err
	}
	t, _, ok := board.Nearest(p, e.Candidates(b, item), e.multiplier)
	return t, ok, nil
}

// Attempt places itemID at the logical point p if it snaps into one of the
// item's free targets, and scores the attempt either way. A non-finite point
// never matches.
func (e *Engine) Attempt(b *Board, itemID string, p board.Point) (Outcome, error) {
	item, err := e.unplaced(b, itemID)
	if err != nil {
		return Outcome{}, err
	}
	t, _, ok := board.Nearest(p, e.Candidates(b, item), e.multiplier)
	if !ok {
		return e.fail(b, item), nil
	}
	item.Placed = true
	item.TargetID = t.ID
	b.Occupied[t.ID] = true
	b.Score += e.reward
	return Outcome{
		Kind:     OutcomeSuccess,
		ItemID:   item.ID,
		Label:    item.Label,
		TargetID: t.ID,
		Delta:    e.reward,
		Score:    b.Score,
	}, nil
}

// Miss scores a release that could not be located on the board.
func (e *Engine) Miss(b *Board, itemID string) (Outcome, error) {
	item, err := e.unplaced(b, itemID)
	if err != nil {
		return Outcome{}, err
	}
	return e.fail(b, item), nil
}

func (e *Engine) fail(b *Board, item *Item) Outcome {
	b.Score -= e.penalty
	if b.Score < 0 {
		b.Score = 0
	}
	return Outcome{
		Kind:   OutcomeFailure,
		ItemID: item.ID,
		Label:  item.Label,
		Delta:  -e.penalty,
		Score:  b.Score,
	}
}

func (e *Engine) unplaced(b *Board, itemID string) (*Item, error) {
	item, ok := b.Item(itemID)
	if !ok {
		return nil, unknownItem(e.catalog, itemID)
	}
	if item.Placed {
		return nil, ErrItemPlaced
	}
	return item, nil
}
