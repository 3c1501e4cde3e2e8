package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"bodypuzzle/internal/board"
)

// ItemDef is the static definition of a draggable organ. Targets lists every
// target id the item may snap into; paired organs list both sides.
type ItemDef struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Image   string   `json:"image"`
	Targets []string `json:"targets"`
}

// Catalog is the target registry plus the initial item set of a game.
type Catalog struct {
	Targets []board.Target
	Items   []ItemDef
}

// DefaultCatalog returns the human body layout on the 400x700 viewbox.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Targets: []board.Target{
			{ID: "brain", X: 200, Y: 60, R: 46},
			{ID: "left_lung", X: 150, Y: 210, R: 44},
			{ID: "right_lung", X: 250, Y: 210, R: 44},
			{ID: "heart", X: 200, Y: 280, R: 36},
			{ID: "liver", X: 260, Y: 340, R: 44},
			{ID: "stomach", X: 170, Y: 360, R: 36},
			{ID: "kidneys", X: 200, Y: 400, R: 32},
			{ID: "intestines", X: 200, Y: 470, R: 56},
		},
		Items: []ItemDef{
			{ID: "brain", Label: "Brain", Image: "/static/organs/brain.svg", Targets: []string{"brain"}},
			{ID: "heart", Label: "Heart", Image: "/static/organs/heart.svg", Targets: []string{"heart"}},
			{ID: "lungs", Label: "Lungs", Image: "/static/organs/lungs.svg", Targets: []string{"left_lung", "right_lung"}},
			{ID: "liver", Label: "Liver", Image: "/static/organs/liver.svg", Targets: []string{"liver"}},
			{ID: "stomach", Label: "Stomach", Image: "/static/organs/stomach.svg", Targets: []string{"stomach"}},
			{ID: "kidneys", Label: "Kidneys", Image: "/static/organs/kidneys.svg", Targets: []string{"kidneys"}},
			{ID: "intestines", Label: "Intestines", Image: "/static/organs/intestines.svg", Targets: []string{"intestines"}},
		},
	}
}

// Validate checks ids are present and unique, radii are positive and every
// item references known targets. All problems are reported together.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.Items) == 0 {
		errs = append(errs, errors.New("no items"))
	}
	targetIDs := make([]string, 0, len(c.Targets))
	seenTargets := make(map[string]bool, len(c.Targets))
	for i, t := range c.Targets {
		switch {
		case strings.TrimSpace(t.ID) == "":
			errs = append(errs, fmt.Errorf("target %d: empty id", i))
			continue
		case seenTargets[t.ID]:
			errs = append(errs, fmt.Errorf("target %q: duplicate id", t.ID))
			continue
		case t.R <= 0:
			errs = append(errs, fmt.Errorf("target %q: radius %v must be positive", t.ID, t.R))
		}
		seenTargets[t.ID] = true
		targetIDs = append(targetIDs, t.ID)
	}
	seenItems := make(map[string]bool, len(c.Items))
	for i, item := range c.Items {
		if strings.TrimSpace(item.ID) == "" {
			errs = append(errs, fmt.Errorf("item %d: empty id", i))
			continue
		}
		if seenItems[item.ID] {
			errs = append(errs, fmt.Errorf("item %q: duplicate id", item.ID))
			continue
		}
		seenItems[item.ID] = true
		if len(item.Targets) == 0 {
			errs = append(errs, fmt.Errorf("item %q: no targets", item.ID))
		}
		for _, id := range item.Targets {
			if seenTargets[id] {
				continue
			}
			if s := suggest(id, targetIDs); s != "" {
				errs = append(errs, fmt.Errorf("item %q: unknown target %q (did you mean %q?)", item.ID, id, s))
			} else {
				errs = append(errs, fmt.Errorf("item %q: unknown target %q", item.ID, id))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
}

// Target returns the target with the given id.
func (c *Catalog) Target(id string) (board.Target, bool) {
	for _, t := range c.Targets {
		if t.ID == id {
			return t, true
		}
	}
	return board.Target{}, false
}

// Item returns the item definition with the given id.
func (c *Catalog) Item(id string) (ItemDef, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return ItemDef{}, false
}

// SuggestItem returns the closest known item id to a mistyped one, or "".
func (c *Catalog) SuggestItem(id string) string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return suggest(id, ids)
}

func suggest(word string, candidates []string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return ""
	}
	best := ""
	bestDist := 0
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(word, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if best == "" || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func unknownItem(c *Catalog, id string) error {
	if s := c.SuggestItem(id); s != "" && s != id {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownItem, id, s)
	}
	return fmt.Errorf("%w %q", ErrUnknownItem, id)
}
