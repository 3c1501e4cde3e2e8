package puzzle

import "errors"

var (
	ErrUnknownItem    = errors.New("unknown item")
	ErrItemPlaced     = errors.New("item already placed")
	ErrDragActive     = errors.New("another drag is already active")
	ErrNoActiveDrag   = errors.New("no active drag for item")
	ErrNotPlaying     = errors.New("session not playing")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
