package viewmodel

// HomePage holds data for the start menu.
type HomePage struct {
	Title       string
	DurationSec int
	Reward      int
	Penalty     int
}

// GamePage holds data for the main game page template.
type GamePage struct {
	Title      string
	SessionID  string
	ScoreBoard ScoreBoard
	Tray       Tray
	Board      Board
	End        EndScreen
}

// ScoreBoard holds the header strip: score, clock, progress and toggles.
type ScoreBoard struct {
	SessionID string
	Score     int
	Clock     string
	Remaining int
	Placed    int
	Total     int
	Muted     bool
	Music     bool
}

// TrayItem is an unplaced organ waiting in the tray.
type TrayItem struct {
	ID       string
	Label    string
	Image    string
	Dragging bool
}

// Tray holds the draggable organs.
type Tray struct {
	Items     []TrayItem
	AllPlaced bool
	Locked    bool
}

// TargetZone is a drop zone drawn on the board.
type TargetZone struct {
	ID          string
	X           float64
	Y           float64
	R           float64
	Highlighted bool
}

// PlacedItem is an organ already on the body, positioned in percent of the board.
type PlacedItem struct {
	ID    string
	Label string
	Image string
	Left  float64
	Top   float64
}

// Board holds the body outline, drop zones and placed organs.
type Board struct {
	Width   float64
	Height  float64
	Targets []TargetZone
	Placed  []PlacedItem
}

// EndScreen holds the result overlay shown once the session finishes.
type EndScreen struct {
	SessionID  string
	Visible    bool
	Won        bool
	FinalScore int
	Placed     int
	Total      int
	TimeBonus  int
}
