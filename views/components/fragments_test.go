package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"bodypuzzle/internal/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestScoreBoard(t *testing.T) {
	html := renderString(t, ScoreBoard(viewmodel.ScoreBoard{SessionID: "s1", Score: 30, Clock: "1:05", Placed: 3, Total: 7, Muted: true}))
	for _, want := range []string{"<strong>30</strong>", "<strong>1:05</strong>", "3/7", "🔇", `/session/s1/restart`} {
		if !strings.Contains(html, want) {
			t.Errorf("scoreboard missing %q in %s", want, html)
		}
	}
}

func TestTray_EscapesLabels(t *testing.T) {
	html := renderString(t, Tray(viewmodel.Tray{Items: []viewmodel.TrayItem{{ID: "x", Label: "<b>", Image: "/i.svg"}}}))
	if strings.Contains(html, "<b>") {
		t.Error("label should be escaped")
	}
	if !strings.Contains(html, "&lt;b&gt;") {
		t.Error("escaped label missing")
	}
}

func TestTray_AllPlaced(t *testing.T) {
	html := renderString(t, Tray(viewmodel.Tray{AllPlaced: true}))
	if !strings.Contains(html, "All organs placed!") {
		t.Errorf("tray %q should announce completion", html)
	}
}

func TestTray_ClassList(t *testing.T) {
	html := renderString(t, Tray(viewmodel.Tray{Locked: true, Items: []viewmodel.TrayItem{
		{ID: "heart", Label: "Heart", Image: "/h.svg", Dragging: true},
		{ID: "brain", Label: "Brain", Image: "/b.svg"},
	}}))
	for _, want := range []string{`class="organ dragging locked" data-item="heart"`, `class="organ locked" data-item="brain"`} {
		if !strings.Contains(html, want) {
			t.Errorf("tray missing %q in %s", want, html)
		}
	}
}

func TestBoard_HighlightAndPlaced(t *testing.T) {
	html := renderString(t, Board(viewmodel.Board{
		Width:   400,
		Height:  700,
		Targets: []viewmodel.TargetZone{{ID: "heart", X: 200, Y: 280, R: 36, Highlighted: true}},
		Placed:  []viewmodel.PlacedItem{{ID: "heart", Label: "Heart", Image: "/h.svg", Left: 50, Top: 40}},
	}))
	for _, want := range []string{`viewBox="0 0 400 700"`, `class="zone highlighted"`, `cx="200"`, "left:50%;top:40%"} {
		if !strings.Contains(html, want) {
			t.Errorf("board missing %q in %s", want, html)
		}
	}
}

func TestEndScreen(t *testing.T) {
	if html := renderString(t, EndScreen(viewmodel.EndScreen{})); html != "" {
		t.Errorf("hidden end screen rendered %q", html)
	}
	won := renderString(t, EndScreen(viewmodel.EndScreen{Visible: true, Won: true, FinalScore: 170, Placed: 7, Total: 7, TimeBonus: 100}))
	for _, want := range []string{"Congratulations", "170", "7/7", "+100"} {
		if !strings.Contains(won, want) {
			t.Errorf("win screen missing %q", want)
		}
	}
	lost := renderString(t, EndScreen(viewmodel.EndScreen{Visible: true, FinalScore: 12, Placed: 2, Total: 7}))
	if !strings.Contains(lost, "Time's Up!") || strings.Contains(lost, "Time Bonus") {
		t.Errorf("timeout screen wrong: %s", lost)
	}
}
