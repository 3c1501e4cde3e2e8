package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"bodypuzzle/internal/viewmodel"
)

func TestHomePage_Render(t *testing.T) {
	var buf bytes.Buffer
	err := HomePage(viewmodel.HomePage{Title: "Human Body Puzzle", DurationSec: 120, Reward: 10, Penalty: 2}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Human Body Puzzle", "+10 points correct, -2 points wrong", "2 minutes to complete", `action="/sessions"`} {
		if !strings.Contains(html, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestGamePage_RenderSections(t *testing.T) {
	var buf bytes.Buffer
	data := viewmodel.GamePage{
		Title:     "Human Body Puzzle",
		SessionID: "abc",
		Tray: viewmodel.Tray{Items: []viewmodel.TrayItem{
			{ID: "heart", Label: "Heart", Image: "/static/organs/heart.svg"},
		}},
		Board: viewmodel.Board{Width: 400, Height: 700},
	}
	if err := GamePage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{`id="scoreboard"`, `id="board"`, `id="tray"`, `id="end"`, `data-item="heart"`, `data-session="abc"`} {
		if !strings.Contains(html, want) {
			t.Errorf("game page missing %q", want)
		}
	}
}

func TestDescribeDuration(t *testing.T) {
	cases := map[int]string{60: "1 minute", 120: "2 minutes", 45: "45 seconds"}
	for in, want := range cases {
		if got := describeDuration(in); got != want {
			t.Errorf("describeDuration(%d) = %q, want %q", in, got, want)
		}
	}
}
