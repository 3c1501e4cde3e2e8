package components

import (
	"fmt"

	"github.com/a-h/templ"

	"bodypuzzle/internal/viewmodel"
)

// bodyOutline is the silhouette drawn in the 400x700 viewbox.
const bodyOutline = "M200 50 C220 50 240 70 240 90 L240 120 C250 130 260 140 270 160 L280 180 " +
	"C290 200 300 220 310 250 L320 280 C325 300 325 320 320 340 L310 380 C300 420 290 460 280 500 " +
	"L270 540 C260 580 250 620 240 650 L200 680 C160 680 140 650 130 620 C120 580 110 540 100 500 " +
	"L90 460 C80 420 70 380 60 340 C55 320 55 300 60 280 L70 250 C80 220 90 200 100 180 L110 160 " +
	"C120 140 130 130 140 120 L140 90 C140 70 160 50 180 50 L200 50 Z"

func viewBox(b viewmodel.Board) string {
	return fmt.Sprintf("0 0 %v %v", b.Width, b.Height)
}

// placedStyle pins an organ's centre at its target, in percent of the board.
func placedStyle(p viewmodel.PlacedItem) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("left:%v%%;top:%v%%", p.Left, p.Top))
}

func restartURL(sessionID string) templ.SafeURL {
	return templ.URL("/session/" + sessionID + "/restart")
}

func soundLabel(muted bool) string {
	if muted {
		return "Unmute sound"
	}
	return "Mute sound"
}

func soundIcon(muted bool) string {
	if muted {
		return "🔇"
	}
	return "🔊"
}

func musicLabel(on bool) string {
	if on {
		return "Music off"
	}
	return "Music on"
}
