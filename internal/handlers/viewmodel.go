package handlers

import (
	"fmt"

	"bodypuzzle/internal/puzzle"
	"bodypuzzle/internal/viewmodel"
)

func buildGamePage(snap puzzle.Snapshot) viewmodel.GamePage {
	finished := snap.Phase == puzzle.PhaseFinished

	tray := viewmodel.Tray{
		AllPlaced: snap.Placed == snap.Total,
		Locked:    finished,
	}
	placed := make([]viewmodel.PlacedItem, 0, snap.Placed)
	for _, item := range snap.Items {
		if item.Placed {
			placed = append(placed, viewmodel.PlacedItem{
				ID:    item.ID,
				Label: item.Label,
				Image: item.Image,
				Left:  item.Position.X,
				Top:   item.Position.Y,
			})
			continue
		}
		tray.Items = append(tray.Items, viewmodel.TrayItem{
			ID:       item.ID,
			Label:    item.Label,
			Image:    item.Image,
			Dragging: item.ID == snap.Dragging,
		})
	}

	zones := make([]viewmodel.TargetZone, 0, len(snap.Targets))
	for _, t := range snap.Targets {
		zones = append(zones, viewmodel.TargetZone{
			ID:          t.ID,
			X:           t.X,
			Y:           t.Y,
			R:           t.R,
			Highlighted: t.ID == snap.HighlightedTarget,
		})
	}

	return viewmodel.GamePage{
		Title:     pageTitle,
		SessionID: snap.ID,
		ScoreBoard: viewmodel.ScoreBoard{
			SessionID: snap.ID,
			Score:     snap.Score,
			Clock:     formatClock(snap.Remaining),
			Remaining: snap.Remaining,
			Placed:    snap.Placed,
			Total:     snap.Total,
			Muted:     snap.Muted,
			Music:     snap.Music,
		},
		Tray: tray,
		Board: viewmodel.Board{
			Width:   snap.Viewbox.Width,
			Height:  snap.Viewbox.Height,
			Targets: zones,
			Placed:  placed,
		},
		End: viewmodel.EndScreen{
			SessionID:  snap.ID,
			Visible:    finished,
			Won:        snap.Won,
			FinalScore: snap.FinalScore,
			Placed:     snap.Placed,
			Total:      snap.Total,
			TimeBonus:  snap.TimeBonus,
		},
	}
}

// formatClock renders seconds as m:ss.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
