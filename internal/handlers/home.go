package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bodypuzzle/internal/puzzle"
	"bodypuzzle/internal/viewmodel"
	"bodypuzzle/views/pages"
)

const pageTitle = "Human Body Puzzle"

type HomeHandler struct {
	store *puzzle.Store
	cfg   puzzle.Config
}

func NewHomeHandler(store *puzzle.Store, cfg puzzle.Config) *HomeHandler {
	return &HomeHandler{store: store, cfg: cfg}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/sessions", h.createSession)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage(viewmodel.HomePage{
		Title:       pageTitle,
		DurationSec: h.cfg.Duration,
		Reward:      h.cfg.Reward,
		Penalty:     h.cfg.Penalty,
	}))
}

func (h *HomeHandler) createSession(w http.ResponseWriter, r *http.Request) {
	sess := h.store.CreateSession(time.Now().UTC())
	h.store.EnsureClock(sess.ID)
	log.Printf("session created id=%s", sess.ID)
	http.Redirect(w, r, "/session/"+sess.ID+"/", http.StatusSeeOther)
}
