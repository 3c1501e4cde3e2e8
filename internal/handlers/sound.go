package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bodypuzzle/internal/sound"
)

type SoundHandler struct {
	bank *sound.Bank
}

// NewSoundHandler serves the cues held by bank. A nil bank answers 404 for
// every cue.
func NewSoundHandler(bank *sound.Bank) *SoundHandler {
	return &SoundHandler{bank: bank}
}

func (h *SoundHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sounds/{name}.wav", h.cue)
}

func (h *SoundHandler) cue(w http.ResponseWriter, r *http.Request) {
	data, ok := h.bank.Get(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}
