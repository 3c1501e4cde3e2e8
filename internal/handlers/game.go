package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bodypuzzle/internal/board"
	"bodypuzzle/internal/puzzle"
	"bodypuzzle/views/components"
	"bodypuzzle/views/pages"
)

type GameHandler struct {
	store *puzzle.Store
}

func NewGameHandler(store *puzzle.Store) *GameHandler {
	return &GameHandler{store: store}
}

// RegisterStreamRoutes mounts the long-lived SSE endpoint. It is kept apart
// from RegisterRoutes so it can sit outside the request timeout middleware.
func (h *GameHandler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/session/{id}/stream", h.stream)
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/session/{id}", func(r chi.Router) {
		r.Get("/", h.gamePage)
		r.Get("/state", h.state)
		r.Post("/drag/start", h.dragStart)
		r.Post("/drag/move", h.dragMove)
		r.Post("/drag/end", h.dragEnd)
		r.Post("/drag/cancel", h.dragCancel)
		r.Post("/restart", h.restart)
		r.Post("/mute", h.mute)
		r.Post("/music", h.music)
		r.Post("/close", h.close)
	})
}

// dragRequest is a pointer event forwarded by the page. Box is the board
// element's bounding box at the time of the event; it is absent when the
// board has not been laid out.
type dragRequest struct {
	Item    string      `json:"item"`
	ClientX float64     `json:"clientX"`
	ClientY float64     `json:"clientY"`
	Box     *board.Rect `json:"box"`
}

func (d dragRequest) client() board.Point {
	return board.Point{X: d.ClientX, Y: d.ClientY}
}

func (d dragRequest) box() board.Rect {
	if d.Box == nil {
		return board.Rect{}
	}
	return *d.Box
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*puzzle.Session, bool) {
	sess, ok := h.store.GetSession(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return sess, true
}

func decodeDrag(w http.ResponseWriter, r *http.Request, requireItem bool) (dragRequest, bool) {
	var req dragRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return req, false
	}
	if requireItem && req.Item == "" {
		http.Error(w, "item required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	now := time.Now().UTC()
	sess.Touch(now)
	render(w, r, pages.GamePage(buildGamePage(sess.Snapshot(now))))
}

func (h *GameHandler) state(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot(time.Now().UTC()))
}

func (h *GameHandler) dragStart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeDrag(w, r, true)
	if !ok {
		return
	}
	if err := sess.BeginDrag(req.Item, time.Now().UTC()); err != nil {
		writeError(w, err)
		return
	}
	h.store.PublishState(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) dragMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeDrag(w, r, true)
	if !ok {
		return
	}
	target, err := sess.Hover(req.Item, req.client(), req.box())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"target": target})
}

func (h *GameHandler) dragEnd(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeDrag(w, r, true)
	if !ok {
		return
	}
	outcome, err := sess.EndDrag(req.Item, req.client(), req.box(), time.Now().UTC())
	if err != nil {
		// The drag is over either way; repaint so the tray unlocks.
		h.store.PublishState(sess.ID)
		writeError(w, err)
		return
	}
	log.Printf("placement session=%s item=%s kind=%s target=%s score=%d", sess.ID, outcome.ItemID, outcome.Kind, outcome.TargetID, outcome.Score)
	h.store.PublishOutcome(sess.ID, outcome)
	h.store.PublishState(sess.ID)
	h.store.EnsureClock(sess.ID)
	writeJSON(w, http.StatusOK, outcome)
}

// dragCancel abandons the active drag. Without an item it clears whatever
// drag is left over, which the page does when it loads.
func (h *GameHandler) dragCancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := decodeDrag(w, r, false)
	if !ok {
		return
	}
	err := sess.CancelDrag(req.Item)
	if req.Item == "" && errors.Is(err, puzzle.ErrNoActiveDrag) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	h.store.PublishState(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) restart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Restart(time.Now().UTC())
	h.store.EnsureClock(sess.ID)
	h.store.PublishState(sess.ID)
	h.respond(w, r, sess.ID)
}

func (h *GameHandler) mute(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, (*puzzle.Session).SetMuted)
}

func (h *GameHandler) music(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, (*puzzle.Session).SetMusic)
}

func (h *GameHandler) toggle(w http.ResponseWriter, r *http.Request, set func(*puzzle.Session, bool)) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	on, err := strconv.ParseBool(r.FormValue("value"))
	if err != nil {
		http.Error(w, "value must be a boolean", http.StatusBadRequest)
		return
	}
	set(sess, on)
	h.store.PublishState(sess.ID)
	h.respond(w, r, sess.ID)
}

func (h *GameHandler) close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.Close(id) {
		http.NotFound(w, r)
		return
	}
	log.Printf("session closed id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) respond(w http.ResponseWriter, r *http.Request, id string) {
	if wantsJSON(r) || r.Header.Get("Hx-Request") == "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/session/"+id+"/", http.StatusSeeOther)
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	hub, ok := h.store.Broadcaster(sess.ID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendState := func() {
		data := buildGamePage(sess.Snapshot(time.Now().UTC()))
		writeSSE(w, "scoreboard", renderToString(r, components.ScoreBoard(data.ScoreBoard)))
		writeSSE(w, "board", renderToString(r, components.Board(data.Board)))
		writeSSE(w, "tray", renderToString(r, components.Tray(data.Tray)))
		writeSSE(w, "end", renderToString(r, components.EndScreen(data.End)))
		flusher.Flush()
	}

	sendState()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				writeSSE(w, "closed", "")
				flusher.Flush()
				return
			}
			switch event.Name {
			case puzzle.EventState:
				sendState()
			case puzzle.EventOutcome:
				payload, err := json.Marshal(event.Payload)
				if err != nil {
					continue
				}
				writeSSE(w, "outcome", string(payload))
				flusher.Flush()
			}
		case <-keepAlive.C:
			sess.Touch(time.Now().UTC())
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}
