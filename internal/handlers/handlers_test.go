package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"bodypuzzle/internal/puzzle"
	"bodypuzzle/internal/sound"
)

func newTestServer(t *testing.T) (*puzzle.Store, http.Handler) {
	t.Helper()
	store := puzzle.NewStore(puzzle.DefaultCatalog(), puzzle.DefaultConfig())
	r := chi.NewRouter()
	NewHomeHandler(store, puzzle.DefaultConfig()).RegisterRoutes(r)
	game := NewGameHandler(store)
	game.RegisterRoutes(r)
	game.RegisterStreamRoutes(r)
	NewSoundHandler(nil).RegisterRoutes(r)
	return store, r
}

func newSession(t *testing.T, store *puzzle.Store) *puzzle.Session {
	t.Helper()
	sess := store.CreateSession(time.Now().UTC())
	t.Cleanup(func() { store.Close(sess.ID) })
	return sess
}

func postJSON(h http.Handler, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

// fullBox maps client pixels one to one onto the 400x700 board.
var fullBox = map[string]float64{"left": 0, "top": 0, "width": 400, "height": 700}

func TestHome_RendersMenu(t *testing.T) {
	_, h := newTestServer(t)
	rec := get(h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, pageTitle) {
		t.Error("menu missing title")
	}
	if !strings.Contains(body, `action="/sessions"`) {
		t.Error("menu missing start form")
	}
}

func TestCreateSession_Redirects(t *testing.T) {
	store, h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d, want 303", rec.Code)
	}
	if store.Len() != 1 {
		t.Fatalf("Len %d, want 1", store.Len())
	}
	loc := rec.Header().Get("Location")
	id := strings.TrimSuffix(strings.TrimPrefix(loc, "/session/"), "/")
	if _, ok := store.GetSession(id); !ok {
		t.Fatalf("redirect %q does not point at a live session", loc)
	}
	store.Close(id)
}

func TestGamePage(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)

	rec := get(h, "/session/"+sess.ID+"/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="scoreboard"`, `id="board"`, `id="tray"`, `data-item="heart"`, "2:00"} {
		if !strings.Contains(body, want) {
			t.Errorf("game page missing %q", want)
		}
	}

	if rec := get(h, "/session/missing/"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status %d, want 404", rec.Code)
	}
}

func TestState_JSON(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)

	rec := get(h, "/session/"+sess.ID+"/state")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var snap puzzle.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Phase != puzzle.PhasePlaying || snap.Remaining != 120 || snap.Score != 0 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestDrag_SuccessAndFailure(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)
	base := "/session/" + sess.ID

	if rec := postJSON(h, base+"/drag/start", map[string]any{"item": "heart"}); rec.Code != http.StatusNoContent {
		t.Fatalf("drag/start status %d, want 204", rec.Code)
	}
	if rec := postJSON(h, base+"/drag/start", map[string]any{"item": "brain"}); rec.Code != http.StatusConflict {
		t.Errorf("second drag/start status %d, want 409", rec.Code)
	}

	rec := postJSON(h, base+"/drag/move", map[string]any{"item": "heart", "clientX": 200, "clientY": 290, "box": fullBox})
	if rec.Code != http.StatusOK {
		t.Fatalf("drag/move status %d, want 200", rec.Code)
	}
	var hover map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &hover)
	if hover["target"] != "heart" {
		t.Errorf("hover target %q, want heart", hover["target"])
	}

	rec = postJSON(h, base+"/drag/end", map[string]any{"item": "heart", "clientX": 200, "clientY": 320, "box": fullBox})
	if rec.Code != http.StatusOK {
		t.Fatalf("drag/end status %d, want 200", rec.Code)
	}
	var out puzzle.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != puzzle.OutcomeSuccess || out.Score != 10 || out.TargetID != "heart" {
		t.Errorf("unexpected outcome %+v", out)
	}

	postJSON(h, base+"/drag/start", map[string]any{"item": "brain"})
	rec = postJSON(h, base+"/drag/end", map[string]any{"item": "brain", "clientX": 20, "clientY": 650, "box": fullBox})
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Kind != puzzle.OutcomeFailure || out.Score != 8 || out.Delta != -2 {
		t.Errorf("unexpected failure outcome %+v", out)
	}
}

func TestDrag_UnmeasuredBoardIsMiss(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)
	base := "/session/" + sess.ID

	postJSON(h, base+"/drag/start", map[string]any{"item": "heart"})
	rec := postJSON(h, base+"/drag/end", map[string]any{"item": "heart", "clientX": 200, "clientY": 280})
	var out puzzle.Outcome
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Kind != puzzle.OutcomeFailure {
		t.Errorf("kind %q, want failure", out.Kind)
	}
}

func TestDrag_Errors(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)
	base := "/session/" + sess.ID

	if rec := postJSON(h, base+"/drag/end", map[string]any{"item": "heart", "clientX": 200, "clientY": 280, "box": fullBox}); rec.Code != http.StatusConflict {
		t.Errorf("drag/end without start status %d, want 409", rec.Code)
	}

	rec := postJSON(h, base+"/drag/start", map[string]any{"item": "hart"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown item status %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "heart") {
		t.Errorf("expected suggestion in %q", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, base+"/drag/start", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status %d, want 400", w.Code)
	}

	if rec := postJSON(h, base+"/drag/start", map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Errorf("missing item status %d, want 400", rec.Code)
	}

	if rec := postJSON(h, "/session/missing/drag/start", map[string]any{"item": "heart"}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status %d, want 404", rec.Code)
	}
}

func TestDrag_Cancel(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)
	base := "/session/" + sess.ID

	postJSON(h, base+"/drag/start", map[string]any{"item": "heart"})
	if rec := postJSON(h, base+"/drag/cancel", map[string]any{"item": "heart"}); rec.Code != http.StatusNoContent {
		t.Fatalf("drag/cancel status %d, want 204", rec.Code)
	}
	if rec := postJSON(h, base+"/drag/start", map[string]any{"item": "brain"}); rec.Code != http.StatusNoContent {
		t.Errorf("drag/start after cancel status %d, want 204", rec.Code)
	}
	if snap := sess.Snapshot(time.Now().UTC()); snap.Score != 0 {
		t.Errorf("cancel changed score to %d", snap.Score)
	}
}

func TestDrag_ReleaseBeforeStartRecovers(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)
	base := "/session/" + sess.ID

	if rec := postJSON(h, base+"/drag/end", map[string]any{"item": "heart", "clientX": 200, "clientY": 280, "box": fullBox}); rec.Code != http.StatusConflict {
		t.Fatalf("early drag/end status %d, want 409", rec.Code)
	}
	postJSON(h, base+"/drag/start", map[string]any{"item": "heart"})
	if rec := postJSON(h, base+"/drag/start", map[string]any{"item": "brain"}); rec.Code != http.StatusConflict {
		t.Fatalf("drag/start with a leftover drag status %d, want 409", rec.Code)
	}

	if rec := postJSON(h, base+"/drag/cancel", map[string]any{}); rec.Code != http.StatusNoContent {
		t.Fatalf("drag/cancel without item status %d, want 204", rec.Code)
	}
	if rec := postJSON(h, base+"/drag/cancel", map[string]any{}); rec.Code != http.StatusNoContent {
		t.Errorf("drag/cancel with nothing to clear status %d, want 204", rec.Code)
	}
	if rec := postJSON(h, base+"/drag/start", map[string]any{"item": "brain"}); rec.Code != http.StatusNoContent {
		t.Fatalf("drag/start after clearing status %d, want 204", rec.Code)
	}
	if snap := sess.Snapshot(time.Now().UTC()); snap.Score != 0 || snap.Dragging != "brain" {
		t.Errorf("Score %d Dragging %q, want 0/brain", snap.Score, snap.Dragging)
	}
}

func TestRestart(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)
	base := "/session/" + sess.ID

	postJSON(h, base+"/drag/start", map[string]any{"item": "heart"})
	postJSON(h, base+"/drag/end", map[string]any{"item": "heart", "clientX": 200, "clientY": 280, "box": fullBox})

	req := httptest.NewRequest(http.MethodPost, base+"/restart", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("restart status %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != base+"/" {
		t.Errorf("Location %q, want %q", loc, base+"/")
	}

	snap := sess.Snapshot(time.Now().UTC())
	if snap.Score != 0 || snap.Placed != 0 || snap.Remaining != 120 || snap.Phase != puzzle.PhasePlaying {
		t.Errorf("restart did not reset: %+v", snap)
	}
}

func TestMuteAndMusic(t *testing.T) {
	store, h := newTestServer(t)
	sess := newSession(t, store)
	base := "/session/" + sess.ID

	req := httptest.NewRequest(http.MethodPost, base+"/mute", strings.NewReader(url.Values{"value": {"true"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("mute status %d, want 204", rec.Code)
	}
	if !sess.Snapshot(time.Now().UTC()).Muted {
		t.Error("session not muted")
	}

	req = httptest.NewRequest(http.MethodPost, base+"/music", strings.NewReader("value=yes"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad toggle value status %d, want 400", rec.Code)
	}
}

func TestClose(t *testing.T) {
	store, h := newTestServer(t)
	sess := store.CreateSession(time.Now().UTC())
	store.EnsureClock(sess.ID)

	if rec := postJSON(h, "/session/"+sess.ID+"/close", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("close status %d, want 204", rec.Code)
	}
	if rec := get(h, "/session/"+sess.ID+"/state"); rec.Code != http.StatusNotFound {
		t.Errorf("state after close status %d, want 404", rec.Code)
	}
	if rec := postJSON(h, "/session/"+sess.ID+"/close", nil); rec.Code != http.StatusNotFound {
		t.Errorf("second close status %d, want 404", rec.Code)
	}
}

func TestStream_EndsWhenSessionCloses(t *testing.T) {
	store, h := newTestServer(t)
	sess := store.CreateSession(time.Now().UTC())

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/session/" + sess.ID + "/stream")
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type %q, want text/event-stream", ct)
	}

	buf := make([]byte, 512)
	n, _ := resp.Body.Read(buf)
	if !strings.Contains(string(buf[:n]), "event: scoreboard") {
		t.Errorf("first frame %q does not carry the scoreboard", buf[:n])
	}

	store.Close(sess.ID)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, err := resp.Body.Read(buf); err != nil {
				return
			}
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after close")
	}
}

func TestSound_Missing(t *testing.T) {
	_, h := newTestServer(t)
	if rec := get(h, "/sounds/success.wav"); rec.Code != http.StatusNotFound {
		t.Errorf("nil bank status %d, want 404", rec.Code)
	}
}

func TestSound_Serves(t *testing.T) {
	bank, err := sound.NewBank(sound.DefaultSampleRate)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	r := chi.NewRouter()
	NewSoundHandler(bank).RegisterRoutes(r)

	rec := get(r, "/sounds/success.wav")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("RIFF")) {
		t.Error("body is not a RIFF file")
	}
	if rec := get(r, "/sounds/fanfare.wav"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown cue status %d, want 404", rec.Code)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{120: "2:00", 65: "1:05", 9: "0:09", 0: "0:00", -3: "0:00"}
	for in, want := range cases {
		if got := formatClock(in); got != want {
			t.Errorf("formatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
