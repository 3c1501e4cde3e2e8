package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bodypuzzle/internal/config"
	"bodypuzzle/internal/handlers"
	"bodypuzzle/internal/puzzle"
	"bodypuzzle/internal/sound"
)

func main() {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	_ = mime.AddExtensionType(".svg", "image/svg+xml")

	cfg := config.Load()

	catalog := puzzle.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		log.Fatal(err)
	}
	store := puzzle.NewStore(catalog, cfg.Game)

	bank, err := sound.NewBank(sound.DefaultSampleRate)
	if err != nil {
		log.Printf("sound cues unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweep(ctx, store, cfg.SessionTTL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal(err)
	}

	homeHandler := handlers.NewHomeHandler(store, cfg.Game)
	gameHandler := handlers.NewGameHandler(store)
	soundHandler := handlers.NewSoundHandler(bank)

	gameHandler.RegisterStreamRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))
		homeHandler.RegisterRoutes(r)
		gameHandler.RegisterRoutes(r)
		soundHandler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0, // SSE streams stay open for the whole game
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("listening on http://localhost%s (game %ds, snap x%.2f)", cfg.Addr, cfg.Game.Duration, cfg.Game.SnapMultiplier)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// sweep drops sessions nobody has touched for ttl.
func sweep(ctx context.Context, store *puzzle.Store, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := store.Sweep(now.UTC(), ttl); n > 0 {
				log.Printf("swept %d idle sessions, %d left", n, store.Len())
			}
		}
	}
}

//go:embed static
var embeddedStatic embed.FS
