package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"panelscope/app"
	"panelscope/ports"
)

// App is the HTTP surface: chart preparation, the two persisted
// collections, insight and export endpoints, and an SSE stream of
// collection changes. Stores arrive as interfaces so tests can wire
// in-memory engines and multiple independent apps can coexist in-process.
type App struct {
	router    *chi.Mux
	charts    *app.ChartService
	bookmarks ports.BookmarkStore
	presets   ports.PresetStore
	notifier  ports.Notifier
	insights  app.InsightWriter
	log       *zap.Logger
}

// Deps carries the collaborators the app serves.
type Deps struct {
	Charts    *app.ChartService
	Bookmarks ports.BookmarkStore
	Presets   ports.PresetStore
	Notifier  ports.Notifier
	Log       *zap.Logger
}

// NewApp wires the router.
func NewApp(deps Deps) *App {
	a := &App{
		charts:    deps.Charts,
		bookmarks: deps.Bookmarks,
		presets:   deps.Presets,
		notifier:  deps.Notifier,
		log:       deps.Log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/charts/{kind}", a.handlePrepareChart)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", a.handleListBookmarks)
			r.Post("/", a.handleAddBookmark)
			r.Delete("/", a.handleClearBookmarks)
			r.Delete("/{panelID}", a.handleRemoveBookmark)
		})

		r.Route("/presets", func(r chi.Router) {
			r.Get("/", a.handleListPresets)
			r.Post("/", a.handleAddPreset)
			r.Patch("/{id}", a.handleUpdatePreset)
			r.Delete("/{id}", a.handleRemovePreset)
		})

		r.Post("/insights", a.handleInsights)
		r.Post("/export", a.handleExport)
		r.Get("/events", a.handleEvents)
	})

	a.router = r
	return a
}

// Router exposes the mux for serving and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Serve blocks on ListenAndServe.
func (a *App) Serve(addr string) error {
	a.log.Info("ui listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
