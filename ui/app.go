package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goquade/domain/core"
	"goquade/internal"
	"goquade/ports"
)

// App is the report viewer: a small HTML front end over the run archive,
// served separately from the JSON API.
type App struct {
	router *chi.Mux
	runs   ports.RunRepository
	logger *internal.Logger
}

// NewApp creates the report viewer application
func NewApp(runs ports.RunRepository, logger *internal.Logger) *App {
	a := &App{
		router: chi.NewRouter(),
		runs:   runs,
		logger: logger.WithPrefix("App"),
	}

	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/healthz", a.handleHealth)
	a.router.Get("/runs", a.handleListRuns)
	a.router.Get("/runs/{id}", a.handleShowRun)

	return a
}

// Run starts the viewer on the given address
func (a *App) Run(addr string) error {
	a.logger.Info("report viewer listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Handler returns the underlying http.Handler (used by tests)
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		http.Error(w, "run archive not configured", http.StatusNotFound)
		return
	}

	runs, err := a.runs.ListRuns(r.Context(), 50)
	if err != nil {
		a.logger.Error("list runs failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h1>Archived test runs</h1><ul>")
	for _, run := range runs {
		fmt.Fprintf(w, `<li><a href="/runs/%s">%s</a> — %s (W=%.4f, p=%.6f)</li>`,
			run.ID, run.ID, run.Dataset, run.Result.Statistic, run.Result.PValue)
	}
	fmt.Fprint(w, "</ul></body></html>")
}

func (a *App) handleShowRun(w http.ResponseWriter, r *http.Request) {
	if a.runs == nil {
		http.Error(w, "run archive not configured", http.StatusNotFound)
		return
	}

	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	run, err := a.runs.GetRun(r.Context(), id)
	if core.IsNotFoundError(err) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		a.logger.Error("get run failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(HTML(Markdown(run, nil, nil)))
}
