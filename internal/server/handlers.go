package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"mixtape/internal/jobs"
	"mixtape/internal/shared"
	"mixtape/internal/tasks"
)

// App wires the web surface together: router, sessions, job engine, status store.
type App struct {
	router   *BasicRouter
	sessions *SessionStore
	engine   *jobs.Engine
	store    *jobs.Store
	logger   *log.Logger
	history  int
}

// AppOpts contains optional dependencies for the web application.
type AppOpts struct {
	Sessions *SessionStore
	Logger   *log.Logger
	History  int // Listening-history sample size applied to web submissions
}

// NewApp builds the web application and registers its routes.
func NewApp(engine *jobs.Engine, store *jobs.Store, opts AppOpts) *App {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore(nil)
	}

	a := &App{
		router:   NewBasicRouter(),
		sessions: opts.Sessions,
		engine:   engine,
		store:    store,
		logger:   opts.Logger,
		history:  opts.History,
	}

	a.router.Use(RequestLogger(a.logger))
	a.router.Handle(http.MethodGet, "/{$}", a.requireCredentials(a.handleIndex))
	a.router.Handle(http.MethodPost, "/{$}", a.requireCredentials(a.handleSubmit))
	a.router.Handle(http.MethodGet, "/status/{id}", a.requireCredentials(a.handleStatusPage))
	// The check endpoint stays open: job ids are unguessable capabilities and
	// the watch command polls it without a browser session.
	a.router.Handle(http.MethodGet, "/status/{id}/check", http.HandlerFunc(a.handleStatusCheck))
	a.router.Handle(http.MethodGet, "/config", http.HandlerFunc(a.handleConfigForm))
	a.router.Handle(http.MethodPost, "/config", http.HandlerFunc(a.handleConfigSave))
	a.router.Handle(http.MethodPost, "/reset_config", http.HandlerFunc(a.handleConfigReset))

	return a
}

// Handler returns the root http.Handler for the application.
func (a *App) Handler() http.Handler {
	return a.router
}

// requireCredentials redirects callers without a complete credential bundle to
// the configuration page.
func (a *App) requireCredentials(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if missing := a.sessions.Credentials(r).Missing(); len(missing) > 0 {
			http.Redirect(w, r, "/config", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := indexTemplate.Execute(w, nil); err != nil {
		a.logger.Error("failed to render index", "error", err)
	}
}

// handleSubmit enqueues a generation job from the submission form and
// redirects to its status page. The credential bundle is captured at
// submission time so the job stays bound to the submitting session.
func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Malformed form data", http.StatusBadRequest)
		return
	}

	prompt := r.PostFormValue("prompt")
	if prompt == "" {
		http.Error(w, "prompt is required", http.StatusBadRequest)
		return
	}

	length, err := strconv.Atoi(r.PostFormValue("length"))
	if err != nil || length < 1 {
		http.Error(w, "length must be a positive integer", http.StatusBadRequest)
		return
	}

	req := tasks.Request{
		Prompt:      prompt,
		Length:      length,
		Name:        r.PostFormValue("name"),
		History:     a.history,
		Credentials: a.sessions.Credentials(r),
	}

	id, err := a.engine.Submit(req)
	if err != nil {
		a.logger.Error("job submission rejected", "error", err)
		http.Error(w, "Service shutting down", http.StatusServiceUnavailable)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/status/%s", id), http.StatusSeeOther)
}

func (a *App) handleStatusPage(w http.ResponseWriter, r *http.Request) {
	data := struct{ JobID string }{JobID: r.PathValue("id")}
	if err := statusTemplate.Execute(w, data); err != nil {
		a.logger.Error("failed to render status page", "error", err)
	}
}

// handleStatusCheck reports a job's lifecycle snapshot. Unknown identifiers
// read as Queued, never as a not-found error.
func (a *App) handleStatusCheck(w http.ResponseWriter, r *http.Request) {
	result := a.store.Get(r.PathValue("id"))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		a.logger.Error("failed to encode status", "error", err)
	}
}

func (a *App) handleConfigForm(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Credentials shared.Credentials
		Error       string
	}{
		Credentials: a.sessions.Credentials(r),
		Error:       r.URL.Query().Get("error"),
	}
	if err := configTemplate.Execute(w, data); err != nil {
		a.logger.Error("failed to render config page", "error", err)
	}
}

func (a *App) handleConfigSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Malformed form data", http.StatusBadRequest)
		return
	}

	creds := shared.Credentials{
		ClientID:     r.PostFormValue(shared.FieldClientID),
		ClientSecret: r.PostFormValue(shared.FieldClientSecret),
		RedirectURI:  r.PostFormValue(shared.FieldRedirectURI),
		OpenAIKey:    r.PostFormValue(shared.FieldOpenAIKey),
	}
	if missing := creds.Missing(); len(missing) > 0 {
		http.Redirect(w, r, "/config?error=All+fields+are+required", http.StatusSeeOther)
		return
	}

	if err := a.sessions.SaveCredentials(w, r, creds); err != nil {
		a.logger.Error("failed to save session", "error", err)
		http.Error(w, "Failed to save credentials", http.StatusInternalServerError)
		return
	}

	a.logger.Info("credentials saved to session")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleConfigReset(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Clear(w, r); err != nil {
		a.logger.Error("failed to clear session", "error", err)
	}
	a.logger.Info("credentials reset")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
