package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linfer/app"
	"linfer/domain/core"
	"linfer/domain/dataset"
	"linfer/domain/diagnostic"
	"linfer/internal"
	"linfer/ports"
)

// Server exposes the analysis pipeline over HTTP
type Server struct {
	router     *chi.Mux
	analysis   *app.AnalysisService
	diagnostic *app.DiagnosticService
	renderer   ports.ReportRenderer
	logger     *internal.Logger
}

// Config holds server configuration
type Config struct {
	Port string
}

// NewServer creates a new HTTP server over the given services
func NewServer(analysis *app.AnalysisService, diag *app.DiagnosticService, renderer ports.ReportRenderer, logger *internal.Logger) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		analysis:   analysis,
		diagnostic: diag,
		renderer:   renderer,
		logger:     logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/runs", func(r chi.Router) {
		r.Get("/", s.handleListRuns)
		r.Post("/", s.handleCreateRun)
		r.Get("/{runID}", s.handleGetRun)
		r.Get("/{runID}/report", s.handleGetReport)
	})
	s.router.Post("/diagnostic", s.handleDiagnostic)
}

// Start runs the HTTP server until the context is canceled
func (s *Server) Start(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on :%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.analysis.ListRuns(r.Context(), 50)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// createRunRequest is the POST /runs payload
type createRunRequest struct {
	Seed  int64    `json:"seed"`
	N     int      `json:"n"`
	Beta  *float64 `json:"beta,omitempty"`
	Sigma *float64 `json:"sigma,omitempty"`
	Level float64  `json:"level"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	params := dataset.DefaultParams(req.Seed)
	if req.N > 0 {
		params.N = req.N
	}
	if req.Beta != nil {
		params.Beta = *req.Beta
	}
	if req.Sigma != nil {
		params.Sigma = *req.Sigma
	}

	result, err := s.analysis.Run(r.Context(), app.RunRequest{Params: params, Level: req.Level})
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "runID"))
	result, err := s.analysis.GetRun(r.Context(), id)
	if err != nil {
		if core.IsNotFound(err) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "runID"))
	result, err := s.analysis.GetRun(r.Context(), id)
	if err != nil {
		if core.IsNotFound(err) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	md := s.renderer.BuildMarkdown(result)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(s.renderer.RenderHTML(md))
}

func (s *Server) handleDiagnostic(w http.ResponseWriter, r *http.Request) {
	var scenario diagnostic.TestScenario
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.diagnostic.Evaluate(r.Context(), scenario)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed: %v", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
