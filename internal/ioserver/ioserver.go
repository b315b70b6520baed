// Package ioserver exposes saved forecast runs as a read-only JSON
// API, the shape a dashboard needs: run listings, full runs, and
// single matrices in tabular form. It serves from the run store only
// and never triggers computation.
package ioserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gn"
	"github.com/gorilla/mux"

	"github.com/chuawjk/ecda/pkg/config"
	"github.com/chuawjk/ecda/pkg/errcode"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/chuawjk/ecda/pkg/store"
)

// Server serves the runs API over HTTP.
type Server struct {
	cfg   *config.Config
	store store.Store
	http  *http.Server
}

// New wires the routes and returns a server ready to start. The store
// must be initialized by the caller.
func New(cfg *config.Config, st store.Store) *Server {
	srv := &Server{cfg: cfg, store: st}

	r := mux.NewRouter()
	r.HandleFunc("/api/runs", srv.listRuns).Methods("GET")
	r.HandleFunc("/api/runs/{id}", srv.getRun).Methods("GET")
	r.HandleFunc("/api/runs/{id}/matrix/{kind}", srv.getMatrix).Methods("GET")

	srv.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv
}

// Handler returns the route tree. Tests drive it directly.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start listens until Shutdown is called. A regular shutdown is not an
// error.
func (s *Server) Start() error {
	slog.Info("Starting runs API", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return StartError(s.cfg.Server.Port, err)
	}
	return nil
}

// Shutdown stops the server, letting in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// runSummaryJSON is the listing view of a saved run.
type runSummaryJSON struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Years        int       `json:"years"`
	Capacity     int       `json:"capacity"`
	MinAgeMonths int       `json:"min_age_months"`
	MaxAgeMonths int       `json:"max_age_months"`
	CurrentYear  int       `json:"current_year"`
	Subzones     int       `json:"subzones"`
}

// runJSON is one full run. Matrix keys marshal as year strings.
type runJSON struct {
	ID           string          `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Years        []int           `json:"years"`
	Capacity     int             `json:"capacity"`
	MinAgeMonths int             `json:"min_age_months"`
	MaxAgeMonths int             `json:"max_age_months"`
	CurrentYear  int             `json:"current_year"`
	Supply       map[string]int  `json:"supply"`
	Preschoolers forecast.Matrix `json:"preschoolers"`
	Needed       forecast.Matrix `json:"needed"`
	Gap          forecast.Matrix `json:"gap"`
}

// matrixJSON is one matrix in dense tabular form: cells[i][j] belongs
// to years[i] and subzones[j].
type matrixJSON struct {
	Kind     string   `json:"kind"`
	Years    []int    `json:"years"`
	Subzones []string `json:"subzones"`
	Cells    [][]int  `json:"cells"`
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	sums, err := s.store.List(r.Context())
	if err != nil {
		slog.Error("Cannot list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "cannot list runs")
		return
	}

	res := make([]runSummaryJSON, len(sums))
	for i, v := range sums {
		res[i] = runSummaryJSON{
			ID:           v.ID,
			CreatedAt:    v.CreatedAt,
			Years:        v.Params.Years,
			Capacity:     v.Params.Capacity,
			MinAgeMonths: v.Params.MinAgeMonths,
			MaxAgeMonths: v.Params.MaxAgeMonths,
			CurrentYear:  v.Params.CurrentYear,
			Subzones:     v.Subzones,
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, runJSON{
		ID:           rec.ID,
		CreatedAt:    rec.CreatedAt,
		Years:        rec.Years,
		Capacity:     rec.Params.Capacity,
		MinAgeMonths: rec.Params.MinAgeMonths,
		MaxAgeMonths: rec.Params.MaxAgeMonths,
		CurrentYear:  rec.Params.CurrentYear,
		Supply:       rec.Supply,
		Preschoolers: rec.Preschoolers,
		Needed:       rec.Needed,
		Gap:          rec.Gap,
	})
}

func (s *Server) getMatrix(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, kind := vars["id"], vars["kind"]

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, id, err)
		return
	}

	var m forecast.Matrix
	switch kind {
	case "preschoolers":
		m = rec.Preschoolers
	case "needed":
		m = rec.Needed
	case "gap":
		m = rec.Gap
	default:
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("unknown matrix %q", kind))
		return
	}

	years, subzones, cells := m.Tabular()
	writeJSON(w, http.StatusOK, matrixJSON{
		Kind:     kind,
		Years:    years,
		Subzones: subzones,
		Cells:    cells,
	})
}

// writeStoreError maps a missing run to 404, everything else to 500.
func (s *Server) writeStoreError(w http.ResponseWriter, id string, err error) {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Code == errcode.StoreNotFoundError {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("no run with ID %q", id))
		return
	}
	slog.Error("Cannot read run", "run", id, "error", err)
	writeError(w, http.StatusInternalServerError, "cannot read run")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Cannot encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
