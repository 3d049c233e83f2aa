package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	errs "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/mazefile"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/store"
)

// createRequest is the body of POST /api/v1/mazes.
type createRequest struct {
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Seed     *uint64    `json:"seed,omitempty"`
	Start    maze.Point `json:"start"`
	Format   string     `json:"format,omitempty"`
	MaxSteps int        `json:"max_steps,omitempty"`
}

// mazeResponse describes a stored maze without its bytes.
type mazeResponse struct {
	ID        string    `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Seed      uint64    `json:"seed"`
	Format    string    `json:"format"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
	CacheHit  bool      `json:"cache_hit,omitempty"`
}

func newMazeResponse(rec *store.Record) mazeResponse {
	return mazeResponse{
		ID:        rec.ID,
		Width:     rec.Width,
		Height:    rec.Height,
		Seed:      rec.Seed,
		Format:    rec.Format,
		Complete:  rec.Complete,
		CreatedAt: rec.CreatedAt,
	}
}

var contentTypes = map[string]string{
	pipeline.KindASCII:    "text/plain; charset=utf-8",
	pipeline.KindSVG:      "image/svg+xml",
	pipeline.KindPNG:      "image/png",
	pipeline.KindPDF:      "application/pdf",
	pipeline.KindDOT:      "text/vnd.graphviz",
	pipeline.KindNodelink: "image/svg+xml",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	format, err := maze.ParseFormat(req.Format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Generate(r.Context(), pipeline.Options{
		Width:    req.Width,
		Height:   req.Height,
		Start:    req.Start,
		Seed:     req.Seed,
		Format:   format,
		MaxSteps: req.MaxSteps,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec := store.NewRecord(res.Grid, res.Data, format, res.Seed, res.Complete())
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}

	resp := newMazeResponse(rec)
	resp.CacheHit = res.CacheHit
	w.Header().Set("Location", "/api/v1/mazes/"+rec.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]mazeResponse, len(recs))
	for i, rec := range recs {
		out[i] = newMazeResponse(rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{"mazes": out})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Maze-Format", rec.Format)
	w.Header().Set("Content-Length", strconv.Itoa(len(rec.Data)))
	_, _ = w.Write(rec.Data)
}

func (s *Server) handleGetJSON(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadGrid(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mazefile.NewDocument(g))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.RenderOptions{
		Kind:  chi.URLParam(r, "kind"),
		Style: r.URL.Query().Get("style"),
	}
	if v := r.URL.Query().Get("solve"); v != "" {
		solve, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid solve %q", v))
			return
		}
		opts.Solve = solve
	}
	if err := pipeline.ValidateKind(opts.Kind); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeNotFound, err, "no such rendering"))
		return
	}
	if err := opts.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	g, err := s.loadGrid(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, hit, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Kind])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadGrid(r *http.Request) (*maze.Grid, error) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	return rec.Grid()
}
