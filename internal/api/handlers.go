package api

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/buildinfo"
	"github.com/matzehuels/autogrid/pkg/errors"
	"github.com/matzehuels/autogrid/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	b, err := s.readBoard(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveLayout(w, r, b)
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.readBoard(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Put(r.Context(), b)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("board stored", "id", rec.ID, "cells", len(rec.Board.Cells))
	w.Header().Set("Location", "/v1/boards/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBoardLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveLayout(w, r, rec.Board)
}

// serveLayout lays b out with the viewport overrides from the query string
// and writes the requested format.
func (s *Server) serveLayout(w http.ResponseWriter, r *http.Request, b *board.Board) {
	opts, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), b, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Autogrid-Cache", cacheStatus(res.CacheInfo.LayoutHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func layoutOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatJSON}}
	if f := q.Get("format"); f != "" {
		if err := pipeline.ValidateFormat(f); err != nil {
			return opts, err
		}
		opts.Formats = []string{f}
	}

	var err error
	if opts.Width, err = floatParam(q.Get("width"), "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), "height"); err != nil {
		return opts, err
	}
	if v := q.Get("scrollbar"); v != "" {
		sb, err := floatParam(v, "scrollbar")
		if err != nil {
			return opts, err
		}
		opts.Scrollbar = &sb
	}
	opts.Guides = q.Get("guides") == "true"
	opts.NoLabels = q.Get("labels") == "false"
	return opts, nil
}

func floatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
	}
	if err := errors.ValidateWidth(name, f); err != nil {
		return 0, err
	}
	return f, nil
}

// readBoard decodes the request body as a JSON board, or TOML when the
// content type says so.
func (s *Server) readBoard(r *http.Request) (*board.Board, error) {
	format := board.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "invalid content type")
		}
		switch mt {
		case "application/json":
		case "application/toml", "text/toml":
			format = board.FormatTOML
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported content type %q", mt)
		}
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, s.maxBody+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if int64(len(data)) > s.maxBody {
		return nil, errors.New(errors.ErrCodeInvalidInput, "body exceeds %d bytes", s.maxBody)
	}
	return board.Parse(data, format)
}
