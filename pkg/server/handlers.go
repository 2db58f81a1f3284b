package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/TheJP/factorio-blueprint/pkg/blueprint"
	"github.com/TheJP/factorio-blueprint/pkg/errors"
	"github.com/TheJP/factorio-blueprint/pkg/generate/loader"
	"github.com/TheJP/factorio-blueprint/pkg/generate/memory"
	"github.com/TheJP/factorio-blueprint/pkg/library"
	"github.com/TheJP/factorio-blueprint/pkg/pipeline"
	"github.com/TheJP/factorio-blueprint/pkg/render"
)

type blueprintRequest struct {
	Blueprint string `json:"blueprint"`
}

type blueprintResponse struct {
	Blueprint string `json:"blueprint"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	var req blueprintRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := blueprint.DecodeToPrettyJSON(strings.TrimSpace(req.Blueprint))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

func (s *Server) handleReencode(w http.ResponseWriter, r *http.Request) {
	var req blueprintRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	bp, err := blueprint.Decode(strings.TrimSpace(req.Blueprint))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := blueprint.Encode(bp)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blueprintResponse{Blueprint: out})
}

type renderRequest struct {
	Blueprint string `json:"blueprint"`
	// Format is "dot" or "svg"; empty means svg.
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
	Poles    bool   `json:"poles"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = "svg"
	}
	if req.Format != "svg" && req.Format != "dot" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg)", req.Format))
		return
	}

	bp, err := blueprint.Decode(strings.TrimSpace(req.Blueprint))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	dot := render.ToDOT(bp, render.Options{Detailed: req.Detailed, Poles: req.Poles})
	if req.Format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
		return
	}

	svg, err := render.RenderSVG(r.Context(), dot)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleGenerateMemory(w http.ResponseWriter, r *http.Request) {
	var opts memory.Options
	if err := s.decodeBody(w, r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Cells() > s.opts.MaxCells {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
			"memory of %d cells exceeds the limit of %d", opts.Cells(), s.opts.MaxCells))
		return
	}
	s.generate(w, r, pipeline.Request{Generator: memory.Name, Memory: opts})
}

type loaderRequest struct {
	// Data is the base64 encoded content to load.
	Data      []byte `json:"data"`
	MaxHeight int    `json:"max_height"`
}

func (s *Server) handleGenerateLoader(w http.ResponseWriter, r *http.Request) {
	var req loaderRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.generate(w, r, pipeline.Request{
		Generator: loader.Name,
		Loader:    loader.Options{MaxHeight: req.MaxHeight},
		Input:     req.Data,
	})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, req pipeline.Request) {
	res, err := s.runner.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type saveRequest struct {
	Name      string `json:"name"`
	Blueprint string `json:"blueprint"`
}

func (s *Server) handleLibraryList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.library.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []library.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLibrarySave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.library.Save(r.Context(), req.Name, req.Blueprint)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleLibraryGet(w http.ResponseWriter, r *http.Request) {
	e, err := s.library.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleLibraryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.library.Delete(r.Context(), chi.URLParam(r, "key")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
