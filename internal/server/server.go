// Package server serves compiled documents over HTTP. Every request loads
// and compiles the module afresh, so edits show up without a restart.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/conduit-lang/armgen/internal/apiversion"
	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/compiler/errors"
	"github.com/conduit-lang/armgen/internal/docs"
)

// ModuleSource returns the module to compile
type ModuleSource func() (arm.Module, error)

// Server routes document requests
type Server struct {
	mux      chi.Router
	source   ModuleSource
	versions []string
	logger   *zap.Logger
}

// New creates a server compiling modules from source. versions are listed
// by the index route; any parsable version can be requested.
func New(source ModuleSource, versions []string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mux:      chi.NewRouter(),
		source:   source,
		versions: versions,
		logger:   logger,
	}

	s.mux.Use(middleware.RequestID)
	s.mux.Use(Logging(logger))
	s.mux.Use(middleware.Recoverer)

	s.mux.Get("/", s.handleIndex)
	s.mux.Get("/{version}/swagger.json", s.handleDocument(docs.FormatJSON))
	s.mux.Get("/{version}/swagger.yaml", s.handleDocument(docs.FormatYAML))
	s.mux.Get("/{version}/README.md", s.handleDocument(docs.FormatMarkdown))

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type indexEntry struct {
	Version  string `json:"version"`
	Document string `json:"document"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries := make([]indexEntry, 0, len(s.versions))
	for _, v := range s.versions {
		entries = append(entries, indexEntry{Version: v, Document: "/" + v + "/swagger.json"})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDocument(format docs.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := chi.URLParam(r, "version")
		target, err := apiversion.ParseTarget(version)
		if err != nil {
			writeError(w, http.StatusNotFound, errors.NewInvalidVersion(version).WithDetail(err.Error()))
			return
		}

		m, err := s.source()
		if err != nil {
			s.logger.Error("loading module", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		compiled, err := docs.Compile(m, []apiversion.Target{target})
		if err != nil {
			s.logger.Warn("compiling module", zap.Stringer("target", target), zap.Error(err))
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}

		body, err := docs.Render(compiled[0], format)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", contentType(format))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

func contentType(format docs.Format) string {
	switch format {
	case docs.FormatYAML:
		return "application/yaml"
	case docs.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "application/json"
	}
}

// errorBody is the JSON error response; code is set for coded errors
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Key   string `json:"key,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := errorBody{Error: err.Error()}
	if ce, ok := errors.As(err); ok {
		body.Error = ce.Error()
		body.Code = string(ce.Code)
		body.Key = ce.Key
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
