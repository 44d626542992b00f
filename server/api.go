// Package server exposes an HTTP compile-preview service over the core
// compiler (§11.5), built on chi the same way the project's other HTTP
// surfaces are.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/titpetric/althtml"
)

// NewRouter builds a chi.Router exposing the compile-preview service.
func NewRouter(opts ...althtml.LoadOption) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/compile", CompileHandler(opts...))
	return r
}

// CompileRequest contains the source and logical filename to compile.
type CompileRequest struct {
	Source   string `json:"source"`
	Filename string `json:"filename,omitempty"`
}

// CompileResponse contains the compiled HTML or a structured error list.
type CompileResponse struct {
	HTML   string              `json:"html,omitempty"`
	Errors []CompileErrorEntry `json:"errors,omitempty"`
}

// CompileErrorEntry mirrors one *althtml.CompileError in a JSON-friendly shape.
type CompileErrorEntry struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// CompileHandler returns an http.HandlerFunc that compiles Althtml sources
// via POST /compile. It holds no compiler state across requests: each
// request calls the core compiler exactly once (§5, §11.5).
func CompileHandler(opts ...althtml.LoadOption) http.HandlerFunc {
	compiler := althtml.New(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			_ = json.NewEncoder(w).Encode(CompileResponse{
				Errors: []CompileErrorEntry{{Kind: "MethodNotAllowed", Message: "method not allowed"}},
			})
			return
		}

		var req CompileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(CompileResponse{
				Errors: []CompileErrorEntry{{Kind: "InvalidJSON", Message: err.Error()}},
			})
			return
		}

		html, errs := compiler.Compile(req.Source, req.Filename)
		if len(errs) > 0 {
			entries := make([]CompileErrorEntry, len(errs))
			for i, e := range errs {
				entries[i] = CompileErrorEntry{
					Kind:    string(e.Kind),
					Line:    e.Line,
					Column:  e.Column,
					Message: e.Message,
				}
			}
			_ = json.NewEncoder(w).Encode(CompileResponse{Errors: entries})
			return
		}

		_ = json.NewEncoder(w).Encode(CompileResponse{HTML: html})
	}
}
