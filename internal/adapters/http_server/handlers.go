package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/app"
	"github.com/Gormus123/Amazon-Musical-Instruments-Reviews-Analyzer/internal/domain"
)

type Handlers struct{ Q *app.AnalysisService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/overview", h.overview)
	s.mux.Get("/v1/products", h.listProducts)
	s.mux.Get("/v1/products/{asin}", h.getProduct)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with an ETag, short-circuiting to 304 when the
// client already has this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	asin := chi.URLParam(r, "asin")
	if asin == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid ASIN", "asin must not be empty")
		return
	}
	resp, err := h.Q.Product(r.Context(), asin)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "product analysis failed")
		return
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) overview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Q.Overview(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "overview failed")
		return
	}
	writeJSON(w, r, resp)
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Q.Products(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "product listing failed")
		return
	}
	writeJSON(w, r, resp)
}
