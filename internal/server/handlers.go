package server

import (
	"encoding/json"
	"net/http"

	"github.com/sfeldkamp/quadrant/pkg/cache"
	"github.com/sfeldkamp/quadrant/pkg/errors"
	"github.com/sfeldkamp/quadrant/pkg/pipeline"
	"github.com/sfeldkamp/quadrant/pkg/radar"
	"github.com/sfeldkamp/quadrant/pkg/radar/chart"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// layoutResponse is the body of POST /api/v1/layout.
type layoutResponse struct {
	ItemsHash string             `json:"items_hash"`
	Placed    []radar.PlacedItem `json:"placed"`
	Stats     layoutStats        `json:"stats"`
}

type layoutStats struct {
	ItemCount  int  `json:"item_count"`
	Unresolved int  `json:"unresolved"`
	LayoutHit  bool `json:"layout_cache_hit"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleLayout computes positions for the posted item list. The request
// body is a [pipeline.Options] document; Items or Source must be set.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := opts.ValidateForLoad(); err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	placed, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), items, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := layoutResponse{
		Placed: placed,
		Stats:  layoutStats{ItemCount: len(items), LayoutHit: hit},
	}
	for _, p := range placed {
		if p.Unresolved {
			resp.Stats.Unresolved++
		}
	}
	if data, err := json.Marshal(items); err == nil {
		resp.ItemsHash = cache.Hash(data)
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// handleRender runs the full pipeline and returns the rendered artifact.
// Exactly one output format is produced per request; the response body is
// the raw artifact with a matching content type.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if len(opts.Formats) > 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "render accepts a single format per request"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleCharts loads items from the source query parameter and returns
// the distribution summary.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("source")
	if src == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "source query parameter is required"))
		return
	}

	opts := pipeline.Options{Source: src}
	items, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summary := chart.Summarize(items, opts.EffectiveConfig())
	s.writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err, "request_id", RequestID(r.Context()))
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(errors.GetCode(err))
	if status >= 500 {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
	}
	s.writeJSON(w, r, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: RequestID(r.Context()),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidItem,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidSource, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
