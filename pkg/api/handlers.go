package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/sibaiper/tidy-tree/pkg/errors"
	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/store"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// createLayoutRequest is the POST /v1/layouts body.
type createLayoutRequest struct {
	Tree    *treefile.Doc `json:"tree"`
	Name    string        `json:"name,omitempty"`
	Options layoutOptions `json:"options"`
}

type layoutOptions struct {
	VerticalGap   float64 `json:"vertical_gap,omitempty"`
	HorizontalGap float64 `json:"horizontal_gap,omitempty"`
	WidthExpr     string  `json:"width_expr,omitempty"`
	HeightExpr    string  `json:"height_expr,omitempty"`
}

// layoutSummary is one entry in the list response.
type layoutSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Nodes     int       `json:"nodes"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
}

type listLayoutsResponse struct {
	Layouts []layoutSummary `json:"layouts"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Tree == nil || req.Tree.Root == nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidDocument, "request has no tree document"))
		return
	}

	if req.Options.VerticalGap < 0 || req.Options.HorizontalGap < 0 {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "gaps must be non-negative"))
		return
	}

	source, err := treefile.Marshal(*req.Tree)
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidDocument, err, "serialize tree document"))
		return
	}

	opts := pipeline.Options{
		Source:        string(source),
		Format:        pipeline.InputJSON,
		Name:          req.Name,
		VerticalGap:   req.Options.VerticalGap,
		HorizontalGap: req.Options.HorizontalGap,
		WidthExpr:     req.Options.WidthExpr,
		HeightExpr:    req.Options.HeightExpr,
		Formats:       []string{pipeline.FormatSVG},
		Logger:        s.runner.Logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(result)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/layouts/%s", rec.ID))
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := listLayoutsResponse{Layouts: make([]layoutSummary, 0, len(records))}
	for _, rec := range records {
		resp.Layouts = append(resp.Layouts, layoutSummary{
			ID:        rec.ID,
			Name:      rec.Name,
			CreatedAt: rec.CreatedAt,
			Nodes:     len(rec.Layout.Nodes),
			Width:     rec.Layout.Width,
			Height:    rec.Layout.Height,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}
	q := r.URL.Query()
	if style := q.Get("style"); style != "" {
		if err := pipeline.ValidateStyle(style); err != nil {
			s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidStyle, err, "invalid style %q", style))
			return
		}
		opts.Style = style
	}
	if raw := q.Get("padding"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || p < 0 {
			s.writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid padding %q", raw))
			return
		}
		opts.Padding = p
	}

	artifacts, err := pipeline.Render(rec.Layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain errors to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)

	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		status = http.StatusNotFound
		code = apperrors.ErrCodeLayoutNotFound
	case code == apperrors.ErrCodeInvalidInput,
		code == apperrors.ErrCodeInvalidDocument,
		code == apperrors.ErrCodeInvalidFormat,
		code == apperrors.ErrCodeInvalidStyle,
		code == apperrors.ErrCodeInvalidPath,
		code == apperrors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case code == apperrors.ErrCodeNotFound,
		code == apperrors.ErrCodeLayoutNotFound,
		code == apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case code == apperrors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case code == apperrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case code == apperrors.ErrCodeNetwork:
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()))
	}

	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
