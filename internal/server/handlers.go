package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/datavis/internal/state"
	"github.com/leapstack-labs/datavis/pkg/anim"
	"github.com/leapstack-labs/datavis/pkg/core"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

const (
	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 32 << 20
	// defaultListLimit is the page size of GET /layouts.
	defaultListLimit = 20
)

var errArchiveDisabled = errors.New("layout archive is disabled")

// DatasetResponse describes the current dataset.
type DatasetResponse struct {
	Version uint64             `json:"version"`
	Dataset dataset.Summary    `json:"dataset"`
	Charts  []layout.ChartKind `json:"charts"`
}

// TableRequest is the body of PUT /dataset.
type TableRequest struct {
	Rows   dataset.RawTable `json:"rows"`
	Kind   dataset.Kind     `json:"kind"`
	Labels dataset.Labels   `json:"labels"`
}

// KindRequest is the body of PATCH /dataset.
type KindRequest struct {
	Kind dataset.Kind `json:"kind"`
}

// ColumnScheduleRequest is the body of POST /schedule/columns. A zero
// TailLength uses the tail of the current dataset.
type ColumnScheduleRequest struct {
	anim.ColumnOptions
	TailLength int    `json:"tail_length"`
	Prefix     string `json:"prefix"`
}

// ColumnScheduleResponse is the result of POST /schedule/columns.
type ColumnScheduleResponse struct {
	TailLength int             `json:"tail_length"`
	Steps      []anim.Step     `json:"steps"`
	Keyframes  []core.Keyframe `json:"keyframes"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Get("/dataset", s.handleGetDataset)
	r.Put("/dataset", s.handlePutDataset)
	r.Patch("/dataset", s.handlePatchDataset)
	r.Post("/layout/{kind}", s.handleLayout)
	r.Get("/layouts", s.handleListLayouts)
	r.Get("/layouts/{id}", s.handleGetLayout)
	r.Post("/schedule/columns", s.handleColumnSchedule)
	r.Post("/schedule/tween", s.handleTween)
	r.Get("/events", s.handleEvents)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.store.Version(),
	})
}

func (s *Server) datasetResponse(ds *dataset.Dataset, version uint64) DatasetResponse {
	charts := layout.AvailableKinds(ds)
	if charts == nil {
		charts = []layout.ChartKind{}
	}
	return DatasetResponse{
		Version: version,
		Dataset: ds.Summary(),
		Charts:  charts,
	}
}

func (s *Server) handleGetDataset(w http.ResponseWriter, _ *http.Request) {
	ds, version := s.store.Snapshot()
	if ds == nil {
		s.writeError(w, http.StatusNotFound, errors.New("no dataset loaded"))
		return
	}
	s.writeJSON(w, http.StatusOK, s.datasetResponse(ds, version))
}

func (s *Server) handlePutDataset(w http.ResponseWriter, r *http.Request) {
	var req TableRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ds, version, err := s.publish(req.Rows, dataset.Options{Kind: req.Kind, Labels: req.Labels})
	status := http.StatusOK
	if err != nil {
		status = errorStatus(err)
	}
	s.writeJSON(w, status, s.datasetResponse(ds, version))
}

// handlePatchDataset re-derives the current table under another kind.
func (s *Server) handlePatchDataset(w http.ResponseWriter, r *http.Request) {
	var req KindRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Kind == dataset.KindInvalid {
		s.writeError(w, http.StatusBadRequest, core.NewConfigurationError("kind", "kind cannot be forced to invalid"))
		return
	}
	ds, version, err := s.store.Reclassify(req.Kind)
	if ds == nil {
		s.writeError(w, http.StatusConflict, err)
		return
	}
	s.notifier.Publish()
	status := http.StatusOK
	if err != nil {
		status = errorStatus(err)
	}
	s.writeJSON(w, status, s.datasetResponse(ds, version))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	kind, err := layout.ParseChartKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	req, err := s.cfg.Requests(kind)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if err := decodeBody(w, r, req, true); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	ds, version := s.store.Snapshot()
	if ds == nil {
		s.writeError(w, http.StatusConflict, errors.New("no dataset loaded"))
		return
	}

	res := s.engine.Create(r.Context(), ds, req)
	status := http.StatusOK
	if !res.Finished() {
		status = http.StatusUnprocessableEntity
	}
	s.archive(r.Context(), res, version)
	s.writeJSON(w, status, res)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Archive == nil {
		s.writeError(w, http.StatusNotFound, errArchiveDisabled)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind != "" {
		k, err := layout.ParseChartKind(kind)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		kind = string(k)
	}
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	layouts, err := s.cfg.Archive.ListLayouts(r.Context(), kind, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, layouts)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Archive == nil {
		s.writeError(w, http.StatusNotFound, errArchiveDisabled)
		return
	}

	l, err := s.cfg.Archive.GetLayout(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, state.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, err)
	default:
		s.writeJSON(w, http.StatusOK, l)
	}
}

func (s *Server) handleColumnSchedule(w http.ResponseWriter, r *http.Request) {
	req := ColumnScheduleRequest{
		ColumnOptions: anim.ColumnOptions{KeySpacing: 20, StartFrame: 1, EndIndex: -1},
	}
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.TailLength == 0 {
		ds := s.store.Current()
		if ds == nil {
			s.writeError(w, http.StatusConflict, errors.New("no dataset loaded"))
			return
		}
		if !ds.Animable() {
			s.writeError(w, http.StatusUnprocessableEntity, core.NewInvalidDataError("dataset has no animation tail"))
			return
		}
		req.TailLength = ds.TailLength()
	}

	steps, err := anim.BuildColumnSchedule(req.TailLength, req.ColumnOptions)
	if err != nil {
		s.writeError(w, errorStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, ColumnScheduleResponse{
		TailLength: req.TailLength,
		Steps:      steps,
		Keyframes:  anim.ColumnKeyframes(steps, req.Prefix),
	})
}

func (s *Server) handleTween(w http.ResponseWriter, r *http.Request) {
	opts := anim.TweenOptions{StartFrame: 1, Duration: 20, End: 1, Interpolation: core.InterpolationLinear}
	if err := decodeBody(w, r, &opts, false); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	keys, err := anim.Tween(opts)
	if err != nil {
		s.writeError(w, errorStatus(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, keys)
}

// handleEvents is the long-lived SSE endpoint. It sends the current dataset
// as datastar signals, then again on every published change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	updates := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(updates)

	sse := datastar.NewSSE(w, r)
	send := func() {
		ds, version := s.store.Snapshot()
		if ds == nil {
			return
		}
		if err := sse.MarshalAndPatchSignals(s.datasetResponse(ds, version)); err != nil {
			_ = sse.ConsoleError(err)
		}
	}
	send()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			send()
		}
	}
}

// decodeBody decodes a JSON body into v, rejecting unknown fields. An empty
// body is accepted when optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// errorStatus maps the error taxonomy to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case core.IsInvalidData(err):
		return http.StatusUnprocessableEntity
	case core.IsConfiguration(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
