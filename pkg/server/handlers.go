package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/piechart/pkg/buildinfo"
	"github.com/matzehuels/piechart/pkg/chart"
	"github.com/matzehuels/piechart/pkg/errors"
	"github.com/matzehuels/piechart/pkg/observability"
	"github.com/matzehuels/piechart/pkg/pipeline"
)

// chartRequest is the body of the /v1 routes.
type chartRequest struct {
	Dataset       json.RawMessage  `json:"dataset"`
	DatasetFormat string           `json:"dataset_format,omitempty"`
	Options       pipeline.Options `json:"options"`
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ds, opts, err := decodeChartRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request_id", RequestIDFromContext(r.Context()))

	layout, hit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), ds, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ds, opts, err := decodeChartRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.logger.With("request_id", RequestIDFromContext(r.Context()))

	result, err := s.runner.Execute(r.Context(), ds, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := result.Artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// decodeChartRequest reads the request body and the dataset inside it.
func decodeChartRequest(r *http.Request) (chart.Dataset, pipeline.Options, error) {
	var req chartRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return chart.Dataset{}, pipeline.Options{}, err
		}
		return chart.Dataset{}, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	if len(req.Dataset) == 0 {
		return chart.Dataset{}, pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}

	format := chart.FormatJSON
	if req.DatasetFormat != "" {
		f, err := chart.ParseFormat(req.DatasetFormat)
		if err != nil {
			return chart.Dataset{}, pipeline.Options{}, err
		}
		format = f
	}

	raw := []byte(req.Dataset)
	if format != chart.FormatJSON {
		var text string
		if err := json.Unmarshal(req.Dataset, &text); err != nil {
			return chart.Dataset{}, pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err,
				"%s dataset must be a JSON string", format)
		}
		raw = []byte(text)
	}

	ds, err := chart.ParseDataset(raw, format)
	if err != nil {
		return chart.Dataset{}, pipeline.Options{}, err
	}
	return ds, req.Options, nil
}

// fail writes err as a JSON error response and reports it to the hooks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status == http.StatusRequestEntityTooLarge {
		code = "BODY_TOO_LARGE"
	}

	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()), "err", err)
		msg = "internal error"
	}
	writeError(w, status, code, msg, RequestIDFromContext(r.Context()))
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message, requestID string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	body.Error.RequestID = requestID
	writeJSON(w, status, body)
}
