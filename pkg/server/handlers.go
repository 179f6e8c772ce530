package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/rnaimport/pkg/dialect"
	"github.com/matzehuels/rnaimport/pkg/errors"
	"github.com/matzehuels/rnaimport/pkg/pipeline"
)

// HeaderImportID carries the id assigned to each import request.
const HeaderImportID = "X-Import-ID"

var contentTypes = map[string]string{
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatDOT:      "text/vnd.graphviz",
	pipeline.FormatGraphSVG: "image/svg+xml",
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type sniffResponse struct {
	Dialect string `json:"dialect"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSniff(w http.ResponseWriter, r *http.Request) {
	text, ok := readDocument(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sniffResponse{Dialect: dialect.Sniff(text).String()})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}
	text, ok := readDocument(w, r)
	if !ok {
		return
	}

	id := uuid.New().String()
	w.Header().Set(HeaderImportID, id)
	result, err := s.runner.Execute(r.Context(), text, opts)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			s.logger.Error("import failed", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, errors.ErrCodeInternal, err.Error())
			return
		}
		s.logger.Debug("import rejected", "id", id, "code", code, "error", err)
		writeError(w, http.StatusUnprocessableEntity, code, errors.UserMessage(err))
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Dialect", result.Dialect.String())
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.ImportHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// optionsFromQuery applies query parameters over the server defaults.
func (s *Server) optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	opts.Formats = []string{format}
	if v := q.Get("dialect"); v != "" {
		opts.Dialect = v
	}
	if v := q.Get("duplicate_policy"); v != "" {
		opts.DuplicatePolicy = v
	}
	if v := q.Get("tolerance"); v != "" {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid tolerance %q", v)
		}
		opts.Tolerance = tol
	}
	if v := q.Get("refresh"); v != "" {
		opts.Refresh, _ = strconv.ParseBool(v)
	}
	opts.Logger = s.logger
	return opts, opts.ValidateAndSetDefaults()
}

// readDocument reads the request body up to the document size limit.
func readDocument(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, errors.MaxDocumentSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput, "document too large")
			return "", false
		}
		writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "failed to read body")
		return "", false
	}
	if err := errors.ValidateDocument(string(data)); err != nil {
		writeError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, errors.UserMessage(err))
		return "", false
	}
	return string(data), true
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
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errors.Code, message string) {
	writeJSON(w, status, errorResponse{Code: string(code), Message: message})
}
