package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/insightdeck/insightdeck/pkg/deck/sink"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/pipeline"
)

// errorResponse is the JSON error body: a user-facing message plus the
// machine-readable code.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// handleCreateDeck accepts a multipart CSV upload ("dataset" field) and
// responds with the rendered deck in the requested format (?format=svg by
// default).
func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	jobID := uuid.NewString()
	logger := s.logger.With("job", jobID)
	start := time.Now()

	format, err := sink.ParseFormat(formatParam(r))
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.writeError(w, logger, errors.Wrap(errors.ErrCodeInvalidInput, err,
			"multipart upload with a %q file field required (max %d MB)", "dataset", MaxUploadBytes>>20))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("dataset")
	if err != nil {
		s.writeError(w, logger, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing %q file field", "dataset"))
		return
	}
	defer file.Close()

	if err := errors.ValidateDatasetFilename(header.Filename); err != nil {
		s.writeError(w, logger, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), file, pipeline.Options{
		Title:   r.FormValue("title"),
		Formats: []string{string(format)},
	})
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	data := result.Artifacts[string(format)]
	logger.Info("deck generated",
		"file", header.Filename,
		"format", format,
		"bytes", len(data),
		"duration", time.Since(start))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "deck"+format.Ext()))
	w.Header().Set("X-Job-ID", jobID)
	w.Header().Set("X-Document-Hash", result.DocumentHash)
	_, _ = w.Write(data)
}

func formatParam(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return string(sink.FormatSVG)
}

// writeError maps input errors to 400 and everything else to 500, with a
// JSON body carrying the message and code.
func (s *Server) writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := http.StatusInternalServerError
	if errors.IsInputError(err) {
		status = http.StatusBadRequest
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	logger.Error("request failed", "status", status, "code", code, "err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}
