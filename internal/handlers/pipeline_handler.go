package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/signum/internal/common"
	"github.com/ternarybob/signum/internal/pipeline"
)

// PipelineHandler exposes the labeling pipeline over HTTP.
type PipelineHandler struct {
	service         *pipeline.Service
	validate        *validator.Validate
	logger          arbor.ILogger
	defaultFilename string
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(service *pipeline.Service, logger arbor.ILogger, defaultFilename string) *PipelineHandler {
	return &PipelineHandler{
		service:         service,
		validate:        validator.New(),
		logger:          logger,
		defaultFilename: defaultFilename,
	}
}

// RunRequest is the request body for a pipeline run.
type RunRequest struct {
	Tickers  string `json:"tickers" validate:"required"`
	Filename string `json:"filename"`
}

// RunResponse wraps a pipeline result for the UI.
type RunResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
	*pipeline.Result
}

// RunHandler executes the pipeline and returns the labeled records as
// JSON. Input validation failures are rejected before any fetch.
func (h *PipelineHandler) RunHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	tickers, err := common.ParseTickerList(req.Tickers)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Run(r.Context(), tickers)
	if err != nil {
		h.logger.Error().Err(err).Msg("Pipeline run failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, RunResponse{
		Status:   "success",
		Filename: common.NormalizeFilename(req.Filename, h.defaultFilename),
		Result:   result,
	})
}

// ExportHandler executes the pipeline and streams the result as a CSV
// attachment. Tickers and filename arrive as query parameters so the
// page can trigger the download with a plain link.
func (h *PipelineHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	tickers, err := common.ParseTickerList(r.URL.Query().Get("tickers"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	filename := common.NormalizeFilename(r.URL.Query().Get("filename"), h.defaultFilename)

	result, err := h.service.Run(r.Context(), tickers)
	if err != nil {
		h.logger.Error().Err(err).Msg("Pipeline run failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := pipeline.WriteCSV(w, result.Records); err != nil {
		// Headers are already out; log and give up on this response
		h.logger.Error().Err(err).Msg("CSV export failed mid-stream")
	}
}
