package handlers

import (
	"log"
	"net/http"
	"strings"

	"reclip-backend/internal/models"
	"reclip-backend/internal/services"
)

// 64 MB covers reference documents; media is never uploaded by the client.
const maxMultipartMemory = 64 << 20

type RepurposeHandler struct {
	pipeline *services.PipelineService
}

func NewRepurposeHandler(pipeline *services.PipelineService) *RepurposeHandler {
	return &RepurposeHandler{pipeline: pipeline}
}

// Process accepts a source URL, strategy fields, and optional reference
// documents, runs the full pipeline, and returns metadata plus the decoded
// generated content. The request blocks until the pipeline finishes; clients
// wanting live progress watch the WebSocket channel for the request id.
func (h *RepurposeHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return
	}

	url := strings.TrimSpace(r.FormValue("url"))
	if url == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"url": "URL is required"}, r))
		return
	}

	opts := models.GenerationOptions{
		TargetAudience:  r.FormValue("targetAudience"),
		Tone:            r.FormValue("tone"),
		Goal:            r.FormValue("goal"),
		OutputLanguage:  r.FormValue("language"),
		ScriptStructure: r.FormValue("scriptStructure"),
	}

	files := r.MultipartForm.File["files"]

	resp, err := h.pipeline.Process(r.Context(), url, opts, files)
	if err != nil {
		log.Printf("Pipeline failed for %s: %v", url, err)
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
