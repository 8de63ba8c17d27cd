package handlers

import (
	"encoding/json"
	"net/http"

	"reclip-backend/internal/models"
	"reclip-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

// handleServiceError maps typed pipeline errors to distinct status codes
// instead of a single undifferentiated message string.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := services.ErrorCode(err)
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorRespWithFields(code, "Validation failed", e.Fields, r))
	case *services.ExtractionError:
		writeJSON(w, http.StatusUnprocessableEntity, errorResp(code, e.Message, r))
	case *services.UploadError:
		writeJSON(w, http.StatusBadGateway, errorResp(code, e.Message, r))
	case *services.ProcessingError:
		writeJSON(w, http.StatusBadGateway, errorResp(code, e.Message, r))
	case *services.TimeoutError:
		writeJSON(w, http.StatusGatewayTimeout, errorResp(code, e.Message, r))
	case *services.UpstreamError:
		writeJSON(w, http.StatusBadGateway, errorResp(code, e.Message, r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp(code, "Internal server error", r))
	}
}
