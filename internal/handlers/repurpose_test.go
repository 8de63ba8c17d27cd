package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reclip-backend/internal/models"
	"reclip-backend/internal/services"
)

func multipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/api/v1/repurpose", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}

func TestProcess_MissingURL(t *testing.T) {
	handler := NewRepurposeHandler(nil)
	rec := httptest.NewRecorder()

	handler.Process(rec, multipartRequest(t, map[string]string{"tone": "playful"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %q", resp.Error.Code)
	}
	if resp.Error.Fields["url"] == "" {
		t.Error("expected a field-level message for url")
	}
}

func TestProcess_BlankURLTreatedAsMissing(t *testing.T) {
	handler := NewRepurposeHandler(nil)
	rec := httptest.NewRecorder()

	handler.Process(rec, multipartRequest(t, map[string]string{"url": "   "}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestProcess_InvalidMultipartForm(t *testing.T) {
	handler := NewRepurposeHandler(nil)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest("POST", "/api/v1/repurpose", strings.NewReader("url=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.Process(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %q", resp.Error.Code)
	}
}

func TestHandleServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"url": "bad"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"extraction", &services.ExtractionError{Message: "yt-dlp failed"}, http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
		{"upload", &services.UploadError{Message: "upload rejected"}, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"processing", &services.ProcessingError{Message: "file entered FAILED state"}, http.StatusBadGateway, "PROCESSING_FAILED"},
		{"timeout", &services.TimeoutError{Message: "activation timed out"}, http.StatusGatewayTimeout, "TIMEOUT"},
		{"upstream", &services.UpstreamError{Message: "empty model response"}, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/v1/repurpose", nil)
			req.Header.Set("X-Request-ID", "req-1")

			handleServiceError(rec, req, tc.err)

			if rec.Code != tc.expectedStatus {
				t.Errorf("Expected %d, got %d", tc.expectedStatus, rec.Code)
			}
			resp := decodeError(t, rec)
			if resp.Error.Code != tc.expectedCode {
				t.Errorf("Expected code %q, got %q", tc.expectedCode, resp.Error.Code)
			}
			if resp.Error.RequestID != "req-1" {
				t.Errorf("expected request id echoed, got %q", resp.Error.RequestID)
			}
		})
	}
}
