package services

// Typed service errors. Handlers map these to distinct status codes instead
// of collapsing everything into one message string.

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// ExtractionError means the extraction tool (and the Twitter fallback, when
// applicable) produced nothing usable for the URL.
type ExtractionError struct{ Message string }

func (e *ExtractionError) Error() string { return e.Message }

// UploadError means submitting a local file to the AI backend failed.
type UploadError struct{ Message string }

func (e *UploadError) Error() string { return e.Message }

// ProcessingError means the backend reported a terminal non-active state for
// an uploaded file.
type ProcessingError struct{ Message string }

func (e *ProcessingError) Error() string { return e.Message }

// TimeoutError means the activation poll bound was exhausted.
type TimeoutError struct{ Message string }

func (e *TimeoutError) Error() string { return e.Message }

// UpstreamError covers generation-call failures from the AI backend.
type UpstreamError struct{ Message string }

func (e *UpstreamError) Error() string { return e.Message }

// ErrorCode maps a service error to the boundary error code.
func ErrorCode(err error) string {
	switch err.(type) {
	case *ValidationError:
		return "VALIDATION_ERROR"
	case *ExtractionError:
		return "EXTRACTION_FAILED"
	case *UploadError:
		return "UPSTREAM_ERROR"
	case *ProcessingError:
		return "PROCESSING_FAILED"
	case *TimeoutError:
		return "TIMEOUT"
	case *UpstreamError:
		return "UPSTREAM_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
