package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/middlemost/podgen"
)

const (
	ErrInvalidRequestBody = podgen.Error("invalid request body")
)

// errorMap is a whitelist that maps errors to status codes.
// Pipeline stages wrap these sentinels with stage context, so matching
// uses errors.Is rather than direct equality.
var errorMap = map[error]int{
	ErrInvalidRequestBody:       http.StatusBadRequest,
	podgen.ErrUnsupportedFormat: http.StatusBadRequest,
	podgen.ErrDecode:            http.StatusBadRequest,
	podgen.ErrPodcastIDRequired: http.StatusBadRequest,
	podgen.ErrFilenameRequired:  http.StatusBadRequest,
	podgen.ErrInvalidFilename:   http.StatusBadRequest,
	podgen.ErrPodcastNotFound:   http.StatusNotFound,
	podgen.ErrFileNotFound:      http.StatusNotFound,
	podgen.ErrModelUnavailable:  http.StatusInternalServerError,
	podgen.ErrGeneration:        http.StatusInternalServerError,
	podgen.ErrSynthesis:         http.StatusInternalServerError,
	podgen.ErrEmptyScript:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an error object.
func ErrorStatusCode(err error) int {
	for e, code := range errorMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return http.StatusInternalServerError
}

// isWhitelisted returns true if the error message is safe to expose.
func isWhitelisted(err error) bool {
	for e := range errorMap {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Error writes an error response to the writer.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	// Determine status code.
	code := ErrorStatusCode(err)

	// Log error.
	if logOutput := FromContext(r.Context()); logOutput != nil {
		fmt.Fprintf(logOutput, "http error: %d %s\n", code, err.Error())
	}

	// Mask unrecognized errors from end users.
	if !isWhitelisted(err) {
		err = podgen.ErrInternal
	}

	// Write response.
	switch {
	case strings.Contains(r.Header.Get("Accept"), "text/plain"):
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(code)
		w.Write([]byte(err.Error()))

	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(&errorResponse{Err: err.Error()})
	}
}

type errorResponse struct {
	Err string `json:"error,omitempty"`
}
