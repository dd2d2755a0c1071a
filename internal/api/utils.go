package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const maxBodyBytes = 1 << 20

// ErrorBody is the envelope returned for every failed request.
type ErrorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse writes a JSON error envelope carrying the chi request ID.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, ErrorBody{
		Success:   false,
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// StatusForError maps pipeline errors onto HTTP status codes.
func StatusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, types.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError logs err and writes the mapped status. 5xx responses hide the cause.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusForError(err)
	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		logger.ErrorContext(r.Context(), "Request failed", slog.Any("error", err))
		msg = "internal server error"
	case status == http.StatusBadGateway:
		logger.ErrorContext(r.Context(), "Upstream failure", slog.Any("error", err))
		msg = "upstream service unavailable"
	default:
		logger.WarnContext(r.Context(), "Rejected request", slog.Any("error", err))
	}
	ErrorResponse(w, r, status, msg)
}

// WriteJSONResponse encodes data as JSON with the given status.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	js, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

// DecodeJSONBody decodes a single JSON value from the request body into dst.
// Unknown keys are rejected. Decode failures come back as *types.InputError.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return &types.InputError{Field: "body", Reason: describeDecodeError(err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &types.InputError{Field: "body", Reason: "must only contain a single JSON value"}
	}
	return nil
}

func describeDecodeError(err error) string {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxError):
		return fmt.Sprintf("badly-formed JSON (at character %d)", syntaxError.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "badly-formed JSON"
	case errors.As(err, &typeError):
		if typeError.Field != "" {
			return fmt.Sprintf("incorrect JSON type for field %q (wanted %s)", typeError.Field, typeError.Type)
		}
		return fmt.Sprintf("incorrect JSON type (at character %d)", typeError.Offset)
	case errors.Is(err, io.EOF):
		return "must not be empty"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fmt.Sprintf("unknown key %q", field)
	case errors.As(err, &maxBytesError):
		return fmt.Sprintf("must not be larger than %d bytes", maxBytesError.Limit)
	default:
		// Covers UnmarshalText failures such as a malformed timings window.
		return err.Error()
	}
}
