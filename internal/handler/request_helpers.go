package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/emberwake/emberwake/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// DecodeAndValidateRequest decodes a JSON request body, validates it, and
// writes the error response itself on failure. A non-nil return means the
// handler should stop; the response is already written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// requireQueryParam extracts a query parameter, writing a 400 when absent.
// An empty return means the handler should stop.
func requireQueryParam(r *http.Request, w http.ResponseWriter, name string) string {
	value := r.URL.Query().Get(name)
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
	}
	return value
}
