package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/emberwake/emberwake/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DeniedResponse reports a rule-denied operation with a player-facing reason
type DeniedResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers already sent, nothing to do but log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondDenied sends a 200 with the player-facing reason for a rule denial.
// Denials are expected game outcomes, not transport errors.
func respondDenied(w http.ResponseWriter, reason string) {
	respondJSON(w, http.StatusOK, DeniedResponse{Allowed: false, Reason: reason})
}

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgCharacterNotFoundError  = "Character not found"
	ErrMsgItemNotFoundError       = "Item not found"
	ErrMsgDefinitionNotFoundError = "No such item exists"
	ErrMsgInsufficientItemsError  = "Not enough items"
	ErrMsgInventoryFullError      = "Inventory is full"
	ErrMsgNotEquipmentError       = "That item cannot be equipped"
	ErrMsgSlotNotFoundError       = "Nothing is equipped in that slot"
	ErrMsgInvalidQuantityError    = "Quantity must be positive"
	ErrMsgAlreadyAppliedError     = "That enchantment is already applied"
	ErrMsgHigherTierPresentError  = "A stronger enchantment of that kind is already applied"
)

// mapServiceErrorToUserMessage converts domain errors to HTTP status codes
// and messages a player can act on
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrDefinitionNotFound):
		return http.StatusBadRequest, ErrMsgDefinitionNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItemsError
	case errors.Is(err, domain.ErrInventoryFull):
		return http.StatusBadRequest, ErrMsgInventoryFullError
	case errors.Is(err, domain.ErrNotEquipment):
		return http.StatusBadRequest, ErrMsgNotEquipmentError
	case errors.Is(err, domain.ErrSlotNotFound):
		return http.StatusBadRequest, ErrMsgSlotNotFoundError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantityError
	case errors.Is(err, domain.ErrAlreadyApplied):
		return http.StatusBadRequest, ErrMsgAlreadyAppliedError
	case errors.Is(err, domain.ErrHigherTierPresent):
		return http.StatusBadRequest, ErrMsgHigherTierPresentError
	case errors.Is(err, domain.ErrUnknownCategory):
		return http.StatusBadRequest, ErrMsgDefinitionNotFoundError
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
