package handler

import (
	"net/http"

	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/character"
	"github.com/emberwake/emberwake/internal/logger"
)

type ApplyEnchantRequest struct {
	CharacterID   string `json:"character_id" validate:"required,max=100"`
	InstanceID    string `json:"instance_id" validate:"required,max=100"`
	EnchantmentID string `json:"enchantment_id" validate:"required,max=100"`
}

// HandleApplyEnchant applies a registered enchantment to an equipment
// instance. Applicability denials come back as a DeniedResponse.
func HandleApplyEnchant(mgr *character.Manager, registry *catalog.EnchantmentRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ApplyEnchantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Apply enchantment"); err != nil {
			return
		}

		ench, err := registry.Get(req.EnchantmentID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		ok, reason, err := char.ApplyEnchantment(r.Context(), req.InstanceID, ench)
		if err != nil {
			log.Warn("Failed to apply enchantment", "error", err,
				"character_id", req.CharacterID, "enchantment", req.EnchantmentID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		if !ok {
			respondDenied(w, reason)
			return
		}

		log.Info("Enchantment applied",
			"character_id", req.CharacterID,
			"instance_id", req.InstanceID,
			"enchantment", req.EnchantmentID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgEnchantAppliedSuccess})
	}
}

// HandleListEnchantments returns all registered enchantment ids
func HandleListEnchantments(registry *catalog.EnchantmentRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: registry.IDs()})
	}
}

// HandleReloadEnchantments re-reads the enchantment config from disk
func HandleReloadEnchantments(registry *catalog.EnchantmentRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := registry.Reload(); err != nil {
			log.Error("Failed to reload enchantment config", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Enchantment configuration reloaded"})
	}
}
