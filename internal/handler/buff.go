package handler

import (
	"net/http"

	"github.com/emberwake/emberwake/internal/character"
	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/logger"
)

type AddBuffRequest struct {
	CharacterID  string  `json:"character_id" validate:"required,max=100"`
	BuffID       string  `json:"buff_id" validate:"required,max=100"`
	Name         string  `json:"name" validate:"max=100"`
	EffectType   string  `json:"effect_type" validate:"required,max=50"`
	Category     string  `json:"category" validate:"max=50"`
	Bonus        float64 `json:"bonus"`
	Duration     float64 `json:"duration" validate:"min=0"`
	ConsumeOnUse bool    `json:"consume_on_use"`
}

// HandleAddBuff attaches a timed buff to a character
func HandleAddBuff(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddBuffRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add buff"); err != nil {
			return
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		char.AddBuff(r.Context(), &domain.ActiveBuff{
			ID:           req.BuffID,
			Name:         req.Name,
			EffectType:   domain.BuffEffectType(req.EffectType),
			Category:     req.Category,
			Bonus:        req.Bonus,
			Duration:     req.Duration,
			ConsumeOnUse: req.ConsumeOnUse,
		})

		log.Info("Buff added", "character_id", req.CharacterID, "buff_id", req.BuffID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgBuffAddedSuccess})
	}
}

type ConsumeBuffsRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	ActionType  string `json:"action_type" validate:"required,oneof=attack gather craft"`
	Category    string `json:"category" validate:"max=50"`
}

type ConsumeBuffsResponse struct {
	Consumed []map[string]any `json:"consumed"`
}

// HandleConsumeBuffs consumes the one-shot buffs matching an action and
// returns what fired
func HandleConsumeBuffs(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ConsumeBuffsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Consume buffs"); err != nil {
			return
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		consumed := char.ConsumeBuffsForAction(req.ActionType, req.Category)
		views := make([]map[string]any, 0, len(consumed))
		for _, b := range consumed {
			views = append(views, b.ToSaveData())
		}

		log.Debug("Buffs consumed",
			"character_id", req.CharacterID,
			"action", req.ActionType,
			"count", len(consumed))
		respondJSON(w, http.StatusOK, ConsumeBuffsResponse{Consumed: views})
	}
}

// HandleGetBuffs returns a character's active buffs
func HandleGetBuffs(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := requireQueryParam(r, w, "character_id")
		if id == "" {
			return
		}

		char, err := mgr.Get(r.Context(), id)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: char.Buffs().ToSaveData()})
	}
}
