package handler

import (
	"net/http"

	"github.com/emberwake/emberwake/internal/character"
	"github.com/emberwake/emberwake/internal/logger"
)

type CreateCharacterRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
}

// HandleCreateCharacter loads or creates a character
func HandleCreateCharacter(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
			return
		}

		char, err := mgr.GetOrCreate(r.Context(), req.CharacterID)
		if err != nil {
			log.Error("Failed to create character", "error", err, "character_id", req.CharacterID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: map[string]any{
			"character_id": char.ID,
			"free_slots":   char.Inventory().FreeSlots(),
		}})
	}
}

// HandleGetCharacter returns a character's full serialized state
func HandleGetCharacter(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id := requireQueryParam(r, w, "character_id")
		if id == "" {
			return
		}

		char, err := mgr.Get(r.Context(), id)
		if err != nil {
			log.Warn("Failed to get character", "error", err, "character_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: char.ToSaveData()})
	}
}

// HandleSaveCharacter persists one character's state immediately
func HandleSaveCharacter(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id := requireQueryParam(r, w, "character_id")
		if id == "" {
			return
		}

		if err := mgr.Save(r.Context(), id); err != nil {
			log.Error("Failed to save character", "error", err, "character_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgStateSavedSuccess})
	}
}

type SetStatsRequest struct {
	CharacterID string         `json:"character_id" validate:"required,max=100"`
	Level       int            `json:"level" validate:"min=0,max=1000"`
	Attributes  map[string]int `json:"attributes"`
}

// HandleSetStats updates a character's level and attribute sheet
func HandleSetStats(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetStatsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set stats"); err != nil {
			return
		}

		if _, err := mgr.Get(r.Context(), req.CharacterID); err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		stats := mgr.StatsOf(req.CharacterID)
		if stats == nil {
			respondError(w, http.StatusNotFound, ErrMsgCharacterNotFoundError)
			return
		}
		if req.Level > 0 {
			stats.CharacterLevel = req.Level
		}
		for name, value := range req.Attributes {
			stats.SetStat(name, value)
		}

		log.Info("Character stats updated", "character_id", req.CharacterID, "level", stats.CharacterLevel)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Stats updated"})
	}
}
