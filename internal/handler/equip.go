package handler

import (
	"net/http"

	"github.com/emberwake/emberwake/internal/character"
	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/equipment"
	"github.com/emberwake/emberwake/internal/logger"
)

type EquipRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	InstanceID  string `json:"instance_id" validate:"required,max=100"`
}

// HandleEquip moves an inventory equipment instance into its slot.
// Rule denials (unmet requirements, hand conflicts) come back as a
// DeniedResponse, not an error.
func HandleEquip(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		ok, reason, err := char.Equip(r.Context(), req.InstanceID)
		if err != nil {
			log.Error("Failed to equip item", "error", err,
				"character_id", req.CharacterID, "instance_id", req.InstanceID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		if !ok {
			respondDenied(w, reason)
			return
		}

		log.Info("Item equipped", "character_id", req.CharacterID, "instance_id", req.InstanceID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemEquippedSuccess})
	}
}

type UnequipRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	Slot        string `json:"slot" validate:"required,slot"`
}

// HandleUnequip moves an equipped item back into the inventory
func HandleUnequip(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnequipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unequip item"); err != nil {
			return
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		ok, reason, err := char.Unequip(r.Context(), req.Slot)
		if err != nil {
			log.Warn("Failed to unequip item", "error", err,
				"character_id", req.CharacterID, "slot", req.Slot)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		if !ok {
			respondDenied(w, reason)
			return
		}

		log.Info("Item unequipped", "character_id", req.CharacterID, "slot", req.Slot)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemUnequippedSuccess})
	}
}

// LoadoutSlotView is one equipped slot in API responses
type LoadoutSlotView struct {
	Slot          string  `json:"slot"`
	ItemID        string  `json:"item_id"`
	InstanceID    string  `json:"instance_id"`
	Effectiveness float64 `json:"effectiveness"`
	DamageMin     int     `json:"damage_min,omitempty"`
	DamageMax     int     `json:"damage_max,omitempty"`
	Defense       int     `json:"defense,omitempty"`
	Urgency       string  `json:"repair_urgency"`
}

type LoadoutResponse struct {
	CharacterID  string            `json:"character_id"`
	Slots        []LoadoutSlotView `json:"slots"`
	AttackMin    int               `json:"attack_min"`
	AttackMax    int               `json:"attack_max"`
	DefenseTotal int               `json:"defense_total"`
}

// HandleGetLoadout returns the equipped slots with effective combat values
func HandleGetLoadout(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id := requireQueryParam(r, w, "character_id")
		if id == "" {
			return
		}

		char, err := mgr.Get(r.Context(), id)
		if err != nil {
			log.Warn("Failed to get loadout", "error", err, "character_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		resp := LoadoutResponse{
			CharacterID:  id,
			Slots:        make([]LoadoutSlotView, 0),
			DefenseTotal: char.DefenseTotal(),
		}
		resp.AttackMin, resp.AttackMax = char.AttackDamage()

		char.Loadout().Each(func(slot string, eq *domain.EquipmentItem) {
			model := equipment.NewModel(eq, char.Buffs())
			resp.Slots = append(resp.Slots, LoadoutSlotView{
				Slot:          slot,
				ItemID:        eq.ID,
				InstanceID:    eq.InstanceID,
				Effectiveness: model.Effectiveness(),
				DamageMin:     model.EffectiveDamageMin(),
				DamageMax:     model.EffectiveDamageMax(),
				Defense:       model.EffectiveDefense(),
				Urgency:       string(model.Urgency()),
			})
		})

		respondJSON(w, http.StatusOK, resp)
	}
}

type RepairRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	Slot        string `json:"slot" validate:"required,slot"`
	Amount      int    `json:"amount" validate:"min=0,max=100000"`
	// Percent interprets Amount as a percentage of max durability
	Percent bool `json:"percent"`
}

type RepairResponse struct {
	Message  string `json:"message"`
	Restored int    `json:"restored"`
}

// HandleRepair restores durability on an equipped slot. Omitting amount
// repairs to full.
func HandleRepair(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RepairRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Repair item"); err != nil {
			return
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		var opts *equipment.RepairOptions
		if req.Amount > 0 {
			if req.Percent {
				opts = &equipment.RepairOptions{Percent: float64(req.Amount) / 100}
			} else {
				opts = &equipment.RepairOptions{Amount: req.Amount}
			}
		}

		restored, err := char.Repair(r.Context(), req.Slot, opts)
		if err != nil {
			log.Warn("Failed to repair item", "error", err,
				"character_id", req.CharacterID, "slot", req.Slot)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item repaired", "character_id", req.CharacterID, "slot", req.Slot, "restored", restored)
		respondJSON(w, http.StatusOK, RepairResponse{Message: "Repaired", Restored: restored})
	}
}

type DamageRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	Slot        string `json:"slot" validate:"required,slot"`
	Amount      int    `json:"amount" validate:"min=1,max=100000"`
}

// HandleDamage applies durability loss to an equipped slot
func HandleDamage(mgr *character.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req DamageRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Damage item"); err != nil {
			return
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		if err := char.TakeDurabilityLoss(req.Slot, req.Amount); err != nil {
			log.Warn("Failed to apply durability loss", "error", err,
				"character_id", req.CharacterID, "slot", req.Slot)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Durability loss applied"})
	}
}
