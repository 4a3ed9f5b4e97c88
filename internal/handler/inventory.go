package handler

import (
	"net/http"

	"github.com/emberwake/emberwake/internal/character"
	"github.com/emberwake/emberwake/internal/domain"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/naming"
)

type AddItemRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	ItemName    string `json:"item_name" validate:"required,max=100"`
	Quantity    int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleAddItem adds items to a character's inventory. Item names resolve
// through the naming layer, so players can use display aliases.
func HandleAddItem(mgr *character.Manager, resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
			return
		}

		itemID := req.ItemName
		if resolved, ok := resolver.ResolvePublicName(req.ItemName); ok {
			itemID = resolved
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		if err := char.AddItemByID(r.Context(), itemID, req.Quantity); err != nil {
			log.Error("Failed to add item", "error", err, "character_id", req.CharacterID, "item", itemID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item added", "character_id", req.CharacterID, "item", itemID, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemAddedSuccess})
	}
}

type CraftItemRequest struct {
	CharacterID  string             `json:"character_id" validate:"required,max=100"`
	ItemName     string             `json:"item_name" validate:"required,max=100"`
	QualityScore float64            `json:"quality_score" validate:"min=0,max=1"`
	Discipline   string             `json:"discipline" validate:"max=50"`
	Modifiers    map[string]float64 `json:"modifiers"`
	Rarity       string             `json:"rarity"`
}

type CraftItemResponse struct {
	Message     string `json:"message"`
	InstanceID  string `json:"instance_id"`
	DisplayName string `json:"display_name"`
	Quality     string `json:"quality"`
}

// HandleCraftItem creates a crafted equipment instance in the character's
// inventory
func HandleCraftItem(mgr *character.Manager, resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CraftItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Craft item"); err != nil {
			return
		}

		itemID := req.ItemName
		if resolved, ok := resolver.ResolvePublicName(req.ItemName); ok {
			itemID = resolved
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		stats := domain.NewCraftedStats(req.QualityScore, req.Discipline, req.Modifiers)
		if req.Rarity != "" && domain.ValidRarity(domain.Rarity(req.Rarity)) {
			stats.RarityOverride = domain.Rarity(req.Rarity)
		}

		eq, err := char.AddCrafted(r.Context(), itemID, stats)
		if err != nil {
			log.Error("Failed to craft item", "error", err, "character_id", req.CharacterID, "item", itemID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item crafted", "character_id", req.CharacterID, "item", itemID, "quality", stats.QualityTier)
		respondJSON(w, http.StatusOK, CraftItemResponse{
			Message:     MsgItemAddedSuccess,
			InstanceID:  eq.InstanceID,
			DisplayName: resolver.DisplayName(eq.ID, eq.Rarity),
			Quality:     string(stats.QualityTier),
		})
	}
}

type RemoveItemRequest struct {
	CharacterID string `json:"character_id" validate:"required,max=100"`
	ItemName    string `json:"item_name" validate:"required,max=100"`
	Quantity    int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleRemoveItem removes items from a character's inventory
func HandleRemoveItem(mgr *character.Manager, resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RemoveItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove item"); err != nil {
			return
		}

		itemID := req.ItemName
		if resolved, ok := resolver.ResolvePublicName(req.ItemName); ok {
			itemID = resolved
		}

		char, err := mgr.Get(r.Context(), req.CharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		if err := char.RemoveItem(r.Context(), itemID, req.Quantity); err != nil {
			log.Warn("Failed to remove item", "error", err, "character_id", req.CharacterID, "item", itemID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Item removed", "character_id", req.CharacterID, "item", itemID, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemRemovedSuccess})
	}
}

type GiveItemRequest struct {
	FromCharacterID string `json:"from_character_id" validate:"required,max=100"`
	ToCharacterID   string `json:"to_character_id" validate:"required,max=100"`
	ItemName        string `json:"item_name" validate:"max=100"`
	InstanceID      string `json:"instance_id" validate:"max=100"`
	Quantity        int    `json:"quantity" validate:"min=0,max=10000"`
}

// HandleGiveItem transfers items between characters. Stackables move by
// item name and quantity; equipment moves by instance id.
func HandleGiveItem(mgr *character.Manager, resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GiveItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Give item"); err != nil {
			return
		}
		if req.ItemName == "" && req.InstanceID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		from, err := mgr.Get(r.Context(), req.FromCharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		to, err := mgr.GetOrCreate(r.Context(), req.ToCharacterID)
		if err != nil {
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		var ok bool
		var reason string
		if req.InstanceID != "" {
			ok, reason, err = character.TransferEquipment(r.Context(), from, to, req.InstanceID)
		} else {
			itemID := req.ItemName
			if resolved, resolvedOK := resolver.ResolvePublicName(req.ItemName); resolvedOK {
				itemID = resolved
			}
			qty := req.Quantity
			if qty == 0 {
				qty = 1
			}
			ok, reason, err = character.TransferItem(r.Context(), from, to, itemID, qty)
		}
		if err != nil {
			log.Error("Failed to give item", "error", err,
				"from", req.FromCharacterID, "to", req.ToCharacterID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}
		if !ok {
			respondDenied(w, reason)
			return
		}

		log.Info("Item transferred", "from", req.FromCharacterID, "to", req.ToCharacterID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemTransferredSuccess})
	}
}

// InventorySlotView is one occupied inventory slot in API responses
type InventorySlotView struct {
	Slot        int            `json:"slot"`
	ItemID      string         `json:"item_id"`
	DisplayName string         `json:"display_name"`
	Quantity    int            `json:"quantity"`
	MaxStack    int            `json:"max_stack"`
	Rarity      string         `json:"rarity,omitempty"`
	Equipment   map[string]any `json:"equipment,omitempty"`
}

type InventoryResponse struct {
	CharacterID string              `json:"character_id"`
	Size        int                 `json:"size"`
	FreeSlots   int                 `json:"free_slots"`
	Slots       []InventorySlotView `json:"slots"`
}

// HandleGetInventory returns a character's inventory with display names
func HandleGetInventory(mgr *character.Manager, resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id := requireQueryParam(r, w, "character_id")
		if id == "" {
			return
		}

		char, err := mgr.Get(r.Context(), id)
		if err != nil {
			log.Warn("Failed to get inventory", "error", err, "character_id", id)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		inv := char.Inventory()
		resp := InventoryResponse{
			CharacterID: id,
			Size:        inv.Size(),
			FreeSlots:   inv.FreeSlots(),
			Slots:       make([]InventorySlotView, 0),
		}
		for i := 0; i < inv.Size(); i++ {
			s, _ := inv.Slot(i)
			if s == nil {
				continue
			}
			view := InventorySlotView{
				Slot:        i,
				ItemID:      s.ItemID,
				DisplayName: resolver.DisplayName(s.ItemID, s.Rarity),
				Quantity:    s.Quantity,
				MaxStack:    s.MaxStack,
				Rarity:      string(s.Rarity),
			}
			if s.Equipment != nil {
				view.Equipment = s.Equipment.ToSaveData()
			}
			resp.Slots = append(resp.Slots, view)
		}

		respondJSON(w, http.StatusOK, resp)
	}
}
