package handler

import (
	"net/http"

	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/naming"
)

// ItemInfoResponse describes one catalog item
type ItemInfoResponse struct {
	ItemID      string `json:"item_id"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Tier        int    `json:"tier"`
	Rarity      string `json:"rarity"`
	StackLimit  int    `json:"stack_limit"`
}

// HandleGetItemInfo resolves an item by id or display alias and returns its
// static definition
func HandleGetItemInfo(cat catalog.Catalog, resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		name := requireQueryParam(r, w, "item")
		if name == "" {
			return
		}

		itemID := name
		if resolved, ok := resolver.ResolvePublicName(name); ok {
			itemID = resolved
		}

		def, err := cat.GetDefinition(r.Context(), itemID)
		if err != nil {
			log.Debug("Item lookup failed", "item", name, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, ItemInfoResponse{
			ItemID:      def.ID,
			DisplayName: resolver.DisplayName(def.ID, def.ItemRarity()),
			Category:    string(def.Category()),
			Tier:        def.Tier,
			Rarity:      string(def.ItemRarity()),
			StackLimit:  def.StackLimit(),
		})
	}
}

// HandleReloadAliases re-reads the alias configuration from disk
func HandleReloadAliases(resolver naming.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := resolver.Reload(); err != nil {
			log.Error("Failed to reload alias config", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}

		log.Info("Alias configuration reloaded")
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAliasesReloadedSuccess})
	}
}
