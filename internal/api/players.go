package api

import (
	"log/slog"
	"net/http"

	"github.com/denizak/lootledger/internal/models"
	"github.com/denizak/lootledger/internal/storage"
)

// PlayersHandler serves the global player list.
type PlayersHandler struct {
	Store storage.Store
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

// Create adds a global player.
func (h *PlayersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "player name is required")
		return
	}

	player, err := h.Store.CreatePlayer(r.Context(), req.Name)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Player created", "player_id", player.ID, "name", player.Name)
	respondOK(w, envelope{"player": player})
}

// List returns every player, ordered by name.
func (h *PlayersHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.Store.ListPlayers(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if players == nil {
		players = []models.Player{}
	}
	respondOK(w, envelope{"players": players})
}

// Delete removes a player. Rejected while the player is still a group
// member; otherwise their seller references go null and their paid
// amounts cascade away.
func (h *PlayersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("id")
	if err := h.Store.DeletePlayer(r.Context(), playerID); err != nil {
		respondStoreError(w, err)
		return
	}
	slog.Info("Player deleted", "player_id", playerID)
	respondOK(w, envelope{"message": "player deleted"})
}
