package api

import (
	"log/slog"
	"math"
	"net/http"
	"sort"

	"github.com/denizak/lootledger/internal/calculator"
	"github.com/denizak/lootledger/internal/models"
	"github.com/denizak/lootledger/internal/storage"
)

// GroupsHandler serves group CRUD, the per-group earnings view and paid
// amounts.
type GroupsHandler struct {
	Store storage.Store
}

type createGroupRequest struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

// Create makes a new group, creating unknown players by name.
func (h *GroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || len(req.Players) == 0 {
		respondError(w, http.StatusBadRequest, "group name and players are required")
		return
	}
	for _, name := range req.Players {
		if name == "" {
			respondError(w, http.StatusBadRequest, "player names must not be empty")
			return
		}
	}

	group, err := h.Store.CreateGroup(r.Context(), req.Name, req.Players)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members", len(group.Members))
	respondOK(w, envelope{"group": group})
}

// List returns all group summaries, newest first.
func (h *GroupsHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Store.ListGroups(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if groups == nil {
		groups = []models.GroupSummary{}
	}
	respondOK(w, envelope{"groups": groups})
}

// Get returns one group with members and items.
func (h *GroupsHandler) Get(w http.ResponseWriter, r *http.Request) {
	group, err := h.Store.GetGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondOK(w, envelope{"group": group})
}

// Delete removes a group; memberships, items and paid amounts cascade.
func (h *GroupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if err := h.Store.DeleteGroup(r.Context(), groupID); err != nil {
		respondStoreError(w, err)
		return
	}
	slog.Info("Group deleted", "group_id", groupID)
	respondOK(w, envelope{"message": "group deleted"})
}

// Earnings returns the per-player earned/paid/remaining rows for one
// group. Members come first in their by-name order; external sellers who
// sold into the group follow, also by name.
func (h *GroupsHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	group, err := h.Store.GetGroup(r.Context(), groupID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	paid, err := h.Store.GetPaidAmounts(r.Context(), groupID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	earnings := calculator.GroupEarnings(group.Members, group.Items)

	memberIDs := make(map[string]bool, len(group.Members))
	rows := make([]models.PlayerEarning, 0, len(earnings))
	for _, m := range group.Members {
		memberIDs[m.ID] = true
		rows = append(rows, earningRow(m.ID, m.Name, earnings[m.ID], paid[m.ID], true))
	}

	// External sellers only have a name via the item rows.
	sellerNames := make(map[string]string)
	for _, item := range group.Items {
		if item.SellerID != "" {
			sellerNames[item.SellerID] = item.SellerName
		}
	}
	var external []models.PlayerEarning
	for id, earned := range earnings {
		if memberIDs[id] {
			continue
		}
		external = append(external, earningRow(id, sellerNames[id], earned, paid[id], false))
	}
	sort.Slice(external, func(i, j int) bool { return external[i].Name < external[j].Name })
	rows = append(rows, external...)

	respondOK(w, envelope{"earnings": rows})
}

func earningRow(playerID, name string, earned, paid float64, member bool) models.PlayerEarning {
	return models.PlayerEarning{
		PlayerID:  playerID,
		Name:      name,
		Earned:    earned,
		Paid:      paid,
		Remaining: calculator.Remaining(earned, paid),
		FullyPaid: calculator.FullyPaid(earned, paid),
		Member:    member,
	}
}

// PaidAmounts returns the paid amount per player for one group. Players
// without a record are absent, meaning zero paid.
func (h *GroupsHandler) PaidAmounts(w http.ResponseWriter, r *http.Request) {
	amounts, err := h.Store.GetPaidAmounts(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondOK(w, envelope{"paid_amounts": amounts})
}

type paidAmountRequest struct {
	Amount *float64 `json:"amount"`
}

// UpdatePaidAmount upserts the amount paid to a player within a group.
func (h *GroupsHandler) UpdatePaidAmount(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	playerID := r.PathValue("playerID")

	var req paidAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount == nil {
		respondError(w, http.StatusBadRequest, "amount is required")
		return
	}
	amount := *req.Amount
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		respondError(w, http.StatusBadRequest, "amount must be a non-negative number")
		return
	}

	if err := h.Store.UpsertPaidAmount(r.Context(), groupID, playerID, amount); err != nil {
		respondStoreError(w, err)
		return
	}

	slog.Info("Paid amount updated", "group_id", groupID, "player_id", playerID, "amount", amount)
	respondOK(w, envelope{"message": "paid amount updated"})
}
