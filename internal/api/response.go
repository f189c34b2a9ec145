// Package api exposes the loot ledger as a JSON HTTP API: public reads
// over groups, players and receivables, admin-gated writes, and the
// derived earnings views computed by the calculator package.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/denizak/lootledger/internal/storage"
)

// envelope is the response shape: every reply carries a success flag,
// failures add a message, successes add their payload fields.
type envelope map[string]any

// respond writes a JSON body with the given status code.
func respond(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondOK writes a success envelope with the given payload fields.
func respondOK(w http.ResponseWriter, payload envelope) {
	if payload == nil {
		payload = envelope{}
	}
	payload["success"] = true
	respond(w, http.StatusOK, payload)
}

// respondError writes a failure envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, envelope{"success": false, "message": message})
}

// respondStoreError maps storage errors onto response codes. Anything
// unclassified is a storage failure and surfaces as a generic 500; the
// store has already rolled back any in-flight transaction.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrNameTaken):
		respondError(w, http.StatusConflict, "name already taken")
	case errors.Is(err, storage.ErrPlayerInGroup):
		respondError(w, http.StatusConflict, "player still belongs to a group; remove them from their groups first")
	default:
		slog.Error("Storage failure", "error", err)
		respondError(w, http.StatusInternalServerError, "storage failure")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
