package api

import (
	"net/http"

	"github.com/denizak/lootledger/internal/calculator"
	"github.com/denizak/lootledger/internal/storage"
)

// ReportsHandler serves the ledger summary and the global receivables
// view.
type ReportsHandler struct {
	Store storage.Store
}

// Report returns ledger-wide counts and value totals.
func (h *ReportsHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.Store.Report(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondOK(w, envelope{"report": report})
}

// Receivables returns every player's cross-group earned/paid balance,
// ordered by descending earnings. Only fully-sold groups contribute
// earnings; paid totals count regardless.
func (h *ReportsHandler) Receivables(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.ReceivablesSnapshot(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondOK(w, envelope{"receivables": calculator.GlobalReceivables(snap)})
}
