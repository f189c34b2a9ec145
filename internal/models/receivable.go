package models

// PlayerEarning is one row of a group's earnings view: what a player has
// earned from the group's sold items versus what they have been paid.
// Recomputed on every read, never persisted.
type PlayerEarning struct {
	PlayerID  string  `json:"player_id"`
	Name      string  `json:"name"`
	Earned    float64 `json:"earned"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
	FullyPaid bool    `json:"fully_paid"`
	// Member is false for an external seller who sold into the group
	// without being part of it.
	Member bool `json:"member"`
}

// PlayerReceivable is one row of the global receivables view: a player's
// cumulative earnings from fully-sold groups they belong to, against the
// total paid to them across every group.
type PlayerReceivable struct {
	PlayerID    string   `json:"player_id"`
	Name        string   `json:"name"`
	TotalEarned float64  `json:"total_earned"`
	TotalPaid   float64  `json:"total_paid"`
	Remaining   float64  `json:"remaining"`
	Groups      []string `json:"groups"`
}

// Report summarizes the whole ledger.
type Report struct {
	GroupCount        int     `json:"group_count"`
	ItemCount         int     `json:"item_count"`
	TotalSoldValue    float64 `json:"total_sold_value"`
	TotalPendingValue float64 `json:"total_pending_value"`
	TotalValue        float64 `json:"total_value"`
}
