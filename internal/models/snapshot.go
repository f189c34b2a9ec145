package models

// Snapshot is the bulk read backing the global receivables view: every
// group with its members and items, every player, and each player's paid
// total summed across all groups.
type Snapshot struct {
	// Groups holds every group with Members and Items populated.
	Groups []Group

	// Players holds every player, ordered by name.
	Players []Player

	// PaidTotals maps player ID to the sum of the player's paid-amount
	// records across all groups. Players with no records are absent.
	PaidTotals map[string]float64
}
