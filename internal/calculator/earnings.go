package calculator

import "github.com/denizak/lootledger/internal/models"

// GroupEarnings folds a group's sold items through ComputeShares and
// returns each player's cumulative earnings, keyed by player ID.
//
// Every member is present in the result, at zero if nothing was sold. A
// seller who is not a member still earns their bonus and shows up as an
// extra entry. Items that are not sold, or sold without a price, are
// skipped. Order of processing does not matter; every sold item is folded
// exactly once.
func GroupEarnings(members []models.Player, items []models.Item) map[string]float64 {
	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.ID
	}

	earnings := make(map[string]float64, len(members))
	for _, id := range memberIDs {
		earnings[id] = 0
	}

	for i := range items {
		item := &items[i]
		if !item.Sold() {
			continue
		}
		shares, bonus := ComputeShares(memberIDs, *item.Price, item.SellerID)
		for id, share := range shares {
			earnings[id] += share
		}
		if bonus > 0 && item.SellerID != "" {
			earnings[item.SellerID] += bonus
		}
	}

	return earnings
}

// fullySold reports whether a group qualifies for the global receivables
// view: it must have at least one item and every item must be sold. An
// unpriced sold item keeps the group qualified but contributes nothing.
func fullySold(items []models.Item) bool {
	if len(items) == 0 {
		return false
	}
	for i := range items {
		if items[i].Status != models.StatusSold {
			return false
		}
	}
	return true
}
