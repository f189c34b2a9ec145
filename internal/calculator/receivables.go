package calculator

import (
	"math"
	"sort"

	"github.com/denizak/lootledger/internal/models"
)

// PaidTolerance absorbs the floating-point drift left over from share
// division when deciding whether a player is fully paid.
const PaidTolerance = 0.001

// Remaining returns a player's outstanding balance. Negative means
// over-payment and is surfaced as such, never clamped to zero.
func Remaining(earned, paid float64) float64 {
	return earned - paid
}

// FullyPaid reports whether paid covers earned within PaidTolerance.
func FullyPaid(earned, paid float64) bool {
	return math.Abs(earned-paid) < PaidTolerance
}

// GlobalReceivables computes the cross-group receivables view.
//
// Earnings only count from fully-sold groups (see fullySold) the player is
// a member of: a single pending or reserved item keeps the whole group out
// of the earnings tally. Paid totals, in contrast, sum the player's
// records across every group regardless of sold status. Each row lists the
// distinct group names that contributed to the player's earnings.
//
// Rows come back ordered by descending total earned; ties keep the
// by-name order of snap.Players.
func GlobalReceivables(snap *models.Snapshot) []models.PlayerReceivable {
	type soldGroup struct {
		name      string
		memberIDs []string
		members   map[string]bool
		items     []models.Item
	}

	var soldGroups []soldGroup
	for gi := range snap.Groups {
		g := &snap.Groups[gi]
		if !fullySold(g.Items) {
			continue
		}
		sg := soldGroup{
			name:      g.Name,
			memberIDs: make([]string, len(g.Members)),
			members:   make(map[string]bool, len(g.Members)),
			items:     g.Items,
		}
		for i, m := range g.Members {
			sg.memberIDs[i] = m.ID
			sg.members[m.ID] = true
		}
		soldGroups = append(soldGroups, sg)
	}

	receivables := make([]models.PlayerReceivable, 0, len(snap.Players))
	for _, player := range snap.Players {
		var earned float64
		var groups []string

		for _, sg := range soldGroups {
			if !sg.members[player.ID] {
				continue
			}
			var fromGroup float64
			for i := range sg.items {
				item := &sg.items[i]
				if !item.Sold() {
					continue
				}
				shares, bonus := ComputeShares(sg.memberIDs, *item.Price, item.SellerID)
				fromGroup += shares[player.ID]
				if item.SellerID == player.ID {
					fromGroup += bonus
				}
			}
			if fromGroup > 0 {
				earned += fromGroup
				groups = append(groups, sg.name)
			}
		}

		paid := snap.PaidTotals[player.ID]
		receivables = append(receivables, models.PlayerReceivable{
			PlayerID:    player.ID,
			Name:        player.Name,
			TotalEarned: earned,
			TotalPaid:   paid,
			Remaining:   Remaining(earned, paid),
			Groups:      groups,
		})
	}

	sort.SliceStable(receivables, func(i, j int) bool {
		return receivables[i].TotalEarned > receivables[j].TotalEarned
	})

	return receivables
}
