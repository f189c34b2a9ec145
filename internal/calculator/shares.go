// Package calculator implements the share and earnings math for the loot
// ledger. Everything in this package is pure: functions read already
// fetched data, allocate fresh results and keep no state, so they are safe
// to call from concurrent read requests.
package calculator

import "math"

// ComputeShares splits an item's sale price among the group members,
// carving out an extra half share for the seller when one is recorded.
//
// With a seller the group is treated as n + 0.5 equivalent units: the
// seller takes half a unit off the top as a bonus and the rest is split
// equally among the members. The seller may or may not be a member; a
// member who sold gets their equal share here plus the bonus, which the
// caller adds to their total separately.
//
// A non-positive, NaN or infinite price distributes nothing: every member
// maps to zero and the bonus is zero. A group with no members distributes
// nothing either, even when a seller is given.
func ComputeShares(memberIDs []string, price float64, sellerID string) (map[string]float64, float64) {
	shares := make(map[string]float64, len(memberIDs))
	for _, id := range memberIDs {
		shares[id] = 0
	}

	n := len(memberIDs)
	if n == 0 || price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return shares, 0
	}

	var bonus float64
	remaining := price
	if sellerID != "" {
		unit := price / (float64(n) + 0.5)
		bonus = 0.5 * unit
		remaining = price - bonus
	}

	perMember := remaining / float64(n)
	for _, id := range memberIDs {
		shares[id] = perMember
	}

	return shares, bonus
}
