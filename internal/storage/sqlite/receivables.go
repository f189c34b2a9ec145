package sqlite

import (
	"context"
	"fmt"

	"github.com/denizak/lootledger/internal/models"
)

// ReceivablesSnapshot bulk-reads every group with its members and items,
// every player, and each player's paid total across all groups. Four
// queries instead of one per group keeps the global aggregation a single
// round of reads.
func (s *SQLiteStore) ReceivablesSnapshot(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		PaidTotals: make(map[string]float64),
	}

	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	snap.Players = players

	groupRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM groups ORDER BY created_at DESC, name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer groupRows.Close()

	groupIdx := make(map[string]int)
	for groupRows.Next() {
		var g models.Group
		if err := groupRows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groupIdx[g.ID] = len(snap.Groups)
		snap.Groups = append(snap.Groups, g)
	}
	if err := groupRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	memberRows, err := s.db.QueryContext(ctx, `
		SELECT gm.group_id, p.id, p.name
		FROM group_members gm
		JOIN players p ON p.id = gm.player_id
		ORDER BY p.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var groupID string
		var p models.Player
		if err := memberRows.Scan(&groupID, &p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		if idx, ok := groupIdx[groupID]; ok {
			snap.Groups[idx].Members = append(snap.Groups[idx].Members, p)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.group_id, i.name, i.price, i.seller_id, p.name, i.status, i.created_at
		FROM items i
		LEFT JOIN players p ON i.seller_id = p.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		if idx, ok := groupIdx[item.GroupID]; ok {
			snap.Groups[idx].Items = append(snap.Groups[idx].Items, *item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	paidRows, err := s.db.QueryContext(ctx,
		"SELECT player_id, SUM(amount) FROM paid_amounts GROUP BY player_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid amounts: %w", err)
	}
	defer paidRows.Close()

	for paidRows.Next() {
		var playerID string
		var total float64
		if err := paidRows.Scan(&playerID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan paid total: %w", err)
		}
		snap.PaidTotals[playerID] = total
	}
	if err := paidRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paid totals: %w", err)
	}

	return snap, nil
}

// Report returns ledger-wide counts and value totals.
func (s *SQLiteStore) Report(ctx context.Context) (*models.Report, error) {
	report := &models.Report{}
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM groups),
			(SELECT COUNT(*) FROM items),
			(SELECT COALESCE(SUM(price), 0) FROM items WHERE status = 'sold'),
			(SELECT COALESCE(SUM(price), 0) FROM items WHERE status != 'sold'),
			(SELECT COALESCE(SUM(price), 0) FROM items)`,
	).Scan(
		&report.GroupCount,
		&report.ItemCount,
		&report.TotalSoldValue,
		&report.TotalPendingValue,
		&report.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return report, nil
}
