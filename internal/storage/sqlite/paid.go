package sqlite

import (
	"context"
	"fmt"

	"github.com/denizak/lootledger/internal/storage"
)

// GetPaidAmounts returns the paid amount per player for one group.
// Players without a record are simply absent, meaning zero paid.
func (s *SQLiteStore) GetPaidAmounts(ctx context.Context, groupID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player_id, amount FROM paid_amounts WHERE group_id = ?",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get paid amounts: %w", err)
	}
	defer rows.Close()

	amounts := make(map[string]float64)
	for rows.Next() {
		var playerID string
		var amount float64
		if err := rows.Scan(&playerID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan paid amount: %w", err)
		}
		amounts[playerID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paid amounts: %w", err)
	}

	return amounts, nil
}

// UpsertPaidAmount records the amount paid to a player within a group.
// The UNIQUE(group_id, player_id) constraint plus ON CONFLICT DO UPDATE
// keeps this a single atomic statement, so a concurrent insert and update
// of the same pair can never produce duplicate rows.
func (s *SQLiteStore) UpsertPaidAmount(ctx context.Context, groupID, playerID string, amount float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO paid_amounts (group_id, player_id, amount) VALUES (?, ?, ?)
		ON CONFLICT(group_id, player_id) DO UPDATE SET amount = excluded.amount`,
		groupID, playerID, amount,
	)
	if isForeignKeyViolation(err) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to upsert paid amount: %w", err)
	}
	return nil
}
