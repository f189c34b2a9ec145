package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/denizak/lootledger/internal/models"
	"github.com/denizak/lootledger/internal/storage"
)

// CreatePlayer adds a global player with a unique name.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, name string) (*models.Player, error) {
	player := &models.Player{
		ID:   uuid.New().String(),
		Name: name,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO players (id, name) VALUES (?, ?)",
		player.ID, player.Name,
	)
	if isUniqueViolation(err) {
		return nil, storage.ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}

	return player, nil
}

// ListPlayers returns every player, ordered by name.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM players ORDER BY name ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}

// DeletePlayer removes a player once they belong to no group. Seller
// references on items go NULL and paid amounts cascade away via the
// schema's foreign-key actions.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, playerID string) error {
	var memberships int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM group_members WHERE player_id = ?", playerID,
	).Scan(&memberships)
	if err != nil {
		return fmt.Errorf("failed to check memberships: %w", err)
	}
	if memberships > 0 {
		return storage.ErrPlayerInGroup
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
