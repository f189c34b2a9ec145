package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/denizak/lootledger/internal/models"
	"github.com/denizak/lootledger/internal/storage"
)

// CreateGroup persists the group and its memberships in one transaction,
// creating players by name where they do not exist yet. On any failure the
// transaction rolls back and no partial group state persists.
func (s *SQLiteStore) CreateGroup(ctx context.Context, name string, playerNames []string) (*models.Group, error) {
	group := &models.Group{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().Unix(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)",
		group.ID, group.Name, group.CreatedAt,
	)
	if isUniqueViolation(err) {
		return nil, storage.ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}

	for _, playerName := range playerNames {
		player, err := getOrCreatePlayer(ctx, tx, playerName)
		if err != nil {
			return nil, err
		}

		// INSERT OR IGNORE tolerates the same name listed twice; the
		// membership pair stays unique either way.
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_members (group_id, player_id) VALUES (?, ?)",
			group.ID, player.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert membership: %w", err)
		}
		group.Members = append(group.Members, *player)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return group, nil
}

// getOrCreatePlayer resolves a player by name inside the transaction,
// inserting a fresh row when the name is new.
func getOrCreatePlayer(ctx context.Context, tx *sql.Tx, name string) (*models.Player, error) {
	player := &models.Player{}
	err := tx.QueryRowContext(ctx,
		"SELECT id, name FROM players WHERE name = ?", name,
	).Scan(&player.ID, &player.Name)
	if err == nil {
		return player, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}

	player.ID = uuid.New().String()
	player.Name = name
	_, err = tx.ExecContext(ctx,
		"INSERT INTO players (id, name) VALUES (?, ?)",
		player.ID, player.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}
	return player, nil
}

// ListGroups returns group summaries with member and item counts, newest
// first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]models.GroupSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.created_at,
		       (SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id),
		       (SELECT COUNT(*) FROM items i WHERE i.group_id = g.id)
		FROM groups g
		ORDER BY g.created_at DESC, g.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.GroupSummary
	for rows.Next() {
		var g models.GroupSummary
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.MemberCount, &g.ItemCount); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// GetGroup retrieves a group with its members and items.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.groupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	items, err := s.groupItems(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Items = items

	return group, nil
}

// groupMembers returns a group's players, ordered by name.
func (s *SQLiteStore) groupMembers(ctx context.Context, groupID string) ([]models.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name
		FROM players p
		JOIN group_members gm ON p.id = gm.player_id
		WHERE gm.group_id = ?
		ORDER BY p.name ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// groupItems returns a group's items with seller names, newest first.
func (s *SQLiteStore) groupItems(ctx context.Context, groupID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.group_id, i.name, i.price, i.seller_id, p.name, i.status, i.created_at
		FROM items i
		LEFT JOIN players p ON i.seller_id = p.id
		WHERE i.group_id = ?
		ORDER BY i.created_at DESC, i.id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// DeleteGroup removes a group. Memberships, items and paid amounts go with
// it via the schema's ON DELETE CASCADE.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
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
