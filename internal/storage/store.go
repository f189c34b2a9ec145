// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/denizak/lootledger/internal/models"
)

// Sentinel errors the API layer maps onto response codes.
var (
	// ErrNotFound means the referenced group, player or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNameTaken means a unique display name is already in use.
	ErrNameTaken = errors.New("name already taken")

	// ErrPlayerInGroup means a player cannot be deleted while still a
	// member of at least one group.
	ErrPlayerInGroup = errors.New("player still belongs to a group")
)

// Store defines the interface for ledger storage operations. This
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the API layer.
//
// The implementation guarantees referential cascades: deleting a group
// removes its memberships, items and paid amounts; deleting a player nulls
// out seller references on items and removes the player's paid amounts.
type Store interface {
	// CreateGroup persists a group and its memberships in one
	// transaction, creating players that do not exist yet by name.
	// Nothing persists if any step fails.
	CreateGroup(ctx context.Context, name string, playerNames []string) (*models.Group, error)

	// ListGroups returns group summaries, newest first.
	ListGroups(ctx context.Context) ([]models.GroupSummary, error)

	// GetGroup returns a group with members (by name) and items (newest
	// first). Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// DeleteGroup removes a group and cascades its memberships, items
	// and paid amounts.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreatePlayer adds a global player with a unique name.
	CreatePlayer(ctx context.Context, name string) (*models.Player, error)

	// ListPlayers returns every player, ordered by name.
	ListPlayers(ctx context.Context) ([]models.Player, error)

	// DeletePlayer removes a player. Returns ErrPlayerInGroup while the
	// player is still a member of any group.
	DeletePlayer(ctx context.Context, playerID string) error

	// SaveItem inserts the item when item.ID is empty, otherwise updates
	// name, price, seller and status in place.
	SaveItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes an item by ID.
	DeleteItem(ctx context.Context, itemID string) error

	// GetPaidAmounts returns the paid amount per player for one group.
	// Players without a record are absent, meaning zero paid.
	GetPaidAmounts(ctx context.Context, groupID string) (map[string]float64, error)

	// UpsertPaidAmount records the amount paid to a player within a
	// group. At most one record per (group, player) pair ever exists.
	UpsertPaidAmount(ctx context.Context, groupID, playerID string, amount float64) error

	// ReceivablesSnapshot bulk-reads everything the global receivables
	// aggregation needs.
	ReceivablesSnapshot(ctx context.Context) (*models.Snapshot, error)

	// Report returns ledger-wide counts and value totals.
	Report(ctx context.Context) (*models.Report, error)

	// CreateUser adds an account for the access gate.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns the user or nil when absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
