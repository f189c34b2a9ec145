package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/denizak/lootledger/internal/models"
	"github.com/denizak/lootledger/internal/storage"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item row in the column order of the item queries:
// id, group_id, name, price, seller_id, seller_name, status, created_at.
func scanItem(row rowScanner) (*models.Item, error) {
	item := &models.Item{}
	var price sql.NullFloat64
	var sellerID, sellerName sql.NullString

	err := row.Scan(&item.ID, &item.GroupID, &item.Name, &price, &sellerID, &sellerName, &item.Status, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	if price.Valid {
		v := price.Float64
		item.Price = &v
	}
	if sellerID.Valid {
		item.SellerID = sellerID.String
	}
	if sellerName.Valid {
		item.SellerName = sellerName.String
	}

	return item, nil
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY constraint
// failure, meaning a referenced group or player row does not exist.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// SaveItem inserts the item when its ID is empty, otherwise updates name,
// price, seller and status in place. Inserts referencing a missing group
// or seller surface storage.ErrNotFound.
func (s *SQLiteStore) SaveItem(ctx context.Context, item *models.Item) error {
	var price sql.NullFloat64
	if item.Price != nil {
		price = sql.NullFloat64{Float64: *item.Price, Valid: true}
	}
	var sellerID sql.NullString
	if item.SellerID != "" {
		sellerID = sql.NullString{String: item.SellerID, Valid: true}
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
		item.CreatedAt = time.Now().Unix()

		_, err := s.db.ExecContext(ctx,
			"INSERT INTO items (id, group_id, name, price, seller_id, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			item.ID, item.GroupID, item.Name, price, sellerID, item.Status, item.CreatedAt,
		)
		if isForeignKeyViolation(err) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET name = ?, price = ?, seller_id = ?, status = ? WHERE id = ? AND group_id = ?",
		item.Name, price, sellerID, item.Status, item.ID, item.GroupID,
	)
	if isForeignKeyViolation(err) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteItem removes an item by ID.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
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
