// Package models defines the core domain models for the loot ledger.
//
// # Models
//
//   - Player: a person who takes part in farm groups
//   - Group: a named farm group owning members and items
//   - Item: a piece of loot tracked within a group
//   - PlayerEarning: a derived per-group earned/paid row
//   - PlayerReceivable: a derived cross-group receivable row
//   - User: an admin account for the access gate
//
// # Design Principles
//
// 1. **Derived values are never persisted**: shares, earnings and
// receivables are recomputed on every read from items and paid amounts.
// 2. **Avoid circular references**: relationships use ID strings, not
// pointers.
// 3. **Nullable columns map to Go zero values or pointers**: an item with
// no seller has an empty SellerID; an unpriced item has a nil Price.
package models
