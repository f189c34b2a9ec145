package models

// Group represents a farm group: a named set of players who share the
// proceeds of the items found during their sessions.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the unique display name of the group.
	Name string `json:"name"`

	// Members is the list of players in this group, ordered by name.
	// A membership pair is unique; the same player never appears twice.
	Members []Player `json:"members"`

	// Items is the loot tracked for this group, newest first.
	Items []Item `json:"items"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// GroupSummary is the list-view projection of a group.
type GroupSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedAt   int64  `json:"created_at"`
	MemberCount int    `json:"member_count"`
	ItemCount   int    `json:"item_count"`
}
