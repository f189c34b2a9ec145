package models

// Player represents a person who farms loot, inside or outside a group.
// Players are created explicitly or implicitly when a group is created
// with a name that does not exist yet.
type Player struct {
	// ID is the unique identifier for the player (UUID format).
	ID string `json:"id"`

	// Name is the unique display name of the player.
	Name string `json:"name"`
}
