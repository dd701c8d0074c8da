package models

// Member represents one person sharing expenses in a ledger.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name. Unique within a ledger and used by expenses
	// to reference the member.
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64 `json:"created_at"`
}
