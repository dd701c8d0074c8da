package models

// Session is a ledger hosted by the server. Sessions live only as long as
// the server process.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string `json:"id"`

	// Title is an optional label chosen by the client (e.g., "Ski trip").
	Title string `json:"title"`

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64 `json:"created_at"`
}
