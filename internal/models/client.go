package models

// Client represents a row in the clients table.
type Client struct {
	ClientID string `db:"client_id"`
	OwnerID  string `db:"owner_id"`
	Name     string `db:"name"`
	Email    string `db:"email"`   // Nullable
	Phone    string `db:"phone"`   // Nullable
	Address  string `db:"address"` // Nullable
	AuditFields
}
