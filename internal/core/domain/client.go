package domain

// Client represents a customer a user invoices.
type Client struct {
	ClientID string `json:"clientID"` // Primary Key (e.g., UUID)
	OwnerID  string `json:"ownerID"`  // FK -> users.user_id (NON-NULL)
	Name     string `json:"name"`
	Email    string `json:"email"`   // Nullable
	Phone    string `json:"phone"`   // Nullable
	Address  string `json:"address"` // Nullable
	AuditFields
}
