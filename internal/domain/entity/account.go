package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered identity in the store. Role is assigned at creation
// and never changes afterwards.
type Account struct {
	ID              uuid.UUID    // The Global Unique Identifier (GUID) for the account.
	Email           string       // Login identifier, unique across all accounts.
	Name            string       // The account holder's display name.
	Role            Role         // Exactly one of admin, seller or customer.
	PasswordHash    string       // Bcrypt hash of the password.
	DefaultShipping *Address     // Default shipping snapshot, nil until the first order sets it.
	DefaultBilling  *BillingInfo // Default billing snapshot, nil until provided.
	CreatedAt       time.Time    // Timestamp of when this account was created.
	UpdatedAt       time.Time    // Timestamp of the last modification to this account.
}
