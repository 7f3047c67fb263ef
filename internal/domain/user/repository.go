package user

import "context"

// Repository defines the interface for user data operations
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by internal ID
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetBySID retrieves a user by external SID (Stripe-style ID)
	GetBySID(ctx context.Context, sid string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByProviderIdentity retrieves a user by provider name and provider user ID
	GetByProviderIdentity(ctx context.Context, provider, providerID string) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// Delete deletes a user by internal ID
	Delete(ctx context.Context, id uint) error
}
