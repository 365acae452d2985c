package directory

import (
	"context"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by its record ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByUserID maps a client user account to its client record.
	// Returns shared.ErrNotFound when no record exists for the user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Client, error)

	// FindAll finds all clients, ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// Delete removes a client record
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByOwner finds all companies owned by a freelancer
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Company, error)

	// FindDefaultByOwner finds the owner's default company
	FindDefaultByOwner(ctx context.Context, ownerID uuid.UUID) (*Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error

	// SetDefault clears the default flag on every company of the owner and
	// sets it on the given company, in a single transaction
	SetDefault(ctx context.Context, id uuid.UUID) error

	// Delete removes a company
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository provides read access to account profiles
type UserRepository interface {
	// FindByID finds a user profile by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}
