package directory

import (
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is a billable counterparty record. It is owned by the user account
// the client logs in with (UserID); billing documents reference the client
// record, never the user directly, so incoming user ids must be mapped
// through FindByUserID before use.
type Client struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID // account of the client person
	Name           string
	Email          string
	Address        string
	TaxID          string
	ProfilePicture string
}

// NewClient creates a new client record for a user account
func NewClient(userID uuid.UUID, name, email, address, taxID string) (*Client, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Name:              name,
		Email:             email,
		Address:           address,
		TaxID:             taxID,
	}, nil
}

// UpdateDetails replaces the client's contact information
func (c *Client) UpdateDetails(name, email, address, taxID string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}

	c.Name = name
	c.Email = email
	c.Address = address
	c.TaxID = taxID
	c.UpdatedAt = time.Now()

	return nil
}

// SetProfilePicture stores the uploaded picture filename
func (c *Client) SetProfilePicture(filename string) {
	c.ProfilePicture = filename
	c.UpdatedAt = time.Now()
}
