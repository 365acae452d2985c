package directory

import (
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Company is an issuing entity a freelancer bills under. A freelancer may
// own several companies but at most one carries the default flag; the
// repository enforces the clear-then-set swap in one transaction.
type Company struct {
	shared.BaseAggregateRoot
	OwnerID   uuid.UUID // freelancer user who owns the company
	Name      string
	Logo      string
	Address   string
	TaxID     string
	Email     string
	Phone     string
	IsDefault bool
}

// NewCompany creates a new company owned by a freelancer
func NewCompany(ownerID uuid.UUID, name, address, taxID, email, phone string, isDefault bool) (*Company, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              name,
		Address:           address,
		TaxID:             taxID,
		Email:             email,
		Phone:             phone,
		IsDefault:         isDefault,
	}, nil
}

// UpdateDetails replaces the company's information
func (c *Company) UpdateDetails(name, address, taxID, email, phone string, isDefault bool) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}

	c.Name = name
	c.Address = address
	c.TaxID = taxID
	c.Email = email
	c.Phone = phone
	c.IsDefault = isDefault
	c.UpdatedAt = time.Now()

	return nil
}

// SetLogo stores the uploaded logo filename
func (c *Company) SetLogo(filename string) {
	c.Logo = filename
	c.UpdatedAt = time.Now()
}

// MarkDefault flags the company as the owner's default issuer
func (c *Company) MarkDefault() {
	c.IsDefault = true
	c.UpdatedAt = time.Now()
}

// UnmarkDefault removes the default flag
func (c *Company) UnmarkDefault() {
	c.IsDefault = false
	c.UpdatedAt = time.Now()
}
