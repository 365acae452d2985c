package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/facturio/backend/internal/domain/directory"
)

// CreateClientRequest is the request to register a client record
type CreateClientRequest struct {
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	Name    string    `json:"name" binding:"required"`
	Email   string    `json:"email" binding:"omitempty,email"`
	Address string    `json:"address"`
	TaxID   string    `json:"tax_id"`
}

// UpdateClientRequest is the request to update a client record
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
}

// ClientResponse is the API representation of a client record
type ClientResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	TaxID          string    `json:"tax_id"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCompanyRequest is the request to register an issuing company
type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}

// UpdateCompanyRequest is the request to update a company
type UpdateCompanyRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}

// CompanyResponse is the API representation of a company
type CompanyResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo,omitempty"`
	Address   string    `json:"address"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a client aggregate to its API representation
func ToClientResponse(c *directory.Client) *ClientResponse {
	return &ClientResponse{
		ID:             c.ID.String(),
		UserID:         c.UserID.String(),
		Name:           c.Name,
		Email:          c.Email,
		Address:        c.Address,
		TaxID:          c.TaxID,
		ProfilePicture: c.ProfilePicture,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToCompanyResponse converts a company aggregate to its API representation
func ToCompanyResponse(c *directory.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        c.ID.String(),
		OwnerID:   c.OwnerID.String(),
		Name:      c.Name,
		Logo:      c.Logo,
		Address:   c.Address,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// UserResponse is the API representation of an account profile
type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Role     string `json:"role"`
}

// ToUserResponse converts a user profile to its API representation
func ToUserResponse(u *directory.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID.String(),
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Address:  u.Address,
		Role:     u.Role,
	}
}
