package models

import (
	"github.com/facturio/backend/internal/domain/directory"
	"github.com/google/uuid"
)

// ClientModel is the persistence model for the Client aggregate root.
type ClientModel struct {
	AggregateModel
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name           string    `gorm:"type:varchar(200);not null"`
	Email          string    `gorm:"type:varchar(255)"`
	Address        string    `gorm:"type:varchar(500)"`
	TaxID          string    `gorm:"type:varchar(50)"`
	ProfilePicture string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *directory.Client {
	return &directory.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		Name:              m.Name,
		Email:             m.Email,
		Address:           m.Address,
		TaxID:             m.TaxID,
		ProfilePicture:    m.ProfilePicture,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *directory.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.UserID = c.UserID
	m.Name = c.Name
	m.Email = c.Email
	m.Address = c.Address
	m.TaxID = c.TaxID
	m.ProfilePicture = c.ProfilePicture
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *directory.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// CompanyModel is the persistence model for the Company aggregate root.
type CompanyModel struct {
	AggregateModel
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Logo      string    `gorm:"type:varchar(255)"`
	Address   string    `gorm:"type:varchar(500)"`
	TaxID     string    `gorm:"type:varchar(50)"`
	Email     string    `gorm:"type:varchar(255)"`
	Phone     string    `gorm:"type:varchar(50)"`
	IsDefault bool      `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *directory.Company {
	return &directory.Company{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OwnerID:           m.OwnerID,
		Name:              m.Name,
		Logo:              m.Logo,
		Address:           m.Address,
		TaxID:             m.TaxID,
		Email:             m.Email,
		Phone:             m.Phone,
		IsDefault:         m.IsDefault,
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *directory.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.OwnerID = c.OwnerID
	m.Name = c.Name
	m.Logo = c.Logo
	m.Address = c.Address
	m.TaxID = c.TaxID
	m.Email = c.Email
	m.Phone = c.Phone
	m.IsDefault = c.IsDefault
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *directory.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// UserModel is the read-only persistence model for account profiles.
// The table is owned by the authentication service; this context never
// writes to it.
type UserModel struct {
	BaseModel
	FullName string `gorm:"type:varchar(200);not null"`
	Email    string `gorm:"type:varchar(255);not null"`
	Phone    string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:varchar(500)"`
	Role     string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *directory.User {
	return &directory.User{
		BaseEntity: m.BaseModel.ToDomain(),
		FullName:   m.FullName,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		Role:       m.Role,
	}
}
