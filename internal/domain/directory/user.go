package directory

import (
	"github.com/facturio/backend/internal/domain/shared"
)

// User is the read-only profile of an account (freelancer or client person).
// Account management and authentication live in a separate service; this
// context only needs the contact block for document rendering and list views.
type User struct {
	shared.BaseEntity
	FullName string
	Email    string
	Phone    string
	Address  string
	Role     string
}
