package billing

import (
	"context"
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QuotationRepository defines the interface for quotation persistence
type QuotationRepository interface {
	// FindByID finds a quotation with its items, ordered by position
	FindByID(ctx context.Context, id uuid.UUID) (*Quotation, error)

	// FindAll finds all quotations with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Quotation, error)

	// FindByFreelancer finds quotations issued by a freelancer
	FindByFreelancer(ctx context.Context, freelancerID uuid.UUID, filter shared.Filter) ([]Quotation, error)

	// FindByClient finds quotations addressed to a client record
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Quotation, error)

	// Save creates or updates a quotation together with its items in a
	// single transaction; a failed item insert rolls back the header too
	Save(ctx context.Context, quotation *Quotation) error

	// Delete removes a quotation and cascades to its items
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks whether a quotation exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Count counts quotations with optional filters
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice with its items, ordered by position
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindAll finds all invoices with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// FindByFreelancer finds invoices issued by a freelancer
	FindByFreelancer(ctx context.Context, freelancerID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByClient finds invoices addressed to a client record
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByQuotation finds all invoices derived from a quotation
	FindByQuotation(ctx context.Context, quotationID uuid.UUID) ([]Invoice, error)

	// FindUnpaidDueBefore finds unpaid invoices whose due date is before
	// the given instant; used by the overdue sweep
	FindUnpaidDueBefore(ctx context.Context, deadline time.Time) ([]Invoice, error)

	// Save creates or updates an invoice together with its items in a
	// single transaction; a failed item insert rolls back the header too
	Save(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice and cascades to its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts invoices with optional filters
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
