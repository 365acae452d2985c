package billing

import (
	"testing"
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	due := time.Now().AddDate(0, 1, 0)
	invoice, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), nil, "", &due)
	require.NoError(t, err)
	return invoice
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusUnpaid, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatus("Sent"), false},
		{InvoiceStatus("paid"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestNewInvoice(t *testing.T) {
	t.Run("defaults empty status to Unpaid", func(t *testing.T) {
		invoice := createTestInvoice(t)
		assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
		assert.Nil(t, invoice.PaidAt)
	})

	t.Run("records quotation reference", func(t *testing.T) {
		quotationID := uuid.New()
		invoice, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), &quotationID, InvoiceStatusUnpaid, nil)
		require.NoError(t, err)
		require.NotNil(t, invoice.QuotationID)
		assert.Equal(t, quotationID, *invoice.QuotationID)
	})

	t.Run("created as paid stamps paid at", func(t *testing.T) {
		invoice, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), nil, InvoiceStatusPaid, nil)
		require.NoError(t, err)
		assert.NotNil(t, invoice.PaidAt)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), nil, "Settled", nil)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("emits created event", func(t *testing.T) {
		invoice := createTestInvoice(t)
		events := invoice.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceCreated, events[0].EventType())
	})
}

func TestInvoice_ChangeStatus(t *testing.T) {
	t.Run("paid sets paid at", func(t *testing.T) {
		invoice := createTestInvoice(t)

		require.NoError(t, invoice.ChangeStatus(InvoiceStatusPaid))

		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		require.NotNil(t, invoice.PaidAt)
		assert.WithinDuration(t, time.Now(), *invoice.PaidAt, time.Second)
	})

	t.Run("leaving paid clears paid at", func(t *testing.T) {
		invoice := createTestInvoice(t)
		require.NoError(t, invoice.ChangeStatus(InvoiceStatusPaid))
		require.NotNil(t, invoice.PaidAt)

		require.NoError(t, invoice.ChangeStatus(InvoiceStatusUnpaid))

		assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
		assert.Nil(t, invoice.PaidAt)
	})

	t.Run("overdue never carries paid at", func(t *testing.T) {
		invoice := createTestInvoice(t)
		require.NoError(t, invoice.ChangeStatus(InvoiceStatusOverdue))
		assert.Nil(t, invoice.PaidAt)
	})

	t.Run("rejects invalid status without mutation", func(t *testing.T) {
		invoice := createTestInvoice(t)
		before := invoice.Status

		err := invoice.ChangeStatus("Cancelled")
		require.Error(t, err)
		assert.Equal(t, before, invoice.Status)
		assert.Nil(t, invoice.PaidAt)
	})

	t.Run("emits status changed event with paid at", func(t *testing.T) {
		invoice := createTestInvoice(t)
		invoice.ClearDomainEvents()

		require.NoError(t, invoice.ChangeStatus(InvoiceStatusPaid))

		events := invoice.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(*InvoiceStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, InvoiceStatusUnpaid, changed.PreviousStatus)
		assert.Equal(t, InvoiceStatusPaid, changed.NewStatus)
		assert.NotNil(t, changed.PaidAt)
	})

	t.Run("same-status change emits no event", func(t *testing.T) {
		invoice := createTestInvoice(t)
		invoice.ClearDomainEvents()

		require.NoError(t, invoice.ChangeStatus(InvoiceStatusUnpaid))
		assert.Empty(t, invoice.GetDomainEvents())
	})
}

func TestInvoice_UpdateDetails(t *testing.T) {
	invoice := createTestInvoice(t)
	quotationID := uuid.New()
	newClient := uuid.New()
	newCompany := uuid.New()
	due := time.Now().AddDate(0, 2, 0)

	t.Run("replaces header and keeps paid invariant", func(t *testing.T) {
		err := invoice.UpdateDetails(&quotationID, newClient, newCompany, InvoiceStatusPaid, &due)
		require.NoError(t, err)
		assert.Equal(t, newClient, invoice.ClientID)
		assert.Equal(t, newCompany, invoice.CompanyID)
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
		assert.NotNil(t, invoice.PaidAt)

		err = invoice.UpdateDetails(&quotationID, newClient, newCompany, InvoiceStatusOverdue, &due)
		require.NoError(t, err)
		assert.Nil(t, invoice.PaidAt)
	})

	t.Run("rejects invalid updates", func(t *testing.T) {
		assert.Error(t, invoice.UpdateDetails(nil, uuid.Nil, newCompany, InvoiceStatusUnpaid, nil))
		assert.Error(t, invoice.UpdateDetails(nil, newClient, uuid.Nil, InvoiceStatusUnpaid, nil))
		assert.Error(t, invoice.UpdateDetails(nil, newClient, newCompany, "Late", nil))
	})
}

func TestInvoice_MarkOverdue(t *testing.T) {
	now := time.Now()

	t.Run("flips unpaid invoice past due date", func(t *testing.T) {
		past := now.AddDate(0, 0, -3)
		invoice, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), nil, InvoiceStatusUnpaid, &past)
		require.NoError(t, err)

		assert.True(t, invoice.MarkOverdue(now))
		assert.Equal(t, InvoiceStatusOverdue, invoice.Status)
	})

	t.Run("ignores invoices not yet due", func(t *testing.T) {
		future := now.AddDate(0, 0, 3)
		invoice, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), nil, InvoiceStatusUnpaid, &future)
		require.NoError(t, err)

		assert.False(t, invoice.MarkOverdue(now))
		assert.Equal(t, InvoiceStatusUnpaid, invoice.Status)
	})

	t.Run("ignores paid invoices", func(t *testing.T) {
		past := now.AddDate(0, 0, -3)
		invoice, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), nil, InvoiceStatusPaid, &past)
		require.NoError(t, err)

		assert.False(t, invoice.MarkOverdue(now))
		assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	})

	t.Run("ignores invoices without due date", func(t *testing.T) {
		invoice, err := NewInvoice(uuid.New(), uuid.New(), uuid.New(), nil, InvoiceStatusUnpaid, nil)
		require.NoError(t, err)

		assert.False(t, invoice.MarkOverdue(now))
	})
}

func TestInvoice_Items(t *testing.T) {
	t.Run("totals reflect added items", func(t *testing.T) {
		invoice := createTestInvoice(t)

		_, err := invoice.AddItem("Consulting", decimal.NewFromInt(10), valueobject.NewMoneyEURFromFloat(50), decimal.NewFromInt(20))
		require.NoError(t, err)

		totals := invoice.Totals()
		assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(500)))
		assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, totals.Total.Equal(decimal.NewFromInt(600)))
		assert.Equal(t, 1, invoice.ItemCount())
	})

	t.Run("total money is in EUR", func(t *testing.T) {
		invoice := createTestInvoice(t)
		_, err := invoice.AddItem("Workshop", decimal.NewFromInt(2), valueobject.NewMoneyEURFromFloat(10), decimal.Zero)
		require.NoError(t, err)

		total := invoice.GetTotalMoney()
		assert.Equal(t, valueobject.EUR, total.Currency())
		assert.Equal(t, 20.0, total.Float64())
	})
}
