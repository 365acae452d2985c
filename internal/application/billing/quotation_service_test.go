package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app "github.com/facturio/backend/internal/application/billing"
	"github.com/facturio/backend/internal/domain/billing"
	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/shared"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Quotation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByFreelancer(ctx context.Context, freelancerID uuid.UUID, filter shared.Filter) ([]billing.Quotation, error) {
	args := m.Called(ctx, freelancerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]billing.Quotation, error) {
	args := m.Called(ctx, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Quotation), args.Error(1)
}

func (m *MockQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	args := m.Called(ctx, quotation)
	return args.Error(0)
}

func (m *MockQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuotationRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByFreelancer(ctx context.Context, freelancerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, freelancerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByQuotation(ctx context.Context, quotationID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, quotationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindUnpaidDueBefore(ctx context.Context, deadline time.Time) ([]billing.Invoice, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

func (m *MockClientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*directory.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *directory.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]directory.Company, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindDefaultByOwner(ctx context.Context, ownerID uuid.UUID) (*directory.Company, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *directory.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Helpers
// =============================================================================

type billingFixture struct {
	freelancerID uuid.UUID
	clientUserID uuid.UUID
	client       *directory.Client
	company      *directory.Company
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()

	freelancerID := uuid.New()
	clientUserID := uuid.New()

	client, err := directory.NewClient(clientUserID, "Martin & Fils", "contact@martin.fr", "", "")
	require.NoError(t, err)

	company, err := directory.NewCompany(freelancerID, "Dupont SARL", "", "", "", "", true)
	require.NoError(t, err)

	return &billingFixture{
		freelancerID: freelancerID,
		clientUserID: clientUserID,
		client:       client,
		company:      company,
	}
}

func (f *billingFixture) expectResolution(clientRepo *MockClientRepository, companyRepo *MockCompanyRepository) {
	clientRepo.On("FindByUserID", mock.Anything, f.clientUserID).Return(f.client, nil)
	companyRepo.On("FindDefaultByOwner", mock.Anything, f.freelancerID).Return(f.company, nil)
}

// =============================================================================
// Tests
// =============================================================================

func TestQuotationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("computes totals from exact decimals", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		f.expectResolution(clientRepo, companyRepo)
		quotationRepo.On("Save", ctx, mock.AnythingOfType("*billing.Quotation")).Return(nil)

		resp, err := service.Create(ctx, f.freelancerID, app.CreateQuotationRequest{
			ClientUserID: f.clientUserID,
			Items: []app.LineItemInput{
				{Description: "Consulting", Quantity: "10", UnitPrice: "50", TaxRate: "20"},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "500", resp.Totals.Subtotal)
		assert.Equal(t, "100", resp.Totals.TaxAmount)
		assert.Equal(t, "600", resp.Totals.Total)
		assert.Equal(t, f.client.ID.String(), resp.ClientID)
	})

	t.Run("skips blank-description rows", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		f.expectResolution(clientRepo, companyRepo)
		quotationRepo.On("Save", ctx, mock.AnythingOfType("*billing.Quotation")).Return(nil)

		resp, err := service.Create(ctx, f.freelancerID, app.CreateQuotationRequest{
			ClientUserID: f.clientUserID,
			Items: []app.LineItemInput{
				{Description: "A", Quantity: "1", UnitPrice: "20", TaxRate: "0"},
				{Description: "", Quantity: "5", UnitPrice: "10", TaxRate: "0"},
				{Description: "   ", Quantity: "2", UnitPrice: "30", TaxRate: "0"},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "A", resp.Items[0].Description)
		assert.Equal(t, "20", resp.Totals.Total)
	})

	t.Run("unmapped client user writes nothing", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		clientRepo.On("FindByUserID", mock.Anything, f.clientUserID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, f.freelancerID, app.CreateQuotationRequest{
			ClientUserID: f.clientUserID,
			Items: []app.LineItemInput{
				{Description: "Consulting", Quantity: "1", UnitPrice: "50"},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CLIENT_NOT_MAPPED", domainErr.Code)
		quotationRepo.AssertNotCalled(t, "Save")
	})

	t.Run("empty status defaults to Sent", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		f.expectResolution(clientRepo, companyRepo)
		quotationRepo.On("Save", ctx, mock.AnythingOfType("*billing.Quotation")).Return(nil)

		resp, err := service.Create(ctx, f.freelancerID, app.CreateQuotationRequest{
			ClientUserID: f.clientUserID,
		})

		require.NoError(t, err)
		assert.Equal(t, string(billing.QuotationStatusSent), resp.Status)
	})

	t.Run("explicit company bypasses the default lookup", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		clientRepo.On("FindByUserID", mock.Anything, f.clientUserID).Return(f.client, nil)
		companyRepo.On("FindByID", mock.Anything, f.company.ID).Return(f.company, nil)
		quotationRepo.On("Save", ctx, mock.AnythingOfType("*billing.Quotation")).Return(nil)

		resp, err := service.Create(ctx, f.freelancerID, app.CreateQuotationRequest{
			ClientUserID: f.clientUserID,
			CompanyID:    &f.company.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, f.company.ID.String(), resp.CompanyID)
		companyRepo.AssertNotCalled(t, "FindDefaultByOwner")
	})

	t.Run("missing default company fails", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		clientRepo.On("FindByUserID", mock.Anything, f.clientUserID).Return(f.client, nil)
		companyRepo.On("FindDefaultByOwner", mock.Anything, f.freelancerID).Return(nil, shared.ErrNoCompany)

		_, err := service.Create(ctx, f.freelancerID, app.CreateQuotationRequest{
			ClientUserID: f.clientUserID,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_DEFAULT_COMPANY", domainErr.Code)
	})

	t.Run("rejects malformed decimal input", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		f.expectResolution(clientRepo, companyRepo)

		_, err := service.Create(ctx, f.freelancerID, app.CreateQuotationRequest{
			ClientUserID: f.clientUserID,
			Items: []app.LineItemInput{
				{Description: "Consulting", Quantity: "ten", UnitPrice: "50"},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		quotationRepo.AssertNotCalled(t, "Save")
	})
}

func TestQuotationService_ListForClient(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the user id to its client record", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, new(MockCompanyRepository), nil)

		quotation, err := billing.NewQuotation(f.freelancerID, f.client.ID, f.company.ID, billing.QuotationStatusSent, "")
		require.NoError(t, err)

		clientRepo.On("FindByUserID", mock.Anything, f.clientUserID).Return(f.client, nil)
		quotationRepo.On("FindByClient", ctx, f.client.ID, mock.AnythingOfType("shared.Filter")).
			Return([]billing.Quotation{*quotation}, nil)

		items, err := service.ListForClient(ctx, f.clientUserID, app.ListRequest{})

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, quotation.ID.String(), items[0].ID)
	})

	t.Run("unmapped user id fails without querying quotations", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, new(MockCompanyRepository), nil)

		clientRepo.On("FindByUserID", mock.Anything, f.clientUserID).Return(nil, shared.ErrNotFound)

		_, err := service.ListForClient(ctx, f.clientUserID, app.ListRequest{})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CLIENT_NOT_MAPPED", domainErr.Code)
		quotationRepo.AssertNotCalled(t, "FindByClient")
	})
}

func TestQuotationService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moves quotation to approved", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		service := app.NewQuotationService(quotationRepo, new(MockClientRepository), new(MockCompanyRepository), nil)

		quotation, err := billing.NewQuotation(f.freelancerID, f.client.ID, f.company.ID, billing.QuotationStatusSent, "")
		require.NoError(t, err)

		quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)
		quotationRepo.On("Save", ctx, quotation).Return(nil)

		resp, err := service.ChangeStatus(ctx, quotation.ID, app.ChangeStatusRequest{
			Status: string(billing.QuotationStatusApproved),
		})

		require.NoError(t, err)
		assert.Equal(t, string(billing.QuotationStatusApproved), resp.Status)
	})

	t.Run("terminal statuses remain revisable", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		service := app.NewQuotationService(quotationRepo, new(MockClientRepository), new(MockCompanyRepository), nil)

		quotation, err := billing.NewQuotation(f.freelancerID, f.client.ID, f.company.ID, billing.QuotationStatusRejected, "")
		require.NoError(t, err)

		quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)
		quotationRepo.On("Save", ctx, quotation).Return(nil)

		resp, err := service.ChangeStatus(ctx, quotation.ID, app.ChangeStatusRequest{
			Status: string(billing.QuotationStatusDraft),
		})

		require.NoError(t, err)
		assert.Equal(t, string(billing.QuotationStatusDraft), resp.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		service := app.NewQuotationService(quotationRepo, new(MockClientRepository), new(MockCompanyRepository), nil)

		quotation, err := billing.NewQuotation(f.freelancerID, f.client.ID, f.company.ID, billing.QuotationStatusSent, "")
		require.NoError(t, err)

		quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)

		_, err = service.ChangeStatus(ctx, quotation.ID, app.ChangeStatusRequest{
			Status: "Archived",
		})

		require.Error(t, err)
		quotationRepo.AssertNotCalled(t, "Save")
	})
}

func TestQuotationService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces items wholesale", func(t *testing.T) {
		f := newBillingFixture(t)
		quotationRepo := new(MockQuotationRepository)
		clientRepo := new(MockClientRepository)
		companyRepo := new(MockCompanyRepository)
		service := app.NewQuotationService(quotationRepo, clientRepo, companyRepo, nil)

		quotation, err := billing.NewQuotation(f.freelancerID, f.client.ID, f.company.ID, billing.QuotationStatusSent, "")
		require.NoError(t, err)
		_, err = quotation.AddItem("Old line", decimalFromString(t, "1"), moneyFromString(t, "100"), decimalFromString(t, "0"))
		require.NoError(t, err)

		f.expectResolution(clientRepo, companyRepo)
		quotationRepo.On("FindByID", ctx, quotation.ID).Return(quotation, nil)
		quotationRepo.On("Save", ctx, quotation).Return(nil)

		resp, err := service.Update(ctx, quotation.ID, app.UpdateQuotationRequest{
			ClientUserID: f.clientUserID,
			Items: []app.LineItemInput{
				{Description: "New line", Quantity: "2", UnitPrice: "75", TaxRate: "20"},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "New line", resp.Items[0].Description)
		assert.Equal(t, "150", resp.Totals.Subtotal)
	})
}

func TestQuotationService_List(t *testing.T) {
	ctx := context.Background()
	f := newBillingFixture(t)

	quotationRepo := new(MockQuotationRepository)
	service := app.NewQuotationService(quotationRepo, new(MockClientRepository), new(MockCompanyRepository), nil)

	quotation, err := billing.NewQuotation(f.freelancerID, f.client.ID, f.company.ID, billing.QuotationStatusSent, "")
	require.NoError(t, err)

	quotationRepo.On("FindByFreelancer", ctx, f.freelancerID, mock.AnythingOfType("shared.Filter")).
		Return([]billing.Quotation{*quotation}, nil)
	quotationRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	items, total, err := service.List(ctx, f.freelancerID, app.ListRequest{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
}

func TestQuotationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing quotation", func(t *testing.T) {
		quotationRepo := new(MockQuotationRepository)
		service := app.NewQuotationService(quotationRepo, new(MockClientRepository), new(MockCompanyRepository), nil)

		id := uuid.New()
		quotationRepo.On("ExistsByID", ctx, id).Return(true, nil)
		quotationRepo.On("Delete", ctx, id).Return(nil)

		err := service.Delete(ctx, id)
		require.NoError(t, err)
		quotationRepo.AssertExpectations(t)
	})

	t.Run("fails for unknown quotation", func(t *testing.T) {
		quotationRepo := new(MockQuotationRepository)
		service := app.NewQuotationService(quotationRepo, new(MockClientRepository), new(MockCompanyRepository), nil)

		id := uuid.New()
		quotationRepo.On("ExistsByID", ctx, id).Return(false, nil)

		err := service.Delete(ctx, id)
		require.Error(t, err)
		quotationRepo.AssertNotCalled(t, "Delete")
	})
}
