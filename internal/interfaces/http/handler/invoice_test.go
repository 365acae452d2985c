package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	billingapp "github.com/facturio/backend/internal/application/billing"
	"github.com/facturio/backend/internal/domain/billing"
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/domain/shared/valueobject"
	"github.com/facturio/backend/internal/interfaces/http/dto"
)

// MockInvoiceRepository implements billing.InvoiceRepository for testing
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

var _ billing.InvoiceRepository = (*MockInvoiceRepository)(nil)

// Test helpers

func setupInvoiceTestRouter() (*gin.Engine, *billingTestMocks, *InvoiceHandler) {
	gin.SetMode(gin.TestMode)

	mocks := &billingTestMocks{
		quotations: new(MockQuotationRepository),
		invoices:   new(MockInvoiceRepository),
		clients:    new(MockClientRepository),
		companies:  new(MockCompanyRepository),
	}
	invoiceService := billingapp.NewInvoiceService(mocks.invoices, mocks.quotations, mocks.clients, mocks.companies, nil)
	handler := NewInvoiceHandler(invoiceService)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setJWTContext(c, testFreelancerID)
		c.Next()
	})

	return router, mocks, handler
}

func createTestInvoice(freelancerID uuid.UUID, quotationID *uuid.UUID) *billing.Invoice {
	invoice, _ := billing.NewInvoice(freelancerID, uuid.New(), uuid.New(), quotationID, billing.InvoiceStatusUnpaid, nil)
	_, _ = invoice.AddItem("Consulting", decimal.NewFromInt(10), valueobject.NewMoneyEUR(decimal.NewFromInt(50)), decimal.NewFromInt(20))
	return invoice
}

// Tests

func TestInvoiceHandler_Create(t *testing.T) {
	t.Run("should create invoice copying quotation items", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.POST("/invoices", handler.Create)

		clientUserID := uuid.New()
		client := createTestClientRecord(clientUserID)
		company := createTestCompany(testFreelancerID, true)
		quotation := createTestQuotation(testFreelancerID)

		mocks.clients.On("FindByUserID", mock.Anything, clientUserID).Return(client, nil)
		mocks.companies.On("FindDefaultByOwner", mock.Anything, testFreelancerID).Return(company, nil)
		mocks.quotations.On("FindByID", mock.Anything, quotation.ID).Return(quotation, nil)

		var saved *billing.Invoice
		mocks.invoices.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*billing.Invoice)
			}).
			Return(nil)

		reqBody := billingapp.CreateInvoiceRequest{
			QuotationID:        &quotation.ID,
			CopyQuotationItems: true,
			ClientUserID:       clientUserID,
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		require.NotNil(t, saved)
		require.NotNil(t, saved.QuotationID)
		assert.Equal(t, quotation.ID, *saved.QuotationID)
		require.Len(t, saved.Items, 1)
		assert.Equal(t, quotation.Items[0].Description, saved.Items[0].Description)
		assert.True(t, saved.Totals().Total.Equal(quotation.Totals().Total))

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should return 404 when the referenced quotation does not exist", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.POST("/invoices", handler.Create)

		clientUserID := uuid.New()
		client := createTestClientRecord(clientUserID)
		company := createTestCompany(testFreelancerID, true)
		quotationID := uuid.New()

		mocks.clients.On("FindByUserID", mock.Anything, clientUserID).Return(client, nil)
		mocks.companies.On("FindDefaultByOwner", mock.Anything, testFreelancerID).Return(company, nil)
		mocks.quotations.On("FindByID", mock.Anything, quotationID).Return(nil, shared.ErrNotFound)

		reqBody := billingapp.CreateInvoiceRequest{
			QuotationID:  &quotationID,
			ClientUserID: clientUserID,
		}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mocks.invoices.AssertNotCalled(t, "Save")
	})

	t.Run("should return 422 when the client user has no client record", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.POST("/invoices", handler.Create)

		clientUserID := uuid.New()
		mocks.clients.On("FindByUserID", mock.Anything, clientUserID).Return(nil, shared.ErrNotFound)

		reqBody := billingapp.CreateInvoiceRequest{ClientUserID: clientUserID}
		body, _ := json.Marshal(reqBody)

		req, _ := http.NewRequest(http.MethodPost, "/invoices", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		require.NotNil(t, response.Error)
		assert.Equal(t, dto.ErrCodeClientNotMapped, response.Error.Code)
	})
}

func TestInvoiceHandler_ChangeStatus(t *testing.T) {
	t.Run("should stamp paid time when marking paid", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.PATCH("/invoices/:id/status", handler.ChangeStatus)

		invoice := createTestInvoice(testFreelancerID, nil)
		mocks.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
		mocks.invoices.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

		body, _ := json.Marshal(billingapp.ChangeStatusRequest{Status: "Paid"})

		req, _ := http.NewRequest(http.MethodPatch, "/invoices/"+invoice.ID.String()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, billing.InvoiceStatusPaid, invoice.Status)
		assert.NotNil(t, invoice.PaidAt)

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should clear paid time when leaving paid", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.PATCH("/invoices/:id/status", handler.ChangeStatus)

		invoice := createTestInvoice(testFreelancerID, nil)
		require.NoError(t, invoice.ChangeStatus(billing.InvoiceStatusPaid))
		require.NotNil(t, invoice.PaidAt)

		mocks.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
		mocks.invoices.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

		body, _ := json.Marshal(billingapp.ChangeStatusRequest{Status: "Unpaid"})

		req, _ := http.NewRequest(http.MethodPatch, "/invoices/"+invoice.ID.String()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, billing.InvoiceStatusUnpaid, invoice.Status)
		assert.Nil(t, invoice.PaidAt)
	})

	t.Run("should return 404 for unknown invoice", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.PATCH("/invoices/:id/status", handler.ChangeStatus)

		invoiceID := uuid.New()
		mocks.invoices.On("FindByID", mock.Anything, invoiceID).Return(nil, shared.ErrNotFound)

		body, _ := json.Marshal(billingapp.ChangeStatusRequest{Status: "Paid"})

		req, _ := http.NewRequest(http.MethodPatch, "/invoices/"+invoiceID.String()+"/status", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInvoiceHandler_List(t *testing.T) {
	t.Run("should list invoices with pagination meta", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.GET("/invoices", handler.List)

		invoices := []billing.Invoice{*createTestInvoice(testFreelancerID, nil)}
		mocks.invoices.On("FindByFreelancer", mock.Anything, testFreelancerID, mock.Anything).Return(invoices, nil)
		mocks.invoices.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		req, _ := http.NewRequest(http.MethodGet, "/invoices", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.Response
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		require.NotNil(t, response.Meta)
		assert.Equal(t, int64(1), response.Meta.Total)

		mocks.invoices.AssertExpectations(t)
	})
}

func TestInvoiceHandler_ListForClient(t *testing.T) {
	t.Run("should list invoices addressed to the client's user id", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.GET("/invoices/by-client/:user_id", handler.ListForClient)

		clientUserID := uuid.New()
		client := createTestClientRecord(clientUserID)
		invoices := []billing.Invoice{*createTestInvoice(testFreelancerID, nil)}

		mocks.clients.On("FindByUserID", mock.Anything, clientUserID).Return(client, nil)
		mocks.invoices.On("FindByClient", mock.Anything, client.ID, mock.Anything).Return(invoices, nil)

		req, _ := http.NewRequest(http.MethodGet, "/invoices/by-client/"+clientUserID.String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.True(t, response["success"].(bool))
		assert.Len(t, response["data"].([]interface{}), 1)

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should return 422 when the user has no client record", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.GET("/invoices/by-client/:user_id", handler.ListForClient)

		clientUserID := uuid.New()
		mocks.clients.On("FindByUserID", mock.Anything, clientUserID).Return(nil, shared.ErrNotFound)

		req, _ := http.NewRequest(http.MethodGet, "/invoices/by-client/"+clientUserID.String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mocks.invoices.AssertNotCalled(t, "FindByClient")
	})
}

func TestInvoiceHandler_MarkOverdue(t *testing.T) {
	t.Run("should mark past-due unpaid invoices overdue", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.POST("/invoices/mark-overdue", handler.MarkOverdue)

		pastDue := time.Now().Add(-48 * time.Hour)
		first := createTestInvoice(testFreelancerID, nil)
		first.DueDate = &pastDue
		second := createTestInvoice(testFreelancerID, nil)
		second.DueDate = &pastDue

		mocks.invoices.On("FindUnpaidDueBefore", mock.Anything, mock.Anything).
			Return([]billing.Invoice{*first, *second}, nil)
		mocks.invoices.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil).Times(2)

		req, _ := http.NewRequest(http.MethodPost, "/invoices/mark-overdue", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(2), data["count"])

		mocks.invoices.AssertExpectations(t)
	})

	t.Run("should report zero when nothing is due", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.POST("/invoices/mark-overdue", handler.MarkOverdue)

		mocks.invoices.On("FindUnpaidDueBefore", mock.Anything, mock.Anything).
			Return([]billing.Invoice{}, nil)

		req, _ := http.NewRequest(http.MethodPost, "/invoices/mark-overdue", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, float64(0), data["count"])

		mocks.invoices.AssertNotCalled(t, "Save")
	})
}

func TestInvoiceHandler_Delete(t *testing.T) {
	t.Run("should delete invoice", func(t *testing.T) {
		router, mocks, handler := setupInvoiceTestRouter()
		router.DELETE("/invoices/:id", handler.Delete)

		invoice := createTestInvoice(testFreelancerID, nil)
		mocks.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
		mocks.invoices.On("Delete", mock.Anything, invoice.ID).Return(nil)

		req, _ := http.NewRequest(http.MethodDelete, "/invoices/"+invoice.ID.String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mocks.invoices.AssertExpectations(t)
	})
}
