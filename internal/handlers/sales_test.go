package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/ammerola/resell-pos/internal/handlers"
	"github.com/ammerola/resell-pos/test/helpers"
	"github.com/ammerola/resell-pos/test/mocks"
)

func decodeError(t *testing.T, body []byte) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func saleBody(t *testing.T, req handlers.SaleRequest) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func validSaleRequest() handlers.SaleRequest {
	return handlers.SaleRequest{
		CustomerName:  "Ana Souza",
		PaymentMethod: "cash",
		Lines: []handlers.LineRequest{
			{VariantID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

func TestSaleHandler_CreateSale(t *testing.T) {
	tests := []struct {
		name           string
		body           func(*testing.T) *bytes.Reader
		setupMocks     func(*mocks.MockSaleService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "creates_sale",
			body: func(t *testing.T) *bytes.Reader { return saleBody(t, validSaleRequest()) },
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sale *domain.Sale) error {
						assert.Equal(t, domain.VariantID(1), sale.Lines[0].VariantID)
						assert.Equal(t, 2, sale.Lines[0].Quantity)
						assert.Equal(t, domain.PaymentCash, sale.PaymentMethod)
						sale.ID = uuid.New()
						sale.Total = decimal.NewFromInt(20)
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var sale domain.Sale
				require.NoError(t, json.Unmarshal(body, &sale))
				assert.NotEqual(t, uuid.Nil, sale.ID)
				assert.True(t, decimal.NewFromInt(20).Equal(sale.Total))
			},
		},
		{
			name:           "invalid_json",
			body:           func(*testing.T) *bytes.Reader { return bytes.NewReader([]byte("{")) },
			setupMocks:     func(*mocks.MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Invalid request body", decodeError(t, body).Error)
			},
		},
		{
			name: "missing_lines",
			body: func(t *testing.T) *bytes.Reader {
				req := validSaleRequest()
				req.Lines = nil
				return saleBody(t, req)
			},
			setupMocks:     func(*mocks.MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "lines are required", decodeError(t, body).Error)
			},
		},
		{
			name: "too_many_lines",
			body: func(t *testing.T) *bytes.Reader {
				req := validSaleRequest()
				req.Lines = make([]handlers.LineRequest, 0, domain.MaxLines+1)
				for i := 1; i <= domain.MaxLines+1; i++ {
					req.Lines = append(req.Lines, handlers.LineRequest{
						VariantID: int64(i), Quantity: 1, UnitPrice: decimal.NewFromInt(10),
					})
				}
				return saleBody(t, req)
			},
			setupMocks:     func(*mocks.MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "at most 500 lines are allowed", decodeError(t, body).Error)
			},
		},
		{
			name: "insufficient_stock_lists_violations",
			body: func(t *testing.T) *bytes.Reader { return saleBody(t, validSaleRequest()) },
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to create sale: %w", &domain.InsufficientStockError{
						Violations: []domain.InsufficientStock{{VariantID: 1, Available: 1, Requested: 2}},
					}))
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body []byte) {
				resp := decodeError(t, body)
				assert.Equal(t, "Insufficient stock", resp.Error)
				require.Len(t, resp.Violations, 1)
				assert.Equal(t, domain.InsufficientStock{VariantID: 1, Available: 1, Requested: 2}, resp.Violations[0])
			},
		},
		{
			name: "domain_validation_error",
			body: func(t *testing.T) *bytes.Reader { return saleBody(t, validSaleRequest()) },
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("validation failed: %w: installment_count out of range", domain.ErrInvalidSale))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "store_unavailable",
			body: func(t *testing.T) *bytes.Reader { return saleBody(t, validSaleRequest()) },
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to create sale: %w", domain.ErrStoreUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "inventory_inconsistent",
			body: func(t *testing.T) *bytes.Reader { return saleBody(t, validSaleRequest()) },
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to create sale: %w", &domain.InventoryInconsistentError{
						Pending: domain.DeltaMap{1: 2},
						Cause:   fmt.Errorf("%w: timeout", domain.ErrStoreUnavailable),
					}))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				assert.Contains(t, decodeError(t, body).Error, "inconsistent")
			},
		},
		{
			name: "unexpected_error",
			body: func(t *testing.T) *bytes.Reader { return saleBody(t, validSaleRequest()) },
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().
					CreateSale(gomock.Any(), gomock.Any()).
					Return(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body []byte) {
				assert.Equal(t, "Failed to create sale", decodeError(t, body).Error)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockSaleService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewSaleHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", tt.body(t))
			w := httptest.NewRecorder()

			handler.CreateSale(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestSaleHandler_GetSale(t *testing.T) {
	sale := helpers.CreateTestSale(func(s *domain.Sale) { s.ID = uuid.New() })

	tests := []struct {
		name           string
		id             string
		setupMocks     func(*mocks.MockSaleService)
		expectedStatus int
	}{
		{
			name: "returns_sale",
			id:   sale.ID.String(),
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().GetSale(gomock.Any(), sale.ID).Return(sale, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_uuid",
			id:             "not-a-uuid",
			setupMocks:     func(*mocks.MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not_found",
			id:   sale.ID.String(),
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().GetSale(gomock.Any(), sale.ID).
					Return(nil, fmt.Errorf("%w: %s", domain.ErrSaleNotFound, sale.ID))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockSaleService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewSaleHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.GetSale(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSaleHandler_ListSales(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(*mocks.MockSaleService)
		expectedStatus int
	}{
		{
			name:  "passes_filters",
			query: "?page=2&limit=500&order=asc&search=ana&from=2026-01-01&to=2026-01-31T23:59:59Z",
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().
					ListSales(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p ports.ListParams) (*ports.ListResult[*domain.Sale], error) {
						assert.Equal(t, 2, p.Page)
						assert.Equal(t, 100, p.PageSize)
						assert.Equal(t, "asc", p.SortOrder)
						assert.Equal(t, "ana", p.Search)
						require.NotNil(t, p.From)
						require.NotNil(t, p.To)
						assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *p.From)
						return ports.NewListResult[*domain.Sale](nil, 0, p), nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_date",
			query:          "?from=yesterday",
			setupMocks:     func(*mocks.MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "service_error",
			query: "",
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().ListSales(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockSaleService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewSaleHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/sales"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ListSales(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSaleHandler_UpdateSale(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockSaleService(ctrl)
	mockService.EXPECT().
		UpdateSale(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, sale *domain.Sale) error {
			sale.ID = id
			return nil
		})

	handler := handlers.NewSaleHandler(mockService, helpers.TestLogger())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sales/"+id.String(), saleBody(t, validSaleRequest()))
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()

	handler.UpdateSale(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var sale domain.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.Equal(t, id, sale.ID)
}

func TestSaleHandler_DeleteSale(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "deletes", expectedStatus: http.StatusNoContent},
		{name: "not_found", err: domain.ErrSaleNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockSaleService(ctrl)
			mockService.EXPECT().DeleteSale(gomock.Any(), id).Return(tt.err)

			handler := handlers.NewSaleHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/sales/"+id.String(), nil)
			req.SetPathValue("id", id.String())
			w := httptest.NewRecorder()

			handler.DeleteSale(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestSaleHandler_PayInstallment(t *testing.T) {
	id := uuid.New()
	paidAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		number         string
		body           string
		setupMocks     func(*mocks.MockSaleService)
		expectedStatus int
	}{
		{
			name:   "pays_now_without_body",
			number: "1",
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().PayInstallment(gomock.Any(), id, 1, time.Time{}).Return(&domain.Sale{ID: id}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "pays_at_given_time",
			number: "2",
			body:   `{"paid_at":"2026-03-10T12:00:00Z"}`,
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().PayInstallment(gomock.Any(), id, 2, paidAt).Return(&domain.Sale{ID: id}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_number",
			number:         "zero",
			setupMocks:     func(*mocks.MockSaleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "already_paid",
			number: "1",
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().PayInstallment(gomock.Any(), id, 1, gomock.Any()).Return(nil, domain.ErrInstallmentAlreadyPaid)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "unknown_installment",
			number: "9",
			setupMocks: func(m *mocks.MockSaleService) {
				m.EXPECT().PayInstallment(gomock.Any(), id, 9, gomock.Any()).Return(nil, domain.ErrInstallmentNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mocks.NewMockSaleService(ctrl)
			tt.setupMocks(mockService)

			handler := handlers.NewSaleHandler(mockService, helpers.TestLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/"+id.String()+"/installments/"+tt.number+"/pay",
				bytes.NewReader([]byte(tt.body)))
			req.SetPathValue("id", id.String())
			req.SetPathValue("number", tt.number)
			w := httptest.NewRecorder()

			handler.PayInstallment(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
