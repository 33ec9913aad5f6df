//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ammerola/resell-pos/internal/adapters/db"
	redis_a "github.com/ammerola/resell-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/services"
	"github.com/ammerola/resell-pos/internal/handlers"
	"github.com/ammerola/resell-pos/internal/handlers/middleware"
	"github.com/ammerola/resell-pos/test/helpers"
)

type SaleE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *SaleE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + handlers.APIPrefix
}

func (s *SaleE2ESuite) TearDownSuite() {
	s.server.Close()
}

func (s *SaleE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *SaleE2ESuite) TestSaleLifecycle() {
	helpers.SeedStock(s.T(), s.testDB.PgxPool, map[domain.VariantID]int{1: 10, 2: 3})

	// 1. Sell 4 of variant 1 and 1 of variant 2
	resp := s.makeRequest(http.MethodPost, "/sales", map[string]any{
		"payment_method": "cash",
		"lines": []map[string]any{
			{"variant_id": 1, "quantity": 4, "unit_price": "10.00"},
			{"variant_id": 2, "quantity": 1, "unit_price": "25.50"},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created domain.Sale
	s.decodeResponse(resp, &created)
	s.Equal("65.5", created.Total.String())
	s.assertStock(map[domain.VariantID]int{1: 6, 2: 2})

	// 2. Change the sale: variant 1 drops to 2, variant 2 is removed
	resp = s.makeRequest(http.MethodPut, fmt.Sprintf("/sales/%s", created.ID), map[string]any{
		"payment_method": "cash",
		"lines": []map[string]any{
			{"variant_id": 1, "quantity": 2, "unit_price": "10.00"},
		},
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	s.assertStock(map[domain.VariantID]int{1: 8, 2: 3})

	// 3. The stored sale reflects the edit
	resp = s.makeRequest(http.MethodGet, fmt.Sprintf("/sales/%s", created.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var fetched domain.Sale
	s.decodeResponse(resp, &fetched)
	s.Require().Len(fetched.Lines, 1)
	s.Equal(2, fetched.Lines[0].Quantity)

	// 4. Deleting returns the units
	resp = s.makeRequest(http.MethodDelete, fmt.Sprintf("/sales/%s", created.ID), nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
	s.assertStock(map[domain.VariantID]int{1: 10, 2: 3})

	resp = s.makeRequest(http.MethodGet, fmt.Sprintf("/sales/%s", created.ID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func (s *SaleE2ESuite) TestInsufficientStockReportsEveryVariant() {
	helpers.SeedStock(s.T(), s.testDB.PgxPool, map[domain.VariantID]int{1: 1, 2: 0})

	resp := s.makeRequest(http.MethodPost, "/sales", map[string]any{
		"payment_method": "card",
		"lines": []map[string]any{
			{"variant_id": 1, "quantity": 2, "unit_price": "5"},
			{"variant_id": 2, "quantity": 1, "unit_price": "5"},
		},
	})
	s.Require().Equal(http.StatusConflict, resp.StatusCode)

	var body handlers.ErrorResponse
	s.decodeResponse(resp, &body)
	s.Equal([]domain.InsufficientStock{
		{VariantID: 1, Available: 1, Requested: 2},
		{VariantID: 2, Available: 0, Requested: 1},
	}, body.Violations)
	s.assertStock(map[domain.VariantID]int{1: 1, 2: 0})
}

func (s *SaleE2ESuite) TestCreditSaleInstallments() {
	helpers.SeedStock(s.T(), s.testDB.PgxPool, map[domain.VariantID]int{7: 5})

	resp := s.makeRequest(http.MethodPost, "/sales", map[string]any{
		"payment_method":    "credit",
		"installment_count": 3,
		"customer_name":     "Ana",
		"lines": []map[string]any{
			{"variant_id": 7, "quantity": 1, "unit_price": "100.00"},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var sale domain.Sale
	s.decodeResponse(resp, &sale)
	s.Require().Len(sale.Installments, 3)
	s.Equal("33.34", sale.Installments[2].Amount.String())

	resp = s.makeRequest(http.MethodPost, fmt.Sprintf("/sales/%s/installments/1/pay", sale.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var paid domain.Sale
	s.decodeResponse(resp, &paid)
	s.NotNil(paid.Installments[0].PaidAt)

	resp = s.makeRequest(http.MethodPost, fmt.Sprintf("/sales/%s/installments/1/pay", sale.ID), nil)
	s.Equal(http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func (s *SaleE2ESuite) TestPurchaseRestocks() {
	resp := s.makeRequest(http.MethodPost, "/purchases", map[string]any{
		"supplier": "Wholesale Co",
		"lines": []map[string]any{
			{"variant_id": 3, "quantity": 12, "unit_price": "2.50"},
		},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	s.assertStock(map[domain.VariantID]int{3: 12})
}

func (s *SaleE2ESuite) TestConcurrentSales() {
	helpers.SeedStock(s.T(), s.testDB.PgxPool, map[domain.VariantID]int{9: 100})

	var wg sync.WaitGroup
	statuses := make(chan int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.makeRequest(http.MethodPost, "/sales", map[string]any{
				"payment_method": "cash",
				"lines": []map[string]any{
					{"variant_id": 9, "quantity": 1, "unit_price": "1"},
				},
			})
			resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		s.Equal(http.StatusCreated, status)
	}
}

func (s *SaleE2ESuite) TestHealthCheck() {
	resp, err := s.client.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var status handlers.HealthStatus
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))
	s.Equal("healthy", status.Status)
}

func (s *SaleE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()
	cfg := helpers.LoadTestConfig()
	cfg.Stock.Backend = "postgres"

	database := s.testDB.Database
	cache := redis_a.NewCache(s.testRedis.Client, time.Minute, logger)
	stock := db.NewStockStore(database, logger)
	reconciler := services.NewStockLedgerReconciler(stock, logger)

	routes := handlers.Routes{
		Sales: handlers.NewSaleHandler(
			services.NewSaleService(db.NewSaleRepository(database, logger), reconciler, nil, cache, logger), logger),
		Purchases: handlers.NewPurchaseHandler(
			services.NewPurchaseService(db.NewPurchaseRepository(database, logger), reconciler, nil, cache, logger), logger),
		Stock:  handlers.NewStockHandler(services.NewStockService(stock, cache, time.Minute, logger), logger),
		Health: handlers.NewHealthHandler(database, cache, stock, nil, cfg, logger),
	}

	mux := http.NewServeMux()
	routes.Register(mux)

	return httptest.NewServer(middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
	))
}

func (s *SaleE2ESuite) assertStock(want map[domain.VariantID]int) {
	s.T().Helper()

	query := ""
	for id := range want {
		if query != "" {
			query += ","
		}
		query += id.String()
	}

	resp := s.makeRequest(http.MethodGet, "/stock?ids="+query, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var levels []domain.StockLevel
	s.decodeResponse(resp, &levels)

	got := make(map[domain.VariantID]int, len(levels))
	for _, level := range levels {
		got[level.VariantID] = level.Quantity
	}
	s.Equal(want, got)
}

func (s *SaleE2ESuite) makeRequest(method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *SaleE2ESuite) decodeResponse(resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func TestSaleE2ESuite(t *testing.T) {
	suite.Run(t, new(SaleE2ESuite))
}
