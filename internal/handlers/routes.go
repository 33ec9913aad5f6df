// internal/handlers/routes.go
package handlers

import "net/http"

// APIPrefix is the path prefix of every versioned endpoint
const APIPrefix = "/api/v1"

// Routes groups the handlers served by the API
type Routes struct {
	Sales     *SaleHandler
	Purchases *PurchaseHandler
	Stock     *StockHandler
	Health    *HealthHandler
}

// Register mounts every route on mux using method-qualified patterns
func (rt Routes) Register(mux *http.ServeMux) {
	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
	}

	mux.HandleFunc("POST "+APIPrefix+"/sales", rt.Sales.CreateSale)
	mux.HandleFunc("GET "+APIPrefix+"/sales", rt.Sales.ListSales)
	mux.HandleFunc("GET "+APIPrefix+"/sales/{id}", rt.Sales.GetSale)
	mux.HandleFunc("PUT "+APIPrefix+"/sales/{id}", rt.Sales.UpdateSale)
	mux.HandleFunc("DELETE "+APIPrefix+"/sales/{id}", rt.Sales.DeleteSale)
	mux.HandleFunc("POST "+APIPrefix+"/sales/{id}/installments/{number}/pay", rt.Sales.PayInstallment)

	mux.HandleFunc("POST "+APIPrefix+"/purchases", rt.Purchases.CreatePurchase)
	mux.HandleFunc("GET "+APIPrefix+"/purchases", rt.Purchases.ListPurchases)
	mux.HandleFunc("GET "+APIPrefix+"/purchases/{id}", rt.Purchases.GetPurchase)
	mux.HandleFunc("PUT "+APIPrefix+"/purchases/{id}", rt.Purchases.UpdatePurchase)
	mux.HandleFunc("DELETE "+APIPrefix+"/purchases/{id}", rt.Purchases.DeletePurchase)

	mux.HandleFunc("GET "+APIPrefix+"/stock", rt.Stock.GetStock)
}
