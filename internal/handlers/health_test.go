package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/resell-pos/internal/adapters/memory"
	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/handlers"
	"github.com/ammerola/resell-pos/test/helpers"
	"github.com/ammerola/resell-pos/test/mocks"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks.MockDatabase, *mocks.MockCacheRepository)
		expectedStatus int
		expected       map[string]string
	}{
		{
			name: "all_healthy",
			setupMocks: func(db *mocks.MockDatabase, cache *mocks.MockCacheRepository) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				db.EXPECT().Health(gomock.Any()).Return(map[string]any{"total_conns": 3})
				cache.EXPECT().Ping(gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expected:       map[string]string{"database": "healthy", "cache": "healthy", "stock_store": "healthy"},
		},
		{
			name: "database_down_degrades",
			setupMocks: func(db *mocks.MockDatabase, cache *mocks.MockCacheRepository) {
				db.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
				cache.EXPECT().Ping(gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expected:       map[string]string{"database": "unhealthy", "cache": "healthy", "stock_store": "healthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := mocks.NewMockDatabase(ctrl)
			cache := mocks.NewMockCacheRepository(ctrl)
			tt.setupMocks(db, cache)

			handler := handlers.NewHealthHandler(db, cache, memory.NewStockStore(nil), nil,
				helpers.LoadTestConfig(), helpers.TestLogger())

			w := httptest.NewRecorder()
			handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var status handlers.HealthStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
			assert.Len(t, status.Services, len(tt.expected))
			for name, want := range tt.expected {
				assert.Equal(t, want, status.Services[name].Status, name)
			}
			assert.Equal(t, "test", status.Environment)
		})
	}
}

func TestHealthHandler_Health_StockStoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVariantStockStore(ctrl)
	store.EXPECT().GetQuantities(gomock.Any(), gomock.Any()).Return(nil, domain.ErrStoreUnavailable)

	handler := handlers.NewHealthHandler(nil, nil, store, nil, helpers.LoadTestConfig(), helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var status handlers.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "memory", status.Services["stock_store"].Details["backend"])
}

func TestHealthHandler_Readiness(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockDatabase(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(nil)
	cache.EXPECT().Ping(gomock.Any()).Return(errors.New("redis down"))

	handler := handlers.NewHealthHandler(db, cache, memory.NewStockStore(nil), nil,
		helpers.LoadTestConfig(), helpers.TestLogger())

	w := httptest.NewRecorder()
	handler.Readiness(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Ready   bool              `json:"ready"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ready)
	assert.Equal(t, "ready", body.Details["database"])
	assert.Equal(t, "not ready", body.Details["cache"])
	assert.Equal(t, "ready", body.Details["stock_store"])
}
