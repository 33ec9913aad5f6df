package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/resell-pos/internal/adapters/memory"
	redis_a "github.com/ammerola/resell-pos/internal/adapters/redis_adapter"
	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/services"
	"github.com/ammerola/resell-pos/test/helpers"
	"github.com/ammerola/resell-pos/test/mocks"
)

func TestStockService_GetLevels(t *testing.T) {
	t.Run("sorted_and_deduplicated", func(t *testing.T) {
		store := memory.NewStockStore(map[domain.VariantID]int{1: 4, 3: 9})
		svc := services.NewStockService(store, nil, 0, helpers.TestLogger())

		levels, err := svc.GetLevels(context.Background(), []domain.VariantID{3, 1, 3, 2})

		require.NoError(t, err)
		assert.Equal(t, []domain.StockLevel{
			{VariantID: 1, Quantity: 4},
			{VariantID: 2, Quantity: 0},
			{VariantID: 3, Quantity: 9},
		}, levels)
	})

	t.Run("empty_request", func(t *testing.T) {
		svc := services.NewStockService(memory.NewStockStore(nil), nil, 0, helpers.TestLogger())

		levels, err := svc.GetLevels(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, levels)
	})

	t.Run("store_failure_is_unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := mocks.NewMockVariantStockStore(ctrl)
		store.EXPECT().GetQuantities(gomock.Any(), gomock.Any()).Return(nil, errRepo)

		svc := services.NewStockService(store, nil, 0, helpers.TestLogger())

		_, err := svc.GetLevels(context.Background(), []domain.VariantID{1})

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.ErrorIs(t, err, errRepo)
	})
}

func TestStockService_GetLevels_Cached(t *testing.T) {
	tr := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(tr.Client, time.Minute, helpers.TestLogger())
	store := memory.NewStockStore(map[domain.VariantID]int{1: 5})
	logger := helpers.TestLogger()

	stock := services.NewStockService(store, cache, 0, logger)
	ctx := context.Background()

	levels, err := stock.GetLevels(ctx, []domain.VariantID{1})
	require.NoError(t, err)
	assert.Equal(t, 5, levels[0].Quantity)

	// Written behind the service's back: the cached value is still served
	require.NoError(t, store.SetQuantity(ctx, 1, 40))
	levels, err = stock.GetLevels(ctx, []domain.VariantID{1})
	require.NoError(t, err)
	assert.Equal(t, 5, levels[0].Quantity)

	// A committed sale invalidates the key
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSaleRepository(ctrl)
	repo.EXPECT().CreateHeader(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().ReplaceLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	sales := services.NewSaleService(repo, services.NewStockLedgerReconciler(store, logger), nil, cache, logger)

	require.NoError(t, sales.CreateSale(ctx, helpers.CreateTestSale()))

	levels, err = stock.GetLevels(ctx, []domain.VariantID{1})
	require.NoError(t, err)
	assert.Equal(t, 38, levels[0].Quantity)
}
