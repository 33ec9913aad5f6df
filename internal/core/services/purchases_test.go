package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/resell-pos/internal/adapters/memory"
	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/ammerola/resell-pos/internal/core/services"
	"github.com/ammerola/resell-pos/test/helpers"
	"github.com/ammerola/resell-pos/test/mocks"
)

func newPurchaseService(t *testing.T, store ports.VariantStockStore) (*services.PurchaseService, *mocks.MockPurchaseRepository, *mocks.MockIncidentNotifier) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPurchaseRepository(ctrl)
	notifier := mocks.NewMockIncidentNotifier(ctrl)
	logger := helpers.TestLogger()

	svc := services.NewPurchaseService(repo, services.NewStockLedgerReconciler(store, logger), notifier, nil, logger)
	return svc, repo, notifier
}

func storedPurchase(overrides ...func(*domain.Purchase)) *domain.Purchase {
	purchase := helpers.CreateTestPurchase(overrides...)
	purchase.PrepareForStorage()
	return purchase
}

func TestPurchaseService_CreatePurchase(t *testing.T) {
	t.Run("adds_units", func(t *testing.T) {
		store := memory.NewStockStore(map[domain.VariantID]int{1: 2})
		svc, repo, _ := newPurchaseService(t, store)

		purchase := helpers.CreateTestPurchase()
		repo.EXPECT().CreateHeader(gomock.Any(), purchase).Return(nil)
		repo.EXPECT().ReplaceLines(gomock.Any(), gomock.Any(), purchase.Lines).Return(nil)

		require.NoError(t, svc.CreatePurchase(context.Background(), purchase))

		assert.NotEqual(t, uuid.Nil, purchase.ID)
		assert.Equal(t, "50", purchase.Total.String())
		assert.Equal(t, map[domain.VariantID]int{1: 7}, quantities(t, store, 1))
	})

	t.Run("missing_supplier", func(t *testing.T) {
		svc, _, _ := newPurchaseService(t, memory.NewStockStore(nil))

		err := svc.CreatePurchase(context.Background(), helpers.CreateTestPurchase(func(p *domain.Purchase) {
			p.Supplier = ""
		}))

		assert.ErrorIs(t, err, domain.ErrInvalidPurchase)
	})

	t.Run("failed_rollback_reports_incident", func(t *testing.T) {
		store := newFlakyStore(nil)
		store.failSetOn[1] = 2
		svc, repo, notifier := newPurchaseService(t, store)

		repo.EXPECT().CreateHeader(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().ReplaceLines(gomock.Any(), gomock.Any(), gomock.Any()).Return(errRepo)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		notifier.EXPECT().
			NotifyInconsistency(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, incident *domain.InventoryIncident) error {
				assert.Equal(t, domain.OperationCreatePurchase, incident.Operation)
				assert.Equal(t, domain.DeltaMap{1: -5}, incident.Pending)
				return errRepo
			})

		err := svc.CreatePurchase(context.Background(), helpers.CreateTestPurchase())

		require.ErrorIs(t, err, domain.ErrInventoryInconsistent)
		assert.Equal(t, map[domain.VariantID]int{1: 5}, store.Snapshot())
	})
}

func TestPurchaseService_UpdatePurchase(t *testing.T) {
	t.Run("shrink_blocked_when_units_sold", func(t *testing.T) {
		existing := storedPurchase()
		store := memory.NewStockStore(map[domain.VariantID]int{1: 1})
		svc, repo, _ := newPurchaseService(t, store)

		repo.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)

		update := helpers.CreateTestPurchase(func(p *domain.Purchase) {
			p.Lines = domain.ReservationSet{helpers.TestLine(1, 2)}
		})
		err := svc.UpdatePurchase(context.Background(), existing.ID, update)

		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		assert.Equal(t, map[domain.VariantID]int{1: 1}, quantities(t, store, 1))
	})

	t.Run("shrink_allowed_when_units_on_hand", func(t *testing.T) {
		existing := storedPurchase()
		store := memory.NewStockStore(map[domain.VariantID]int{1: 5})
		svc, repo, _ := newPurchaseService(t, store)

		repo.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)
		repo.EXPECT().UpdateHeader(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().ReplaceLines(gomock.Any(), existing.ID, gomock.Any()).Return(nil)

		update := helpers.CreateTestPurchase(func(p *domain.Purchase) {
			p.Lines = domain.ReservationSet{helpers.TestLine(1, 2)}
		})
		require.NoError(t, svc.UpdatePurchase(context.Background(), existing.ID, update))

		assert.Equal(t, map[domain.VariantID]int{1: 2}, quantities(t, store, 1))
	})

	t.Run("grow_adds_difference", func(t *testing.T) {
		existing := storedPurchase()
		store := memory.NewStockStore(map[domain.VariantID]int{1: 0})
		svc, repo, _ := newPurchaseService(t, store)

		repo.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)
		repo.EXPECT().UpdateHeader(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().ReplaceLines(gomock.Any(), existing.ID, gomock.Any()).Return(nil)

		update := helpers.CreateTestPurchase(func(p *domain.Purchase) {
			p.Lines = domain.ReservationSet{helpers.TestLine(1, 8), helpers.TestLine(3, 1)}
		})
		require.NoError(t, svc.UpdatePurchase(context.Background(), existing.ID, update))

		assert.Equal(t, map[domain.VariantID]int{1: 3, 3: 1}, quantities(t, store, 1, 3))
	})
}

func TestPurchaseService_DeletePurchase(t *testing.T) {
	t.Run("removes_units", func(t *testing.T) {
		existing := storedPurchase()
		store := memory.NewStockStore(map[domain.VariantID]int{1: 6})
		svc, repo, _ := newPurchaseService(t, store)

		repo.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)
		repo.EXPECT().Delete(gomock.Any(), existing.ID).Return(nil)

		require.NoError(t, svc.DeletePurchase(context.Background(), existing.ID))
		assert.Equal(t, map[domain.VariantID]int{1: 1}, quantities(t, store, 1))
	})

	t.Run("blocked_when_units_sold", func(t *testing.T) {
		existing := storedPurchase()
		store := memory.NewStockStore(map[domain.VariantID]int{1: 2})
		svc, repo, _ := newPurchaseService(t, store)

		repo.EXPECT().FindByID(gomock.Any(), existing.ID).Return(existing, nil)

		err := svc.DeletePurchase(context.Background(), existing.ID)

		var insufficient *domain.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, []domain.InsufficientStock{{VariantID: 1, Available: 2, Requested: 5}}, insufficient.Violations)
	})

	t.Run("not_found", func(t *testing.T) {
		svc, repo, _ := newPurchaseService(t, memory.NewStockStore(nil))
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

		err := svc.DeletePurchase(context.Background(), id)

		assert.ErrorIs(t, err, domain.ErrPurchaseNotFound)
	})
}

func TestPurchaseService_ListPurchases(t *testing.T) {
	svc, repo, _ := newPurchaseService(t, memory.NewStockStore(nil))

	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), nil)

	result, err := svc.ListPurchases(context.Background(), ports.ListParams{})

	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, 20, result.PageSize)
	assert.Equal(t, 0, result.TotalPages)
}
