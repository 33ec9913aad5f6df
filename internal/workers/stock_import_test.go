package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/resell-pos/internal/adapters/memory"
	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/workers"
	"github.com/ammerola/resell-pos/test/helpers"
	"github.com/ammerola/resell-pos/test/mocks"
)

func writeSheet(t *testing.T, rows [][]string) string {
	t.Helper()

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Stock")
	require.NoError(t, err)

	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	path := filepath.Join(t.TempDir(), "stock.xlsx")
	require.NoError(t, file.Save(path))
	return path
}

func TestReadStockSheet(t *testing.T) {
	tests := []struct {
		name          string
		rows          [][]string
		want          []domain.StockLevel
		errorContains []string
	}{
		{
			name: "reads_rows_sorted_by_variant",
			rows: [][]string{
				{"sku", "Quantity", "variant_id"},
				{"TSHIRT-M", "4", "12"},
				{"TSHIRT-S", "0", "3"},
				{"", "", ""},
			},
			want: []domain.StockLevel{{VariantID: 3, Quantity: 0}, {VariantID: 12, Quantity: 4}},
		},
		{
			name:          "missing_header_column",
			rows:          [][]string{{"variant_id", "qty"}, {"1", "2"}},
			errorContains: []string{"header must contain"},
		},
		{
			name: "reports_every_bad_row",
			rows: [][]string{
				{"variant_id", "quantity"},
				{"abc", "1"},
				{"2", "-4"},
				{"5", "1"},
				{"5", "2"},
			},
			errorContains: []string{"row 2", "row 3", "row 5", "already set on row 4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := workers.ReadStockSheet(writeSheet(t, tt.rows))

			if len(tt.errorContains) > 0 {
				require.Error(t, err)
				for _, s := range tt.errorContains {
					assert.Contains(t, err.Error(), s)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, levels)
		})
	}
}

func TestStockImportProcessor_ImportStock(t *testing.T) {
	path := writeSheet(t, [][]string{
		{"variant_id", "quantity"},
		{"2", "8"},
		{"1", "5"},
	})

	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCacheRepository(ctrl)
	cache.EXPECT().Delete(gomock.Any(), "stock:1", "stock:2").Return(nil)

	store := memory.NewStockStore(map[domain.VariantID]int{1: 99, 7: 1})
	processor := workers.NewStockImportProcessor(store, cache, helpers.TestLogger())

	task, err := workers.NewStockImportTask(path)
	require.NoError(t, err)
	assert.Equal(t, workers.TypeStockImport, task.Type())

	require.NoError(t, processor.ImportStock(context.Background(), task))
	assert.Equal(t, map[domain.VariantID]int{1: 5, 2: 8, 7: 1}, store.Snapshot())
}

func TestStockImportProcessor_BadInputSkipsRetry(t *testing.T) {
	processor := workers.NewStockImportProcessor(memory.NewStockStore(nil), nil, helpers.TestLogger())

	t.Run("malformed_payload", func(t *testing.T) {
		err := processor.ImportStock(context.Background(), asynq.NewTask(workers.TypeStockImport, []byte("{")))
		assert.True(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("missing_file", func(t *testing.T) {
		payload, _ := json.Marshal(workers.StockImportPayload{FilePath: filepath.Join(t.TempDir(), "none.xlsx")})
		err := processor.ImportStock(context.Background(), asynq.NewTask(workers.TypeStockImport, payload))
		assert.True(t, errors.Is(err, asynq.SkipRetry))
	})
}

func TestStockImportProcessor_ImportStopsOnStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockVariantStockStore(ctrl)
	gomock.InOrder(
		store.EXPECT().SetQuantity(gomock.Any(), domain.VariantID(1), 5).Return(nil),
		store.EXPECT().SetQuantity(gomock.Any(), domain.VariantID(2), 8).Return(domain.ErrStoreUnavailable),
	)

	processor := workers.NewStockImportProcessor(store, nil, helpers.TestLogger())
	written, err := processor.Import(context.Background(), []domain.StockLevel{
		{VariantID: 1, Quantity: 5},
		{VariantID: 2, Quantity: 8},
		{VariantID: 3, Quantity: 1},
	})

	assert.Equal(t, 1, written)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}
