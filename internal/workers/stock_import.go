// internal/workers/stock_import.go
package workers

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/resell-pos/internal/core/domain"
	"github.com/ammerola/resell-pos/internal/core/ports"
	"github.com/ammerola/resell-pos/internal/core/services"
)

const TypeStockImport = "stock:import"

// StockImportPayload is the payload of a stock:import task
type StockImportPayload struct {
	FilePath string `json:"file_path"`
}

// ReadStockSheet reads opening stock from the first sheet of an xlsx file.
// The header row must name a variant_id and a quantity column; other columns
// are ignored. Every bad row is reported, not just the first.
func ReadStockSheet(path string) ([]domain.StockLevel, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	var (
		levels  []domain.StockLevel
		rowErrs []error
		idCol   = -1
		qtyCol  = -1
		seen    = map[domain.VariantID]int{}
	)

	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		rowNum := r.GetCoordinate() + 1
		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			return strings.TrimSpace(c.String())
		}

		if idCol < 0 {
			for i := 0; i < 32; i++ {
				switch strings.ToLower(get(i)) {
				case "variant_id":
					idCol = i
				case "quantity":
					qtyCol = i
				}
			}
			if idCol < 0 || qtyCol < 0 {
				return errors.New("header must contain variant_id and quantity columns")
			}
			return nil
		}

		rawID, rawQty := get(idCol), get(qtyCol)
		if rawID == "" && rawQty == "" {
			return nil
		}

		id, err := domain.ParseVariantID(rawID)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", rowNum, err))
			return nil
		}
		qty, err := strconv.Atoi(rawQty)
		if err != nil || qty < 0 {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: quantity %q must be a non-negative integer", rowNum, rawQty))
			return nil
		}
		if first, dup := seen[id]; dup {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: variant %s already set on row %d", rowNum, id, first))
			return nil
		}
		seen[id] = rowNum

		levels = append(levels, domain.StockLevel{VariantID: id, Quantity: qty})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rowErrs) > 0 {
		return nil, errors.Join(rowErrs...)
	}

	slices.SortFunc(levels, func(a, b domain.StockLevel) int {
		return cmp.Compare(a.VariantID, b.VariantID)
	})
	return levels, nil
}

// StockImportProcessor writes absolute opening quantities into the stock store
type StockImportProcessor struct {
	store  ports.VariantStockStore
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewStockImportProcessor creates an importer. cache may be nil.
func NewStockImportProcessor(store ports.VariantStockStore, cache ports.CacheRepository, logger *slog.Logger) *StockImportProcessor {
	return &StockImportProcessor{
		store:  store,
		cache:  cache,
		logger: logger.With(slog.String("processor", "stock_import")),
	}
}

// Import sets every level in ascending variant order and returns how many
// were written before any failure.
func (p *StockImportProcessor) Import(ctx context.Context, levels []domain.StockLevel) (int, error) {
	written := 0
	keys := make([]string, 0, len(levels))
	defer func() {
		if p.cache != nil && len(keys) > 0 {
			if err := p.cache.Delete(ctx, keys...); err != nil {
				p.logger.WarnContext(ctx, "failed to invalidate stock cache", slog.String("error", err.Error()))
			}
		}
	}()

	for _, level := range levels {
		if err := p.store.SetQuantity(ctx, level.VariantID, level.Quantity); err != nil {
			return written, fmt.Errorf("failed to set variant %s: %w", level.VariantID, err)
		}
		written++
		keys = append(keys, services.StockCacheKey(level.VariantID))
	}

	p.logger.InfoContext(ctx, "opening stock imported", slog.Int("variants", written))
	return written, nil
}

// ImportStock handles stock:import tasks
func (p *StockImportProcessor) ImportStock(ctx context.Context, t *asynq.Task) error {
	var payload StockImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing stock sheet", slog.String("file_path", payload.FilePath))

	levels, err := ReadStockSheet(payload.FilePath)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	_, err = p.Import(ctx, levels)
	return err
}

// NewStockImportTask builds a stock:import task for the worker
func NewStockImportTask(filePath string) (*asynq.Task, error) {
	payload, err := json.Marshal(StockImportPayload{FilePath: filePath})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStockImport, payload, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}
