// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"sort"

	"tienda/internal/domain/entity"
	domainerrors "tienda/internal/domain/errors"
	"tienda/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// adjustStock applies a set of stock adjustments atomically. It must run
// inside the caller's transaction: product rows are locked in ascending ID
// order so concurrent adjustments never deadlock, every line is verified
// against the locked rows, and only then is any stock written. A debit
// shortfall or unknown product fails the whole set before the first write.
func adjustStock(ctx context.Context, products repository.ProductRepository, lines []entity.StockAdjustment, direction entity.StockDirection) error {
	if len(lines) == 0 {
		return errors.Wrap(domainerrors.ErrValidationFailed, "no stock adjustment lines given")
	}

	merged := mergeAdjustments(lines)

	ids := make([]uuid.UUID, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	locked, err := products.FindForUpdate(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "failed to lock product rows for stock adjustment")
	}

	byID := make(map[uuid.UUID]*entity.Product, len(locked))
	for _, p := range locked {
		byID[p.ID] = p
	}

	// Verify every line against the locked rows before writing anything.
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return domainerrors.ErrProductNotFound.WithDetails(id.String()).
				WrapMessage("stock adjustment references unknown product")
		}

		if direction == entity.StockDebit && product.Stock < merged[id] {
			return domainerrors.ErrInsufficientStock.
				WithDetails(fmt.Sprintf("%s: %d available", product.Name, product.Stock)).
				WrapMessage("stock debit exceeds available stock")
		}
	}

	for _, id := range ids {
		product := byID[id]

		next := product.Stock + merged[id]
		if direction == entity.StockDebit {
			next = product.Stock - merged[id]
		}

		if err := products.UpdateStock(ctx, id, next); err != nil {
			return errors.Wrap(err, "failed to update product stock")
		}
		product.Stock = next
	}

	return nil
}

// mergeAdjustments collapses duplicate product lines into one quantity each.
func mergeAdjustments(lines []entity.StockAdjustment) map[uuid.UUID]int {
	merged := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		merged[line.ProductID] += line.Quantity
	}

	return merged
}
