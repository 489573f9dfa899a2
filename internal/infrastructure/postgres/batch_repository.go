package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

var _ repository.AdjustmentBatchRepository = (*AdjustmentBatchRepo)(nil)

// AdjustmentBatchRepo implementación sobre PostgreSQL (usable con pool o tx).
type AdjustmentBatchRepo struct {
	q Querier
}

// NewAdjustmentBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentBatchRepository(q Querier) *AdjustmentBatchRepo {
	return &AdjustmentBatchRepo{q: q}
}

// Create persiste la cabecera de un lote aplicado.
func (r *AdjustmentBatchRepo) Create(batch *entity.AdjustmentBatch) error {
	query := `
		INSERT INTO adjustment_batches (id, store_id, total_items, total_increase, total_decrease, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.StoreID, batch.TotalItems, batch.TotalIncrease, batch.TotalDecrease, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment batch: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un lote por ID.
func (r *AdjustmentBatchRepo) GetByID(id string) (*entity.AdjustmentBatch, error) {
	query := `
		SELECT id, store_id, total_items, total_increase, total_decrease, created_at
		FROM adjustment_batches WHERE id = $1`
	var b entity.AdjustmentBatch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.StoreID, &b.TotalItems, &b.TotalIncrease, &b.TotalDecrease, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment batch: %w", err)
	}
	return &b, nil
}

// ListByStore lista los lotes aplicados de una tienda, el más reciente primero.
func (r *AdjustmentBatchRepo) ListByStore(storeID int64, limit, offset int) ([]*entity.AdjustmentBatch, error) {
	query := `
		SELECT id, store_id, total_items, total_increase, total_decrease, created_at
		FROM adjustment_batches WHERE store_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustment batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.AdjustmentBatch
	for rows.Next() {
		var b entity.AdjustmentBatch
		if err := rows.Scan(&b.ID, &b.StoreID, &b.TotalItems, &b.TotalIncrease, &b.TotalDecrease, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
