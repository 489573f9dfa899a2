package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// El índice único de stock_levels usa COALESCE(stock_id, 0): la fila "producto
// como un todo" (stock_id NULL) convive con las filas por variante.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia actual de un producto/variante en una tienda.
// Sin fila registrada devuelve cantidad cero, no error.
func (r *StockRepo) Get(storeID, productID int64, stockID *int64) (*entity.StockLevel, error) {
	query := `
		SELECT store_id, product_id, stock_id, quantity, updated_at
		FROM stock_levels
		WHERE store_id = $1 AND product_id = $2 AND stock_id IS NOT DISTINCT FROM $3`
	return r.scanLevel(r.q.QueryRow(context.Background(), query, storeID, productID, stockID), storeID, productID, stockID, "get stock level")
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE).
// Sin fila registrada devuelve cantidad cero; el Upsert posterior la crea.
func (r *StockRepo) GetForUpdate(storeID, productID int64, stockID *int64) (*entity.StockLevel, error) {
	query := `
		SELECT store_id, product_id, stock_id, quantity, updated_at
		FROM stock_levels
		WHERE store_id = $1 AND product_id = $2 AND stock_id IS NOT DISTINCT FROM $3
		FOR UPDATE`
	return r.scanLevel(r.q.QueryRow(context.Background(), query, storeID, productID, stockID), storeID, productID, stockID, "get stock level for update")
}

func (r *StockRepo) scanLevel(row pgx.Row, storeID, productID int64, stockID *int64, op string) (*entity.StockLevel, error) {
	var l entity.StockLevel
	err := row.Scan(&l.StoreID, &l.ProductID, &l.StockID, &l.Quantity, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{StoreID: storeID, ProductID: productID, StockID: stockID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

// Upsert inserta o actualiza la cantidad (por tienda, producto y variante).
func (r *StockRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (store_id, product_id, stock_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (store_id, product_id, COALESCE(stock_id, 0))
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, level.StoreID, level.ProductID, level.StockID, level.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByStore lista las existencias de una tienda con paginación.
func (r *StockRepo) ListByStore(storeID int64, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT store_id, product_id, stock_id, quantity, updated_at
		FROM stock_levels WHERE store_id = $1
		ORDER BY product_id, COALESCE(stock_id, 0)
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.StoreID, &l.ProductID, &l.StockID, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
