package repository

import (
	"time"

	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar existencias por
// tienda+producto(+variante). Se usa dentro de transacciones para garantizar
// consistencia al aplicar lotes de ajustes.
type StockRepository interface {
	Get(storeID, productID int64, stockID *int64) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(storeID, productID int64, stockID *int64) (*entity.StockLevel, error)
	ListByStore(storeID int64, limit, offset int) ([]*entity.StockLevel, error)
}

// StockMovementRepository define el puerto de persistencia para ajustes aplicados.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByBatch(batchID string) ([]*entity.StockMovement, error)
	ListByStore(storeID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}

// AdjustmentBatchRepository define el puerto para las cabeceras de lotes aplicados.
type AdjustmentBatchRepository interface {
	Create(batch *entity.AdjustmentBatch) error
	GetByID(id string) (*entity.AdjustmentBatch, error)
	ListByStore(storeID int64, limit, offset int) ([]*entity.AdjustmentBatch, error)
}
