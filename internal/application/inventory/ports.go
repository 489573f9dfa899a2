package inventory

import (
	"context"

	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el todo-o-nada al aplicar un lote:
// o se aplican todas las líneas o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		batchRepo repository.AdjustmentBatchRepository,
	) error) error
}
