package usecase

import (
	"time"

	"github.com/andgatetech/pos-inventory-api/internal/application/dto"
	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre existencias, movimientos y
// lotes aplicados. La escritura pasa siempre por ApplyBatchUseCase.
type StockUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
	batchRepo repository.AdjustmentBatchRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	batchRepo repository.AdjustmentBatchRepository,
) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, movRepo: movRepo, batchRepo: batchRepo}
}

// ListLevels lista las existencias actuales de una tienda.
func (uc *StockUseCase) ListLevels(storeID int64, limit, offset int) (*dto.StockLevelListResponse, error) {
	list, err := uc.stockRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.StockLevelResponse{
			StoreID:   l.StoreID,
			ProductID: l.ProductID,
			StockID:   l.StockID,
			Quantity:  l.Quantity,
			UpdatedAt: l.UpdatedAt,
		})
	}
	return &dto.StockLevelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListMovements lista el historial de ajustes aplicados de una tienda,
// opcionalmente acotado por fechas.
func (uc *StockUseCase) ListMovements(storeID int64, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.ListByStore(storeID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GetBatch obtiene la cabecera de un lote aplicado.
func (uc *StockUseCase) GetBatch(id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	resp := toBatchResponse(batch)
	return &resp, nil
}

// ListBatches lista los lotes aplicados de una tienda.
func (uc *StockUseCase) ListBatches(storeID int64, limit, offset int) ([]dto.BatchResponse, error) {
	list, err := uc.batchRepo.ListByStore(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, toBatchResponse(b))
	}
	return items, nil
}

// BatchMovements lista las líneas de un lote aplicado.
func (uc *StockUseCase) BatchMovements(batchID string) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return items, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		BatchID:   m.BatchID,
		StoreID:   m.StoreID,
		ProductID: m.ProductID,
		StockID:   m.StockID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

func toBatchResponse(b *entity.AdjustmentBatch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:            b.ID,
		StoreID:       b.StoreID,
		TotalItems:    b.TotalItems,
		TotalIncrease: b.TotalIncrease,
		TotalDecrease: b.TotalDecrease,
		NetChange:     b.TotalIncrease - b.TotalDecrease,
		CreatedAt:     b.CreatedAt,
	}
}
