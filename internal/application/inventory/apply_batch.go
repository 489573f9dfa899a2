package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andgatetech/pos-inventory-api/internal/domain"
	"github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

// BatchError error de validación o aplicación de un lote, con el campo
// ofensor. Se proyecta al contrato de cable {ok:false, error:{field,message}};
// Unwrap expone el sentinel de dominio para el mapeo de estados HTTP.
type BatchError struct {
	Field   string
	Message string
	Err     error
}

func (e *BatchError) Error() string { return e.Message }
func (e *BatchError) Unwrap() error { return e.Err }

// ApplyBatchUseCase aplica un lote de ajustes de forma transaccional: bloqueo
// de fila por existencia (SELECT FOR UPDATE), actualización de cantidades y
// registro de movimientos, con Commit/Rollback. Es el lado servidor del
// Submission Gateway.
type ApplyBatchUseCase struct {
	txRunner    TxRunner
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	reasons     adjustment.Vocabulary
}

// NewApplyBatchUseCase construye el caso de uso.
func NewApplyBatchUseCase(
	txRunner TxRunner,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	reasons adjustment.Vocabulary,
) *ApplyBatchUseCase {
	return &ApplyBatchUseCase{
		txRunner:    txRunner,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		reasons:     reasons,
	}
}

// Apply valida el lote completo y lo aplica atómicamente. Devuelve la cabecera
// del lote aplicado, o un *BatchError sin haber aplicado ningún registro.
func (uc *ApplyBatchUseCase) Apply(ctx context.Context, storeID int64, records []adjustment.Record) (*entity.AdjustmentBatch, error) {
	if len(records) == 0 {
		return nil, &BatchError{Field: "records", Message: "el lote de ajustes está vacío", Err: domain.ErrEmptyBatch}
	}

	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, &BatchError{Field: "store_id", Message: fmt.Sprintf("tienda %d no encontrada", storeID), Err: domain.ErrNotFound}
	}

	// Validar cada registro y reconstruir las líneas. Un Ledger efímero
	// refuerza del lado servidor la unicidad por par (producto, variante)
	// dentro del lote, igual que el buffer del cliente.
	var staged adjustment.Ledger
	entries := make([]adjustment.Entry, 0, len(records))
	for i, r := range records {
		e, err := uc.validateRecord(i, r)
		if err != nil {
			return nil, err
		}
		inserted, err := staged.Add(e)
		if err != nil {
			return nil, &BatchError{Field: fieldAt(i, "quantity"), Message: err.Error(), Err: domain.ErrInvalidInput}
		}
		if !inserted {
			return nil, &BatchError{
				Field:   fieldAt(i, "product_id"),
				Message: fmt.Sprintf("registro duplicado para producto %d en el lote", r.ProductID),
				Err:     domain.ErrDuplicate,
			}
		}
		entries = append(entries, e)
	}

	now := time.Now()
	totals := staged.Totals()
	batch := &entity.AdjustmentBatch{
		ID:            uuid.New().String(),
		StoreID:       storeID,
		TotalItems:    totals.TotalItems,
		TotalIncrease: totals.TotalIncrease,
		TotalDecrease: totals.TotalDecrease,
		CreatedAt:     now,
	}

	// Transacción única: todas las líneas o ninguna.
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		batchRepo repository.AdjustmentBatchRepository,
	) error {
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		for i, e := range entries {
			if err := uc.applyEntry(stockRepo, movRepo, batch.ID, storeID, e, now, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// validateRecord verifica forma, existencia de producto/variante y motivo.
func (uc *ApplyBatchUseCase) validateRecord(i int, r adjustment.Record) (adjustment.Entry, error) {
	e, err := adjustment.EntryFromRecord(r)
	if err != nil {
		field := "quantity"
		if err == adjustment.ErrInvalidDirection {
			field = "adjustment_type"
		}
		return adjustment.Entry{}, &BatchError{Field: fieldAt(i, field), Message: err.Error(), Err: domain.ErrInvalidInput}
	}
	if !uc.reasons.Valid(r.Reason) {
		return adjustment.Entry{}, &BatchError{
			Field:   fieldAt(i, "reason"),
			Message: fmt.Sprintf("motivo %q fuera del vocabulario configurado", r.Reason),
			Err:     domain.ErrInvalidInput,
		}
	}

	product, err := uc.productRepo.GetByID(r.ProductID)
	if err != nil {
		return adjustment.Entry{}, err
	}
	if product == nil {
		return adjustment.Entry{}, &BatchError{
			Field:   fieldAt(i, "product_id"),
			Message: fmt.Sprintf("producto %d no encontrado", r.ProductID),
			Err:     domain.ErrNotFound,
		}
	}
	if r.StockID != nil {
		variant, err := uc.productRepo.GetVariant(*r.StockID)
		if err != nil {
			return adjustment.Entry{}, err
		}
		if variant == nil || variant.ProductID != r.ProductID {
			return adjustment.Entry{}, &BatchError{
				Field:   fieldAt(i, "stock_id"),
				Message: fmt.Sprintf("variante %d no encontrada para el producto %d", *r.StockID, r.ProductID),
				Err:     domain.ErrNotFound,
			}
		}
	}
	return e, nil
}

// applyEntry bloquea la fila de existencia, aplica el delta con signo y
// registra el movimiento. Una disminución que dejaría la existencia en
// negativo falla el lote completo.
func (uc *ApplyBatchUseCase) applyEntry(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	batchID string,
	storeID int64,
	e adjustment.Entry,
	now time.Time,
	i int,
) error {
	level, err := stockRepo.GetForUpdate(storeID, e.ProductID, e.StockID)
	if err != nil {
		return err
	}
	delta := decimal.NewFromInt(e.Signed())
	newQty := level.Quantity.Add(delta)
	if newQty.IsNegative() {
		return &BatchError{
			Field: fieldAt(i, "quantity"),
			Message: fmt.Sprintf("stock insuficiente para el producto %d: hay %s, se pide bajar %d",
				e.ProductID, level.Quantity.String(), e.Quantity),
			Err: domain.ErrInsufficientStock,
		}
	}
	level.Quantity = newQty
	level.UpdatedAt = now
	if err := stockRepo.Upsert(level); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		BatchID:   batchID,
		StoreID:   storeID,
		ProductID: e.ProductID,
		StockID:   e.StockID,
		Type:      string(e.Direction),
		Quantity:  delta,
		Reason:    e.Reason,
		Notes:     e.Notes,
		CreatedAt: now,
	}
	return movRepo.Create(mov)
}

// fieldAt referencia un campo de un registro concreto del lote ("records[2].quantity").
func fieldAt(i int, field string) string {
	return fmt.Sprintf("records[%d].%s", i, field)
}
