package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/andgatetech/pos-inventory-api/internal/domain"
	"github.com/andgatetech/pos-inventory-api/internal/domain/entity"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

// VoucherLine línea del comprobante: movimiento aplicado enriquecido con los
// datos de catálogo que el PDF necesita mostrar.
type VoucherLine struct {
	SKU          string
	ProductName  string
	VariantLabel string
	Type         string
	Quantity     decimal.Decimal
	Reason       string
	Notes        string
}

// VoucherPDFGenerator puerto para el render del comprobante de ajuste
// (implementado con Maroto en infraestructura).
type VoucherPDFGenerator interface {
	GenerateVoucherPDF(ctx context.Context, batch *entity.AdjustmentBatch, store *entity.Store, lines []VoucherLine) ([]byte, error)
}

// VoucherUseCase genera el comprobante PDF de un lote de ajustes aplicado.
type VoucherUseCase struct {
	batchRepo   repository.AdjustmentBatchRepository
	movRepo     repository.StockMovementRepository
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	pdf         VoucherPDFGenerator
}

// NewVoucherUseCase construye el caso de uso.
func NewVoucherUseCase(
	batchRepo repository.AdjustmentBatchRepository,
	movRepo repository.StockMovementRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	pdf VoucherPDFGenerator,
) *VoucherUseCase {
	return &VoucherUseCase{
		batchRepo:   batchRepo,
		movRepo:     movRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		pdf:         pdf,
	}
}

// Generate carga el lote, sus movimientos y el catálogo asociado, y devuelve
// los bytes del PDF.
func (uc *VoucherUseCase) Generate(ctx context.Context, batchID string) ([]byte, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	store, err := uc.storeRepo.GetByID(batch.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}

	lines := make([]VoucherLine, 0, len(movements))
	for _, m := range movements {
		line := VoucherLine{
			Type:     m.Type,
			Quantity: m.Quantity,
			Reason:   m.Reason,
			Notes:    m.Notes,
		}
		product, err := uc.productRepo.GetByID(m.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			line.SKU = product.SKU
			line.ProductName = product.Name
		} else {
			line.ProductName = fmt.Sprintf("producto %d", m.ProductID)
		}
		if m.StockID != nil {
			variant, err := uc.productRepo.GetVariant(*m.StockID)
			if err != nil {
				return nil, err
			}
			if variant != nil {
				line.VariantLabel = variant.Label
			}
		}
		lines = append(lines, line)
	}

	return uc.pdf.GenerateVoucherPDF(ctx, batch, store, lines)
}
