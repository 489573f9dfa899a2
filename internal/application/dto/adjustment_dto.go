package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRecordRequest línea del lote en el formato de cable del gateway:
// un registro por línea del ledger del cliente.
type AdjustmentRecordRequest struct {
	ProductID      int64  `json:"product_id" validate:"required,gt=0"`
	StockID        *int64 `json:"stock_id,omitempty" validate:"omitempty,gt=0"`
	AdjustmentType string `json:"adjustment_type" validate:"required,oneof=increase decrease"`
	Quantity       int64  `json:"quantity" validate:"required,gt=0"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes,omitempty"`
}

// SubmitAdjustmentsRequest body para POST /api/stores/:id/adjustments.
type SubmitAdjustmentsRequest struct {
	Records []AdjustmentRecordRequest `json:"records" validate:"required,min=1,dive"`
}

// FieldError error estructurado del gateway: campo ofensor + mensaje.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SubmitAdjustmentsResponse respuesta del gateway. Éxito: ok=true con el id
// del lote aplicado; fallo: ok=false con el error estructurado y ningún
// registro aplicado (todo-o-nada).
type SubmitAdjustmentsResponse struct {
	OK      bool        `json:"ok"`
	BatchID string      `json:"batch_id,omitempty"`
	Error   *FieldError `json:"error,omitempty"`
}

// BatchResponse cabecera de un lote aplicado.
type BatchResponse struct {
	ID            string    `json:"id"`
	StoreID       int64     `json:"store_id"`
	TotalItems    int       `json:"total_items"`
	TotalIncrease int64     `json:"total_increase"`
	TotalDecrease int64     `json:"total_decrease"`
	NetChange     int64     `json:"net_change"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementResponse un ajuste aplicado (historial).
type MovementResponse struct {
	ID        string          `json:"id"`
	BatchID   string          `json:"batch_id"`
	StoreID   int64           `json:"store_id"`
	ProductID int64           `json:"product_id"`
	StockID   *int64          `json:"stock_id,omitempty"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// MovementListResponse historial paginado de ajustes aplicados.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockLevelResponse existencia actual de un producto/variante en una tienda.
type StockLevelResponse struct {
	StoreID   int64           `json:"store_id"`
	ProductID int64           `json:"product_id"`
	StockID   *int64          `json:"stock_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockLevelListResponse existencias de una tienda.
type StockLevelListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
