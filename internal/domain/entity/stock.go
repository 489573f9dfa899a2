package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la existencia actual de un producto (o variante) en una tienda.
// StockID nil significa el producto como un todo.
type StockLevel struct {
	StoreID   int64
	ProductID int64
	StockID   *int64
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// StockMovement registra un ajuste aplicado sobre el inventario de una tienda.
// Quantity lleva signo: positivo para increase, negativo para decrease.
type StockMovement struct {
	ID        string // uuid
	BatchID   string // uuid del lote de ajustes que lo originó
	StoreID   int64
	ProductID int64
	StockID   *int64
	Type      string // increase | decrease
	Quantity  decimal.Decimal
	Reason    string
	Notes     string
	CreatedAt time.Time
}

// AdjustmentBatch cabecera de un lote de ajustes aplicado atómicamente.
type AdjustmentBatch struct {
	ID            string // uuid
	StoreID       int64
	TotalItems    int
	TotalIncrease int64
	TotalDecrease int64
	CreatedAt     time.Time
}
