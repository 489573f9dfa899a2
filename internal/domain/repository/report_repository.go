package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReasonSummary agrega los ajustes aplicados de un motivo en un período.
type ReasonSummary struct {
	Reason        string
	Movements     int
	TotalIncrease decimal.Decimal
	TotalDecrease decimal.Decimal
	NetChange     decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportería de ajustes.
type ReportRepository interface {
	// AdjustmentSummary agrupa los movimientos aplicados por motivo.
	// storeID 0 = todas las tiendas.
	AdjustmentSummary(ctx context.Context, storeID int64, from, to time.Time) ([]ReasonSummary, error)
}
