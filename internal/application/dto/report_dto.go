package dto

import "github.com/shopspring/decimal"

// ReasonSummaryDTO agregados de ajustes aplicados para un motivo.
type ReasonSummaryDTO struct {
	Reason        string          `json:"reason"`
	Movements     int             `json:"movements"`
	TotalIncrease decimal.Decimal `json:"total_increase"`
	TotalDecrease decimal.Decimal `json:"total_decrease"`
	NetChange     decimal.Decimal `json:"net_change"`
}

// AdjustmentSummaryResponse reporte de ajustes por motivo en un período.
type AdjustmentSummaryResponse struct {
	StoreID int64              `json:"store_id,omitempty"`
	From    string             `json:"from"`
	To      string             `json:"to"`
	Reasons []ReasonSummaryDTO `json:"reasons"`
}
