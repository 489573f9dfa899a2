package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/andgatetech/pos-inventory-api/internal/application/dto"
	"github.com/andgatetech/pos-inventory-api/internal/domain"
	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// SummaryUseCase reportería de ajustes aplicados: agrega los movimientos por
// motivo en un período para responder "cuánto se perdió por daño/vencimiento".
type SummaryUseCase struct {
	reportRepo repository.ReportRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(reportRepo repository.ReportRepository) *SummaryUseCase {
	return &SummaryUseCase{reportRepo: reportRepo}
}

// AdjustmentSummary genera el resumen por motivo. storeID 0 agrega todas las
// tiendas. Las fechas llegan como YYYY-MM-DD; to es inclusivo (fin de día).
func (uc *SummaryUseCase) AdjustmentSummary(ctx context.Context, storeID int64, fromStr, toStr string) (*dto.AdjustmentSummaryResponse, error) {
	from, to, err := parsePeriod(fromStr, toStr)
	if err != nil {
		return nil, err
	}

	rows, err := uc.reportRepo.AdjustmentSummary(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}

	reasons := make([]dto.ReasonSummaryDTO, 0, len(rows))
	for _, r := range rows {
		reasons = append(reasons, dto.ReasonSummaryDTO{
			Reason:        r.Reason,
			Movements:     r.Movements,
			TotalIncrease: r.TotalIncrease,
			TotalDecrease: r.TotalDecrease,
			NetChange:     r.NetChange,
		})
	}
	return &dto.AdjustmentSummaryResponse{
		StoreID: storeID,
		From:    from.Format(dateLayout),
		To:      to.Format(dateLayout),
		Reasons: reasons,
	}, nil
}

func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha 'from' inválida: %s", domain.ErrInvalidInput, fromStr)
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha 'to' inválida: %s", domain.ErrInvalidInput, toStr)
	}
	to = to.Add(24*time.Hour - time.Nanosecond)
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: el período termina antes de empezar", domain.ErrInvalidInput)
	}
	return from, to, nil
}
