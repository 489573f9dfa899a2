package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andgatetech/pos-inventory-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportería de ajustes.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportería.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// AdjustmentSummary agrega los movimientos aplicados por motivo en un período.
// storeID 0 agrega todas las tiendas. Los movimientos sin motivo se consolidan
// en el grupo "(sin motivo)".
func (r *ReportRepo) AdjustmentSummary(
	ctx context.Context,
	storeID int64,
	from, to time.Time,
) ([]repository.ReasonSummary, error) {
	const query = `
	SELECT
	    COALESCE(NULLIF(m.reason, ''), '(sin motivo)')                        AS reason,
	    COUNT(*)                                                              AS movements,
	    COALESCE(SUM(m.quantity) FILTER (WHERE m.type = 'increase'), 0)       AS total_increase,
	    COALESCE(SUM(-m.quantity) FILTER (WHERE m.type = 'decrease'), 0)      AS total_decrease,
	    COALESCE(SUM(m.quantity), 0)                                          AS net_change
	FROM stock_movements m
	WHERE ($1 = 0 OR m.store_id = $1)
	  AND m.created_at BETWEEN $2 AND $3
	GROUP BY COALESCE(NULLIF(m.reason, ''), '(sin motivo)')
	ORDER BY movements DESC, reason`

	rows, err := r.pool.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.AdjustmentSummary: %w", err)
	}
	defer rows.Close()

	var results []repository.ReasonSummary
	for rows.Next() {
		var row repository.ReasonSummary
		if err := rows.Scan(
			&row.Reason,
			&row.Movements,
			&row.TotalIncrease,
			&row.TotalDecrease,
			&row.NetChange,
		); err != nil {
			return nil, fmt.Errorf("report.AdjustmentSummary scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
