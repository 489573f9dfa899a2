package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/andgatetech/pos-inventory-api/internal/application/analytics"
	"github.com/andgatetech/pos-inventory-api/internal/application/dto"
	"github.com/andgatetech/pos-inventory-api/internal/domain"
)

// ReportHandler reportería de ajustes aplicados.
type ReportHandler struct {
	summary *analytics.SummaryUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(summary *analytics.SummaryUseCase) *ReportHandler {
	return &ReportHandler{summary: summary}
}

// AdjustmentSummary godoc
// @Summary      Resumen de ajustes por motivo
// @Description  Agrega los movimientos aplicados por motivo en un período.
// @Tags         reports
// @Produce      json
// @Param        store_id  query  int     false  "ID de la tienda (0 o ausente = todas)"
// @Param        from      query  string  true   "Fecha inicial (YYYY-MM-DD)"
// @Param        to        query  string  true   "Fecha final (YYYY-MM-DD, inclusiva)"
// @Success      200  {object}  dto.AdjustmentSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/adjustments [get]
func (h *ReportHandler) AdjustmentSummary(c *fiber.Ctx) error {
	var storeID int64
	if s := c.Query("store_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "store_id inválido"})
		}
		storeID = v
	}

	out, err := h.summary.AdjustmentSummary(c.Context(), storeID, c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
