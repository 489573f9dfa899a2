package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/andgatetech/pos-inventory-api/internal/application/dto"
	"github.com/andgatetech/pos-inventory-api/internal/application/inventory"
	"github.com/andgatetech/pos-inventory-api/internal/application/usecase"
	"github.com/andgatetech/pos-inventory-api/internal/domain"
	"github.com/andgatetech/pos-inventory-api/internal/domain/adjustment"
)

// AdjustmentHandler maneja el endpoint del Submission Gateway y las consultas
// de lotes aplicados.
type AdjustmentHandler struct {
	applyBatch *inventory.ApplyBatchUseCase
	voucher    *inventory.VoucherUseCase
	stockUC    *usecase.StockUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(applyBatch *inventory.ApplyBatchUseCase, voucher *inventory.VoucherUseCase, stockUC *usecase.StockUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{applyBatch: applyBatch, voucher: voucher, stockUC: stockUC}
}

// Submit godoc
// @Summary      Aplicar un lote de ajustes de inventario
// @Description  Aplica todo el lote atómicamente: todas las líneas o ninguna.
// @Tags         adjustments
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID de la tienda"
// @Param        body  body  dto.SubmitAdjustmentsRequest  true  "Líneas del lote"
// @Success      201   {object}  dto.SubmitAdjustmentsResponse
// @Failure      400   {object}  dto.SubmitAdjustmentsResponse
// @Failure      404   {object}  dto.SubmitAdjustmentsResponse
// @Failure      409   {object}  dto.SubmitAdjustmentsResponse
// @Router       /api/stores/{id}/adjustments [post]
func (h *AdjustmentHandler) Submit(c *fiber.Ctx) error {
	storeID, err := c.ParamsInt("id")
	if err != nil || storeID <= 0 {
		return rejectSubmit(c, fiber.StatusBadRequest, "store_id", "id de tienda inválido")
	}
	var in dto.SubmitAdjustmentsRequest
	if err := c.BodyParser(&in); err != nil {
		return rejectSubmit(c, fiber.StatusBadRequest, "records", "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return rejectSubmit(c, fiber.StatusBadRequest, "records", validationMessage(err))
	}

	records := make([]adjustment.Record, 0, len(in.Records))
	for _, r := range in.Records {
		records = append(records, adjustment.Record{
			ProductID:      r.ProductID,
			StockID:        r.StockID,
			AdjustmentType: r.AdjustmentType,
			Quantity:       r.Quantity,
			Reason:         r.Reason,
			Notes:          r.Notes,
		})
	}

	batch, err := h.applyBatch.Apply(c.Context(), int64(storeID), records)
	if err != nil {
		var be *inventory.BatchError
		if errors.As(err, &be) {
			return rejectSubmit(c, submitStatus(be), be.Field, be.Message)
		}
		return rejectSubmit(c, fiber.StatusInternalServerError, "", err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitAdjustmentsResponse{OK: true, BatchID: batch.ID})
}

// submitStatus mapea el sentinel del BatchError al status HTTP.
func submitStatus(be *inventory.BatchError) int {
	switch {
	case errors.Is(be, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(be, domain.ErrDuplicate), errors.Is(be, domain.ErrInsufficientStock):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func rejectSubmit(c *fiber.Ctx, status int, field, message string) error {
	return c.Status(status).JSON(dto.SubmitAdjustmentsResponse{
		OK:    false,
		Error: &dto.FieldError{Field: field, Message: message},
	})
}

// ListBatches godoc
// @Summary      Lotes aplicados de una tienda
// @Tags         adjustments
// @Produce      json
// @Param        id  path  int  true  "ID de la tienda"
// @Success      200  {array}   dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{id}/batches [get]
func (h *AdjustmentHandler) ListBatches(c *fiber.Ctx) error {
	storeID, err := c.ParamsInt("id")
	if err != nil || storeID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de tienda inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.stockUC.ListBatches(int64(storeID), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetBatch godoc
// @Summary      Cabecera de un lote aplicado
// @Tags         adjustments
// @Produce      json
// @Param        id  path  string  true  "ID del lote (UUID)"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *AdjustmentHandler) GetBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	batch, err := h.stockUC.GetBatch(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if batch == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.JSON(batch)
}

// BatchMovements godoc
// @Summary      Líneas de un lote aplicado
// @Tags         adjustments
// @Produce      json
// @Param        id  path  string  true  "ID del lote (UUID)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/batches/{id}/movements [get]
func (h *AdjustmentHandler) BatchMovements(c *fiber.Ctx) error {
	id := c.Params("id")
	list, err := h.stockUC.BatchMovements(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Voucher godoc
// @Summary      Comprobante PDF de un lote aplicado
// @Tags         adjustments
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del lote (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/voucher [get]
func (h *AdjustmentHandler) Voucher(c *fiber.Ctx) error {
	id := c.Params("id")
	pdfBytes, err := h.voucher.Generate(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ajuste-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
