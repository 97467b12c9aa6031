package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/application/dto"
)

// CreditNoteHandler emisión y consulta de notas crédito.
type CreditNoteHandler struct {
	uc *billing.CreditNoteUseCase
}

// NewCreditNoteHandler construye el handler de notas crédito.
func NewCreditNoteHandler(uc *billing.CreditNoteUseCase) *CreditNoteHandler {
	return &CreditNoteHandler{uc: uc}
}

// Create godoc
// @Summary      Emitir nota crédito contra una factura
// @Tags         credit-notes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de factura"
// @Param        body  body  dto.CreateCreditNoteRequest  true  "reason, lines"
// @Success      201   {object}  dto.CreditNoteResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/credit-notes [post]
func (h *CreditNoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCreditNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	note, err := h.uc.CreateCreditNote(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// ListByInvoice godoc
// @Summary      Listar notas crédito de una factura
// @Tags         credit-notes
// @Produce      json
// @Param        id  path  string  true  "ID de factura"
// @Success      200  {array}  dto.CreditNoteResponse
// @Router       /api/invoices/{id}/credit-notes [get]
func (h *CreditNoteHandler) ListByInvoice(c *fiber.Ctx) error {
	notes, err := h.uc.ListByInvoice(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notes)
}

// GetByID godoc
// @Summary      Obtener nota crédito con detalle
// @Tags         credit-notes
// @Produce      json
// @Param        id  path  string  true  "ID de nota crédito"
// @Success      200  {object}  dto.CreditNoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit-notes/{id} [get]
func (h *CreditNoteHandler) GetByID(c *fiber.Ctx) error {
	note, err := h.uc.GetCreditNote(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(note)
}
