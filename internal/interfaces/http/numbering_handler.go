package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/application/dto"
)

// NumberingHandler pantalla de ajustes de numeración: configuración vigente,
// guardado validado, previsualización en vivo y ayuda de tokens.
type NumberingHandler struct {
	uc *billing.NumberingUseCase
}

// NewNumberingHandler construye el handler de numeración.
func NewNumberingHandler(uc *billing.NumberingUseCase) *NumberingHandler {
	return &NumberingHandler{uc: uc}
}

// GetSettings godoc
// @Summary      Configuración de numeración vigente
// @Tags         numbering
// @Produce      json
// @Param        document_type  path  string  true  "invoice|credit_note"
// @Success      200  {object}  dto.NumberingSettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/numbering/{document_type} [get]
func (h *NumberingHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.uc.GetSettings(c.Context(), GetCompanyID(c), c.Params("document_type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// SaveSettings godoc
// @Summary      Guardar configuración de numeración
// @Description  El guardado se rechaza con 422 mientras la previsualización reporte errores.
// @Tags         numbering
// @Accept       json
// @Produce      json
// @Param        document_type  path  string  true  "invoice|credit_note"
// @Param        body  body  dto.NumberingSettingsRequest  true  "configuración"
// @Success      200  {object}  dto.NumberingSettingsResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/numbering/{document_type} [put]
func (h *NumberingHandler) SaveSettings(c *fiber.Ctx) error {
	var in dto.NumberingSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	settings, err := h.uc.SaveSettings(c.Context(), GetCompanyID(c), c.Params("document_type"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// Preview godoc
// @Summary      Previsualizar un número sin persistir nada
// @Tags         numbering
// @Accept       json
// @Produce      json
// @Param        document_type  path  string  true  "invoice|credit_note"
// @Param        body  body  dto.NumberingPreviewRequest  true  "configuración en borrador + overrides"
// @Success      200  {object}  dto.PreviewResponse
// @Router       /api/numbering/{document_type}/preview [post]
func (h *NumberingHandler) Preview(c *fiber.Ctx) error {
	var in dto.NumberingPreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Preview(c.Context(), GetCompanyID(c), c.Params("document_type"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// Tokens godoc
// @Summary      Vocabulario de tokens disponible en las plantillas
// @Tags         numbering
// @Produce      json
// @Success      200  {array}  numbering.TokenHelp
// @Router       /api/numbering/tokens [get]
func (h *NumberingHandler) Tokens(c *fiber.Ctx) error {
	return c.JSON(h.uc.Tokens())
}
