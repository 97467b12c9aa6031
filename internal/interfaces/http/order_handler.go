package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/gestion-api/internal/application/billing"
	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/application/orders"
)

// OrderHandler pedidos de venta y su conversión a factura.
type OrderHandler struct {
	uc        *orders.OrderUseCase
	invoiceUC *billing.InvoiceUseCase
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(uc *orders.OrderUseCase, invoiceUC *billing.InvoiceUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, invoiceUC: invoiceUC}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "client_id, lines"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.CreateOrder(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.ListOrders(c.Context(), GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Confirm godoc
// @Summary      Confirmar pedido (draft → confirmed)
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "ID de pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	order, err := h.uc.ConfirmOrder(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// ConvertToInvoice godoc
// @Summary      Convertir pedido confirmado en factura (una sola vez)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de pedido"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/invoice [post]
func (h *OrderHandler) ConvertToInvoice(c *fiber.Ctx) error {
	// Body opcional: {"manual_sequence": N} cuando la configuración lo permite.
	var in struct {
		ManualSequence *int64 `json:"manual_sequence,omitempty"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	invoice, err := h.invoiceUC.ConvertOrderToInvoice(c.Context(), GetCompanyID(c), c.Params("id"), in.ManualSequence)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}
