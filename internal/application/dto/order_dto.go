package dto

import "github.com/shopspring/decimal"

// LineRequest línea de pedido o factura tal como llega del cliente.
// Discount es monto absoluto antes de impuestos; TaxRate porcentaje.
// Si ProductID va vacío la línea es libre (description obligatoria); si va
// con producto, unidad/precio/impuesto vacíos se prellenan del catálogo.
type LineRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Discount    decimal.Decimal `json:"discount"`
}

// LineResponse línea con sus montos derivados.
type LineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Discount    decimal.Decimal `json:"discount"`
	Taxable     decimal.Decimal `json:"taxable"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	ClientID string        `json:"client_id"`
	Date     string        `json:"date,omitempty"` // YYYY-MM-DD; hoy si va vacío
	Notes    string        `json:"notes,omitempty"`
	Lines    []LineRequest `json:"lines"`
}

// OrderResponse pedido con detalle y totales.
type OrderResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	ClientID  string          `json:"client_id"`
	Status    string          `json:"status"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Lines     []LineResponse  `json:"lines,omitempty"`
}
