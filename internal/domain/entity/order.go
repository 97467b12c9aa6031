package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. Un pedido confirmado puede convertirse en borrador de
// factura exactamente una vez; al hacerlo pasa a invoiced.
const (
	OrderStatusDraft     = "draft"
	OrderStatusConfirmed = "confirmed"
	OrderStatusInvoiced  = "invoiced"
)

// Order representa la cabecera de un pedido de venta.
// Los totales se recalculan siempre desde las líneas con el motor financiero;
// se persisten solo como copia para listados.
type Order struct {
	ID        string
	CompanyID string
	ClientID  string
	Status    string // ver constantes OrderStatus*
	Date      time.Time
	Notes     string
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine representa una línea de pedido. Mismos campos de cálculo que una
// línea de factura: descuento en monto absoluto, impuesto en porcentaje.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string // opcional: línea libre sin producto de catálogo
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Discount    decimal.Decimal
}
