package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusVoided = "voided"
)

// Invoice representa la cabecera de una factura emitida a un cliente.
// Number es el número completo ya renderizado por el motor de numeración;
// Sequence y ResolvedPrefix se guardan aparte para auditoría y reimpresión.
type Invoice struct {
	ID             string
	CompanyID      string
	ClientID       string
	OrderID        string // opcional: pedido de origen
	Number         string
	ResolvedPrefix string
	Sequence       int64
	Status         string // ver constantes InvoiceStatus*
	Date           time.Time
	Notes          string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvoiceLine representa una línea de detalle de una factura. Los montos
// derivados (Taxable, TaxAmount, Total) siempre salen del motor financiero.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string // opcional
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje (19 = 19%)
	Discount    decimal.Decimal // monto absoluto antes de impuestos
	Taxable     decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
}
