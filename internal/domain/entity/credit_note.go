package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditNote representa una nota crédito emitida contra una factura.
// Reason es el motivo global obligatorio; cada línea puede traer el suyo.
type CreditNote struct {
	ID             string
	CompanyID      string
	InvoiceID      string
	Number         string
	ResolvedPrefix string
	Sequence       int64
	Reason         string
	Date           time.Time
	Taxable        decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreditNoteLine es la porción acreditada de una línea de la factura
// original. Los montos salen de la asignación proporcional del motor
// financiero; Reason vacío cae al motivo global de la nota.
type CreditNoteLine struct {
	ID             string
	CreditNoteID   string
	InvoiceLineID  string
	Quantity       decimal.Decimal
	Reason         string
	CreditGross    decimal.Decimal
	CreditDiscount decimal.Decimal
	CreditTaxable  decimal.Decimal
	CreditTax      decimal.Decimal
	CreditTotal    decimal.Decimal
}
