package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices.
// ManualSequence solo se acepta si la configuración de numeración de la
// empresa tiene allow_manual_override; de lo contrario la petición falla.
type CreateInvoiceRequest struct {
	ClientID       string        `json:"client_id"`
	Date           string        `json:"date,omitempty"` // YYYY-MM-DD; hoy si va vacío
	Notes          string        `json:"notes,omitempty"`
	ManualSequence *int64        `json:"manual_sequence,omitempty"`
	Lines          []LineRequest `json:"lines"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	ClientID       string          `json:"client_id"`
	ClientName     string          `json:"client_name,omitempty"`
	OrderID        string          `json:"order_id,omitempty"`
	Number         string          `json:"number"`
	ResolvedPrefix string          `json:"resolved_prefix"`
	Sequence       int64           `json:"sequence"`
	Status         string          `json:"status"`
	Date           string          `json:"date"`
	Notes          string          `json:"notes,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Lines          []LineResponse  `json:"lines,omitempty"`
}

// CreditNoteLineRequest selección de una línea de factura a acreditar.
type CreditNoteLineRequest struct {
	InvoiceLineID string          `json:"invoice_line_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason,omitempty"` // cae al motivo global si va vacío
}

// CreateCreditNoteRequest body para POST /api/invoices/:id/credit-notes.
type CreateCreditNoteRequest struct {
	Reason string                  `json:"reason"`
	Date   string                  `json:"date,omitempty"`
	Lines  []CreditNoteLineRequest `json:"lines"`
}

// CreditNoteLineResponse línea acreditada con su asignación proporcional.
type CreditNoteLineResponse struct {
	ID             string          `json:"id"`
	InvoiceLineID  string          `json:"invoice_line_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reason         string          `json:"reason,omitempty"`
	CreditGross    decimal.Decimal `json:"credit_gross"`
	CreditDiscount decimal.Decimal `json:"credit_discount"`
	CreditTaxable  decimal.Decimal `json:"credit_taxable"`
	CreditTax      decimal.Decimal `json:"credit_tax"`
	CreditTotal    decimal.Decimal `json:"credit_total"`
}

// CreditNoteResponse nota crédito con detalle.
type CreditNoteResponse struct {
	ID             string                   `json:"id"`
	CompanyID      string                   `json:"company_id"`
	InvoiceID      string                   `json:"invoice_id"`
	Number         string                   `json:"number"`
	ResolvedPrefix string                   `json:"resolved_prefix"`
	Sequence       int64                    `json:"sequence"`
	Reason         string                   `json:"reason"`
	Date           string                   `json:"date"`
	Taxable        decimal.Decimal          `json:"taxable"`
	Tax            decimal.Decimal          `json:"tax"`
	Total          decimal.Decimal          `json:"total"`
	Lines          []CreditNoteLineResponse `json:"lines,omitempty"`
}
