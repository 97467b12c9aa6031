package billing

import (
	"context"

	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// facturación re-atados a ella. La asignación del consecutivo y la escritura
// del documento confirman o revierten juntas.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		creditNoteRepo repository.CreditNoteRepository,
		orderRepo repository.OrderRepository,
		numberingRepo repository.NumberingConfigRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		company *entity.Company,
		client *entity.Client,
		lines []*entity.InvoiceLine,
	) ([]byte, error)
}
