package repository

import (
	"context"

	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)

	// GetByIDForUpdate bloquea la fila de la factura hasta el fin de la
	// transacción en curso; las escrituras que dependen de lo ya acreditado
	// deben leer bajo este lock.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
}
