package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

// CreditNoteRepository define el puerto de persistencia para CreditNote.
type CreditNoteRepository interface {
	Create(ctx context.Context, note *entity.CreditNote) error
	CreateLine(ctx context.Context, line *entity.CreditNoteLine) error
	GetByID(ctx context.Context, id string) (*entity.CreditNote, error)
	GetLinesByCreditNoteID(ctx context.Context, creditNoteID string) ([]*entity.CreditNoteLine, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.CreditNote, error)

	// SumCreditedQuantities devuelve, por ID de línea de factura, la cantidad
	// ya acreditada en notas anteriores (para acotar lo que queda acreditable).
	SumCreditedQuantities(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error)
}
