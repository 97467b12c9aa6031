package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestionpro/gestion-api/internal/application/dto"
	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/finance"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

// CreditNoteUseCase emite notas crédito contra facturas existentes y las
// consulta. La cantidad acreditada por línea nunca supera lo que queda
// acreditable después de las notas anteriores.
type CreditNoteUseCase struct {
	txRunner       TxRunner
	invoiceRepo    repository.InvoiceRepository
	creditNoteRepo repository.CreditNoteRepository
}

// NewCreditNoteUseCase construye el caso de uso.
func NewCreditNoteUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	creditNoteRepo repository.CreditNoteRepository,
) *CreditNoteUseCase {
	return &CreditNoteUseCase{
		txRunner:       txRunner,
		invoiceRepo:    invoiceRepo,
		creditNoteRepo: creditNoteRepo,
	}
}

// CreateCreditNote emite una nota crédito: valida el contrato de selección
// (motivo global obligatorio, al menos una línea participante), acota cada
// cantidad a lo que queda acreditable, reparte montos proporcionalmente y
// asigna el consecutivo de notas crédito.
//
// Todo ocurre en una transacción con la fila de la factura bloqueada
// (GetByIDForUpdate): dos notas concurrentes contra la misma factura se
// serializan, así la segunda ve lo que acreditó la primera y la suma de
// cantidades acreditadas nunca supera la cantidad original de la línea.
func (uc *CreditNoteUseCase) CreateCreditNote(ctx context.Context, companyID, invoiceID string, in dto.CreateCreditNoteRequest) (*dto.CreditNoteResponse, error) {
	date, err := parseDateOrToday(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var note *entity.CreditNote
	var noteLines []*entity.CreditNoteLine
	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		creditNoteRepo repository.CreditNoteRepository,
		_ repository.OrderRepository,
		numberingRepo repository.NumberingConfigRepository,
	) error {
		inv, err := invoiceRepo.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if inv.Status == entity.InvoiceStatusVoided {
			return domain.ErrConflict
		}

		invoiceLines, err := invoiceRepo.GetLinesByInvoiceID(ctx, invoiceID)
		if err != nil {
			return err
		}
		linesByID := make(map[string]*entity.InvoiceLine, len(invoiceLines))
		for _, l := range invoiceLines {
			linesByID[l.ID] = l
		}

		credited, err := creditNoteRepo.SumCreditedQuantities(ctx, invoiceID)
		if err != nil {
			return err
		}

		// Selecciones para el contrato de validación; toda línea del request
		// cuenta como marcada. Cantidades por encima de lo que queda
		// acreditable se acotan, no se rechazan.
		selections := make([]finance.CreditSelection, 0, len(in.Lines))
		for _, req := range in.Lines {
			original, ok := linesByID[req.InvoiceLineID]
			if !ok {
				return domain.ErrInvalidInput
			}
			remaining := original.Quantity.Sub(credited[original.ID])
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			qty := req.Quantity
			if qty.GreaterThan(remaining) {
				qty = remaining
			}
			selections = append(selections, finance.CreditSelection{
				Line:     financeLineFromInvoiceLine(original),
				Quantity: qty,
				Selected: true,
				Reason:   req.Reason,
			})
		}
		if err := finance.ValidateCreditNote(in.Reason, selections); err != nil {
			return err
		}

		now := time.Now()
		note = &entity.CreditNote{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			InvoiceID: invoiceID,
			Reason:    in.Reason,
			Date:      date,
			CreatedAt: now,
			UpdatedAt: now,
		}
		noteLines = nil
		for i, sel := range selections {
			if !sel.Quantity.IsPositive() {
				continue
			}
			alloc := finance.ComputeCreditAllocation(sel.Line, sel.Quantity)
			if !alloc.Quantity.IsPositive() {
				continue // nada queda acreditable en esta línea
			}
			// El motivo por línea es opcional y cae al motivo global.
			reason := strings.TrimSpace(sel.Reason)
			if reason == "" {
				reason = in.Reason
			}
			noteLines = append(noteLines, &entity.CreditNoteLine{
				ID:             uuid.New().String(),
				CreditNoteID:   note.ID,
				InvoiceLineID:  in.Lines[i].InvoiceLineID,
				Quantity:       alloc.Quantity,
				Reason:         reason,
				CreditGross:    alloc.CreditGross,
				CreditDiscount: alloc.CreditDiscount,
				CreditTaxable:  alloc.CreditTaxable,
				CreditTax:      alloc.CreditTax,
				CreditTotal:    alloc.CreditTotal,
			})
			note.Taxable = note.Taxable.Add(alloc.CreditTaxable)
			note.Tax = note.Tax.Add(alloc.CreditTax)
			note.Total = note.Total.Add(alloc.CreditTotal)
		}
		if len(noteLines) == 0 {
			return finance.ErrNothingSelected
		}

		number, resolvedPrefix, sequence, err := allocateDocumentNumber(
			ctx, numberingRepo, companyID, entity.DocumentTypeCreditNote, date, nil)
		if err != nil {
			return err
		}
		note.Number = number
		note.ResolvedPrefix = resolvedPrefix
		note.Sequence = sequence
		if err := creditNoteRepo.Create(ctx, note); err != nil {
			return err
		}
		for _, line := range noteLines {
			if err := creditNoteRepo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCreditNoteResponse(note, noteLines), nil
}

// GetCreditNote obtiene una nota crédito con su detalle.
func (uc *CreditNoteUseCase) GetCreditNote(ctx context.Context, companyID, id string) (*dto.CreditNoteResponse, error) {
	note, err := uc.creditNoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, domain.ErrNotFound
	}
	if note.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.creditNoteRepo.GetLinesByCreditNoteID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCreditNoteResponse(note, lines), nil
}

// ListByInvoice lista las notas crédito de una factura (sin detalle).
func (uc *CreditNoteUseCase) ListByInvoice(ctx context.Context, companyID, invoiceID string) ([]*dto.CreditNoteResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	notes, err := uc.creditNoteRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CreditNoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, toCreditNoteResponse(note, nil))
	}
	return out, nil
}

func financeLineFromInvoiceLine(l *entity.InvoiceLine) finance.Line {
	return finance.Line{
		ProductID:   l.ProductID,
		Description: l.Description,
		Quantity:    l.Quantity,
		Unit:        l.Unit,
		UnitPrice:   l.UnitPrice,
		TaxRate:     l.TaxRate,
		Discount:    l.Discount,
	}
}

func toCreditNoteResponse(note *entity.CreditNote, lines []*entity.CreditNoteLine) *dto.CreditNoteResponse {
	resp := &dto.CreditNoteResponse{
		ID:             note.ID,
		CompanyID:      note.CompanyID,
		InvoiceID:      note.InvoiceID,
		Number:         note.Number,
		ResolvedPrefix: note.ResolvedPrefix,
		Sequence:       note.Sequence,
		Reason:         note.Reason,
		Date:           note.Date.Format("2006-01-02"),
		Taxable:        note.Taxable,
		Tax:            note.Tax,
		Total:          note.Total,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.CreditNoteLineResponse{
			ID:             l.ID,
			InvoiceLineID:  l.InvoiceLineID,
			Quantity:       l.Quantity,
			Reason:         l.Reason,
			CreditGross:    l.CreditGross,
			CreditDiscount: l.CreditDiscount,
			CreditTaxable:  l.CreditTaxable,
			CreditTax:      l.CreditTax,
			CreditTotal:    l.CreditTotal,
		})
	}
	return resp
}
