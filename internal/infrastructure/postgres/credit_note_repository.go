package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

var _ repository.CreditNoteRepository = (*CreditNoteRepo)(nil)

// CreditNoteRepo implementación de CreditNoteRepository (usable con pool o tx).
type CreditNoteRepo struct {
	q Querier
}

// NewCreditNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditNoteRepository(q Querier) *CreditNoteRepo {
	return &CreditNoteRepo{q: q}
}

// Create persiste la cabecera de una nota crédito.
func (r *CreditNoteRepo) Create(ctx context.Context, note *entity.CreditNote) error {
	const q = `
		INSERT INTO credit_notes (id, company_id, invoice_id, number,
			resolved_prefix, sequence, reason, date, taxable, tax, total,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, q,
		note.ID, note.CompanyID, note.InvoiceID, note.Number,
		note.ResolvedPrefix, note.Sequence, note.Reason, note.Date,
		note.Taxable, note.Tax, note.Total,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert credit note: %w", err)
	}
	return nil
}

// CreateLine persiste una línea acreditada con su asignación proporcional.
func (r *CreditNoteRepo) CreateLine(ctx context.Context, line *entity.CreditNoteLine) error {
	const q = `
		INSERT INTO credit_note_lines (id, credit_note_id, invoice_line_id,
			quantity, reason, credit_gross, credit_discount, credit_taxable,
			credit_tax, credit_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, q,
		line.ID, line.CreditNoteID, line.InvoiceLineID,
		line.Quantity, nullIfEmpty(line.Reason),
		line.CreditGross, line.CreditDiscount, line.CreditTaxable,
		line.CreditTax, line.CreditTotal,
	)
	if err != nil {
		return fmt.Errorf("insert credit note line: %w", err)
	}
	return nil
}

// GetByID obtiene una nota crédito por ID.
func (r *CreditNoteRepo) GetByID(ctx context.Context, id string) (*entity.CreditNote, error) {
	note, err := scanCreditNote(r.q.QueryRow(ctx, selectCreditNote+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit note: %w", err)
	}
	return note, nil
}

// GetLinesByCreditNoteID obtiene las líneas de una nota crédito.
func (r *CreditNoteRepo) GetLinesByCreditNoteID(ctx context.Context, creditNoteID string) ([]*entity.CreditNoteLine, error) {
	const q = `
		SELECT id, credit_note_id, invoice_line_id, quantity, reason,
			credit_gross, credit_discount, credit_taxable, credit_tax, credit_total
		FROM credit_note_lines
		WHERE credit_note_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, q, creditNoteID)
	if err != nil {
		return nil, fmt.Errorf("list credit note lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.CreditNoteLine
	for rows.Next() {
		var l entity.CreditNoteLine
		var reason *string
		err := rows.Scan(&l.ID, &l.CreditNoteID, &l.InvoiceLineID, &l.Quantity, &reason,
			&l.CreditGross, &l.CreditDiscount, &l.CreditTaxable, &l.CreditTax, &l.CreditTotal)
		if err != nil {
			return nil, fmt.Errorf("scan credit note line: %w", err)
		}
		l.Reason = derefStr(reason)
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByInvoice lista las notas crédito emitidas contra una factura.
func (r *CreditNoteRepo) ListByInvoice(ctx context.Context, invoiceID string) ([]*entity.CreditNote, error) {
	rows, err := r.q.Query(ctx, selectCreditNote+` WHERE invoice_id = $1 ORDER BY date, sequence`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list credit notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditNote
	for rows.Next() {
		note, err := scanCreditNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credit note: %w", err)
		}
		list = append(list, note)
	}
	return list, rows.Err()
}

// SumCreditedQuantities agrupa por línea de factura la cantidad ya acreditada
// en todas las notas anteriores de esa factura.
func (r *CreditNoteRepo) SumCreditedQuantities(ctx context.Context, invoiceID string) (map[string]decimal.Decimal, error) {
	const q = `
		SELECT l.invoice_line_id, COALESCE(SUM(l.quantity), 0)
		FROM credit_note_lines l
		JOIN credit_notes n ON n.id = l.credit_note_id
		WHERE n.invoice_id = $1
		GROUP BY l.invoice_line_id`
	rows, err := r.q.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("sum credited quantities: %w", err)
	}
	defer rows.Close()
	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var lineID string
		var qty decimal.Decimal
		if err := rows.Scan(&lineID, &qty); err != nil {
			return nil, fmt.Errorf("scan credited quantity: %w", err)
		}
		sums[lineID] = qty
	}
	return sums, rows.Err()
}

const selectCreditNote = `
	SELECT id, company_id, invoice_id, number, resolved_prefix, sequence,
		reason, date, taxable, tax, total, created_at, updated_at
	FROM credit_notes`

func scanCreditNote(row pgxScanner) (*entity.CreditNote, error) {
	var n entity.CreditNote
	err := row.Scan(
		&n.ID, &n.CompanyID, &n.InvoiceID, &n.Number, &n.ResolvedPrefix, &n.Sequence,
		&n.Reason, &n.Date, &n.Taxable, &n.Tax, &n.Total,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
