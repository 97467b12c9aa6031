package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/gestion-api/internal/domain"
	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de una factura. El índice único sobre
// (company_id, number) detecta colisiones de numeración manual.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	const q = `
		INSERT INTO invoices (id, company_id, client_id, order_id, number,
			resolved_prefix, sequence, status, date, notes,
			subtotal, discount, tax, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, q,
		invoice.ID, invoice.CompanyID, invoice.ClientID, nullIfEmpty(invoice.OrderID),
		invoice.Number, invoice.ResolvedPrefix, invoice.Sequence,
		invoice.Status, invoice.Date, nullIfEmpty(invoice.Notes),
		invoice.Subtotal, invoice.Discount, invoice.Tax, invoice.Total,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura con sus montos derivados.
func (r *InvoiceRepo) CreateLine(ctx context.Context, line *entity.InvoiceLine) error {
	const q = `
		INSERT INTO invoice_lines (id, invoice_id, product_id, description, quantity,
			unit, unit_price, tax_rate, discount, taxable, tax_amount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, q,
		line.ID, line.InvoiceID, nullIfEmpty(line.ProductID), line.Description,
		line.Quantity, line.Unit, line.UnitPrice, line.TaxRate, line.Discount,
		line.Taxable, line.TaxAmount, line.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	invoice, err := scanInvoice(r.q.QueryRow(ctx, selectInvoice+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return invoice, nil
}

// GetByIDForUpdate obtiene la cabecera bloqueando la fila hasta el fin de la
// transacción. Serializa las notas crédito concurrentes contra la misma
// factura: la suma de cantidades ya acreditadas se calcula bajo el lock.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	invoice, err := scanInvoice(r.q.QueryRow(ctx, selectInvoice+` WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return invoice, nil
}

// GetLinesByInvoiceID obtiene las líneas de una factura.
func (r *InvoiceRepo) GetLinesByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	const q = `
		SELECT id, invoice_id, product_id, description, quantity, unit,
			unit_price, tax_rate, discount, taxable, tax_amount, total
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		var productID *string
		err := rows.Scan(&l.ID, &l.InvoiceID, &productID, &l.Description,
			&l.Quantity, &l.Unit, &l.UnitPrice, &l.TaxRate, &l.Discount,
			&l.Taxable, &l.TaxAmount, &l.Total)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		l.ProductID = derefStr(productID)
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByCompany lista las facturas de la empresa, más recientes primero.
func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, selectInvoice+` WHERE company_id = $1 ORDER BY date DESC, sequence DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, invoice)
	}
	return list, rows.Err()
}

const selectInvoice = `
	SELECT id, company_id, client_id, order_id, number, resolved_prefix, sequence,
		status, date, notes, subtotal, discount, tax, total, created_at, updated_at
	FROM invoices`

func scanInvoice(row pgxScanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var orderID, notes *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.ClientID, &orderID,
		&inv.Number, &inv.ResolvedPrefix, &inv.Sequence,
		&inv.Status, &inv.Date, &notes,
		&inv.Subtotal, &inv.Discount, &inv.Tax, &inv.Total,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.OrderID = derefStr(orderID)
	inv.Notes = derefStr(notes)
	return &inv, nil
}
