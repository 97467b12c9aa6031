package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestionpro/gestion-api/internal/domain/entity"
	"github.com/gestionpro/gestion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de un pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	const q = `
		INSERT INTO orders (id, company_id, client_id, status, date, notes,
			subtotal, discount, tax, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, q,
		order.ID, order.CompanyID, order.ClientID, order.Status, order.Date,
		nullIfEmpty(order.Notes),
		order.Subtotal, order.Discount, order.Tax, order.Total,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de pedido.
func (r *OrderRepo) CreateLine(ctx context.Context, line *entity.OrderLine) error {
	const q = `
		INSERT INTO order_lines (id, order_id, product_id, description, quantity,
			unit, unit_price, tax_rate, discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, q,
		line.ID, line.OrderID, nullIfEmpty(line.ProductID), line.Description,
		line.Quantity, line.Unit, line.UnitPrice, line.TaxRate, line.Discount,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	order, err := scanOrder(r.q.QueryRow(ctx, selectOrder+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// GetLinesByOrderID obtiene las líneas de un pedido.
func (r *OrderRepo) GetLinesByOrderID(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	const q = `
		SELECT id, order_id, product_id, description, quantity, unit, unit_price, tax_rate, discount
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		var productID *string
		err := rows.Scan(&l.ID, &l.OrderID, &productID, &l.Description,
			&l.Quantity, &l.Unit, &l.UnitPrice, &l.TaxRate, &l.Discount)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		l.ProductID = derefStr(productID)
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByCompany lista los pedidos de la empresa, más recientes primero.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, selectOrder+` WHERE company_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, order)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado con compare-and-set sobre el estado esperado.
// Devuelve 0 filas cuando el pedido no existe o ya cambió de estado; eso es lo
// que hace segura la conversión única de pedido a factura bajo concurrencia.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, expected, next string) (int64, error) {
	const q = `
		UPDATE orders
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, q, id, expected, next)
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected(), nil
}

const selectOrder = `
	SELECT id, company_id, client_id, status, date, notes,
		subtotal, discount, tax, total, created_at, updated_at
	FROM orders`

func scanOrder(row pgxScanner) (*entity.Order, error) {
	var o entity.Order
	var notes *string
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.ClientID, &o.Status, &o.Date, &notes,
		&o.Subtotal, &o.Discount, &o.Tax, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Notes = derefStr(notes)
	return &o, nil
}
