package repository

import (
	"context"

	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetLinesByOrderID(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus cambia el estado solo si el estado actual coincide con
	// expected; devuelve cuántas filas cambió (0 = conflicto de estado).
	UpdateStatus(ctx context.Context, id, expected, next string) (int64, error)
}
