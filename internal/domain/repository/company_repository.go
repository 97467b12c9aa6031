package repository

import (
	"context"

	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// List lista todas las empresas (consola super-admin).
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	// UpdateStatus cambia el estado del tenant (active, suspended, inactive).
	UpdateStatus(ctx context.Context, id, status string) error
}
