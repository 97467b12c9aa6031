package repository

import (
	"context"

	"github.com/gestionpro/gestion-api/internal/domain/entity"
)

// AllocatedNumber es el resultado de la asignación atómica de un consecutivo:
// el valor asignado más la instantánea de configuración con la que debe
// renderizarse el número.
type AllocatedNumber struct {
	Sequence int64
	Config   entity.NumberingConfig
}

// NumberingConfigRepository define el puerto de persistencia para la
// configuración de numeración por empresa y tipo de documento.
type NumberingConfigRepository interface {
	Upsert(ctx context.Context, cfg *entity.NumberingConfig) error
	GetByCompanyAndType(ctx context.Context, companyID, documentType string) (*entity.NumberingConfig, error)

	// AllocateNext es la operación crítica de numeración: en un solo UPDATE
	// atómico incrementa next_sequence — o lo reinicia en 1 si periodKey
	// cambió desde la última asignación — y devuelve el valor asignado.
	// Es el punto único donde el contador compartido muta bajo concurrencia.
	AllocateNext(ctx context.Context, companyID, documentType, periodKey string) (*AllocatedNumber, error)
}
