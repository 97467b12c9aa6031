package entity

import "time"

// Estados de una empresa (tenant).
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria de la empresa
	Address   string
	Phone     string
	Email     string
	Status    string // ver constantes CompanyStatus*
	CreatedAt time.Time
	UpdatedAt time.Time
}
