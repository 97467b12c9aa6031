package entity

import "time"

// Roles válidos para User. superadmin es transversal a todos los tenants
// (consola de administración); los demás pertenecen a una empresa.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleContable   = "contable"
	RoleVendedor   = "vendedor"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
