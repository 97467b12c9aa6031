package entity

import "time"

// Supplier representa un proveedor de la empresa.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // única por empresa
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
