package entity

import "time"

// Client representa un cliente de la empresa (facturación y pedidos).
type Client struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // identificación tributaria, única por empresa
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
