package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio del catálogo de la empresa.
// Price y TaxRate son los valores por defecto con los que se prellenan las
// líneas de pedido y factura; el usuario puede editarlos línea a línea.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Unit        string          // unidad de venta (ej: "unidad", "hora", "kg")
	Price       decimal.Decimal // precio de venta unitario
	TaxRate     decimal.Decimal // porcentaje de impuesto (ej: 19 = 19%)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
