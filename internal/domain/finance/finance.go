// Package finance implementa el motor de cálculo financiero por línea:
// totales de factura (subtotal, descuento, impuesto, total) y asignación
// proporcional de crédito cuando se acredita parte de una línea.
//
// Es puro y síncrono: recibe valores, devuelve valores. La aritmética usa
// shopspring/decimal, el tipo de dinero de todo el sistema. Ningún input
// numérico finito produce error aquí: un descuento mayor al bruto de la
// línea da un gravable negativo en lugar de fallar (la política de negocio
// sobre ese caso pertenece a la capa de validación, no al motor).
package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line es una línea de factura tal como la edita el usuario.
// Discount es un monto absoluto en moneda que se resta antes de impuestos,
// no un porcentaje. TaxRate es porcentaje (20 significa 20%).
type Line struct {
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Discount    decimal.Decimal
}

// LineTotal son los montos derivados de una sola línea.
type LineTotal struct {
	Taxable   decimal.Decimal // bruto - descuento (puede ser negativo)
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// InvoiceTotals son los agregados de una factura. Se recalculan en cada
// edición a partir de las líneas, nunca se almacenan de forma independiente.
type InvoiceTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLineTotal calcula los montos de una línea:
//
//	taxable = quantity × unitPrice − discount
//	tax     = taxable × taxRate / 100
//	total   = taxable + tax
func ComputeLineTotal(line Line) LineTotal {
	gross := line.Quantity.Mul(line.UnitPrice)
	taxable := gross.Sub(line.Discount)
	tax := taxable.Mul(line.TaxRate).Div(hundred)
	return LineTotal{
		Taxable:   taxable,
		TaxAmount: tax,
		Total:     taxable.Add(tax),
	}
}

// ComputeInvoiceTotals agrega una secuencia ordenada de líneas. El impuesto
// se suma línea por línea — nunca se calcula sobre el subtotal ya sumado —
// para que el redondeo coincida con el detalle itemizado que ve el usuario.
// Una secuencia vacía produce todos los totales en cero.
func ComputeInvoiceTotals(lines []Line) InvoiceTotals {
	var t InvoiceTotals
	for _, line := range lines {
		lt := ComputeLineTotal(line)
		t.Subtotal = t.Subtotal.Add(line.Quantity.Mul(line.UnitPrice))
		t.Discount = t.Discount.Add(line.Discount)
		t.Tax = t.Tax.Add(lt.TaxAmount)
	}
	t.Total = t.Subtotal.Sub(t.Discount).Add(t.Tax)
	return t
}
