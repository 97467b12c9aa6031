package finance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gestionpro/gestion-api/internal/domain/finance"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func line(qty, price, taxRate, discount string) finance.Line {
	return finance.Line{
		Quantity:  dec(qty),
		UnitPrice: dec(price),
		TaxRate:   dec(taxRate),
		Discount:  dec(discount),
	}
}

// assertDecEqual compara decimales por valor (no por representación).
func assertDecEqual(t *testing.T, expected string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(got), "%s: esperado %s, obtenido %s", msg, expected, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeLineTotal
// ──────────────────────────────────────────────────────────────────────────────

// TestComputeLineTotal_CasoBase: 10 × 5 − 10 de descuento = 40 gravable,
// IVA 20% = 8, total 48.
func TestComputeLineTotal_CasoBase(t *testing.T) {
	lt := finance.ComputeLineTotal(line("10", "5", "20", "10"))

	assertDecEqual(t, "40", lt.Taxable, "gravable")
	assertDecEqual(t, "8", lt.TaxAmount, "impuesto")
	assertDecEqual(t, "48", lt.Total, "total")
}

// TestComputeLineTotal_DescuentoMayorAlBruto: el gravable puede quedar
// negativo; el motor no acota ni falla (la política es de la capa de
// validación, no del cálculo).
func TestComputeLineTotal_DescuentoMayorAlBruto(t *testing.T) {
	lt := finance.ComputeLineTotal(line("1", "10", "19", "25"))

	assertDecEqual(t, "-15", lt.Taxable, "gravable negativo permitido")
	assertDecEqual(t, "-2.85", lt.TaxAmount, "impuesto negativo proporcional")
	assertDecEqual(t, "-17.85", lt.Total, "total negativo")
}

func TestComputeLineTotal_CantidadCero(t *testing.T) {
	lt := finance.ComputeLineTotal(line("0", "99.99", "19", "0"))

	assertDecEqual(t, "0", lt.Taxable, "gravable")
	assertDecEqual(t, "0", lt.TaxAmount, "impuesto")
	assertDecEqual(t, "0", lt.Total, "total")
}

// TestComputeLineTotal_Determinista: propiedad de función pura.
func TestComputeLineTotal_Determinista(t *testing.T) {
	l := line("3.5", "12.34", "19", "1.1")
	assert.Equal(t, finance.ComputeLineTotal(l), finance.ComputeLineTotal(l))
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeInvoiceTotals
// ──────────────────────────────────────────────────────────────────────────────

// TestComputeInvoiceTotals_SecuenciaVacia: todos los totales en cero.
func TestComputeInvoiceTotals_SecuenciaVacia(t *testing.T) {
	tot := finance.ComputeInvoiceTotals(nil)

	assertDecEqual(t, "0", tot.Subtotal, "subtotal")
	assertDecEqual(t, "0", tot.Discount, "descuento")
	assertDecEqual(t, "0", tot.Tax, "impuesto")
	assertDecEqual(t, "0", tot.Total, "total")
}

// TestComputeInvoiceTotals_ImpuestoPorLinea: el impuesto agregado debe ser la
// suma de los impuestos por línea con tasas distintas, nunca
// (subtotal − descuento) × tasa promedio.
func TestComputeInvoiceTotals_ImpuestoPorLinea(t *testing.T) {
	lines := []finance.Line{
		line("2", "100", "19", "0"),  // gravable 200, IVA 38
		line("1", "50", "5", "10"),   // gravable 40,  IVA 2
		line("3", "10", "0", "0"),    // gravable 30,  IVA 0
	}
	tot := finance.ComputeInvoiceTotals(lines)

	assertDecEqual(t, "280", tot.Subtotal, "subtotal = Σ qty×precio")
	assertDecEqual(t, "10", tot.Discount, "descuento = Σ descuentos")
	assertDecEqual(t, "40", tot.Tax, "impuesto = Σ impuestos por línea")
	assertDecEqual(t, "310", tot.Total, "total = (subtotal − descuento) + impuesto")
}

// TestComputeInvoiceTotals_Aditividad: para cualquier secuencia de líneas, el
// total de la factura es la suma de los totales por línea.
func TestComputeInvoiceTotals_Aditividad(t *testing.T) {
	cases := [][]finance.Line{
		{line("1", "1", "0", "0")},
		{line("10", "5", "20", "10"), line("3", "7.77", "19", "0.33")},
		{line("0", "9", "19", "0"), line("2", "4.5", "5", "20"), line("1.5", "8", "16", "1")},
		{line("1", "10", "19", "25")}, // gravable negativo incluido
	}
	for _, lines := range cases {
		sum := decimal.Zero
		for _, l := range lines {
			sum = sum.Add(finance.ComputeLineTotal(l).Total)
		}
		tot := finance.ComputeInvoiceTotals(lines)

		diff := tot.Total.Sub(sum).Abs()
		assert.True(t, diff.LessThanOrEqual(dec("0.000000001")),
			"aditividad: total %s vs suma de líneas %s", tot.Total, sum)
	}
}
