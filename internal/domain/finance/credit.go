package finance

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de composición de una nota crédito.
var (
	ErrReasonRequired  = errors.New("la nota crédito requiere un motivo no vacío")
	ErrNothingSelected = errors.New("la nota crédito requiere al menos una línea seleccionada con cantidad positiva")
)

// CreditAllocation es la porción proporcional de una línea original que se
// atribuye a una nota crédito.
type CreditAllocation struct {
	Quantity       decimal.Decimal // cantidad efectiva acreditada (ya acotada)
	CreditGross    decimal.Decimal
	CreditDiscount decimal.Decimal
	CreditTaxable  decimal.Decimal
	CreditTax      decimal.Decimal
	CreditTotal    decimal.Decimal
}

// CreditSelection es una línea candidata en el diálogo de nota crédito:
// la línea original, la cantidad pedida, si está marcada y su motivo opcional.
type CreditSelection struct {
	Line     Line
	Quantity decimal.Decimal
	Selected bool
	Reason   string
}

// ComputeCreditAllocation reparte proporcionalmente el descuento y el
// impuesto de la línea original según la fracción de cantidad acreditada.
//
// La cantidad pedida se acota a [0, original.Quantity]. El factor es
// requested/original.Quantity; con cantidad original cero el factor es cero
// (la línea no aporta nada acreditable) para que nunca aparezca una división
// por cero. El descuento se reparte por fracción de cantidad, no se vuelve a
// derivar del bruto acreditado: así no se cuenta doble cuando el precio
// unitario difiere del precio de catálogo.
func ComputeCreditAllocation(original Line, requestedQuantity decimal.Decimal) CreditAllocation {
	qty := requestedQuantity
	if qty.IsNegative() {
		qty = decimal.Zero
	}
	if qty.GreaterThan(original.Quantity) {
		qty = original.Quantity
	}

	factor := decimal.Zero
	if original.Quantity.IsPositive() {
		factor = qty.Div(original.Quantity)
	}

	gross := qty.Mul(original.UnitPrice)
	discount := original.Discount.Mul(factor)
	taxable := gross.Sub(discount)
	tax := taxable.Mul(original.TaxRate).Div(hundred)

	return CreditAllocation{
		Quantity:       qty,
		CreditGross:    gross,
		CreditDiscount: discount,
		CreditTaxable:  taxable,
		CreditTax:      tax,
		CreditTotal:    taxable.Add(tax),
	}
}

// SummarizeCreditNote suma el total acreditable de las selecciones. Una línea
// participa solo si está marcada Y su cantidad pedida es positiva: una
// cantidad escrita en una línea sin marcar no aporta al total.
func SummarizeCreditNote(selections []CreditSelection) decimal.Decimal {
	total := decimal.Zero
	for _, sel := range selections {
		if !sel.Selected || !sel.Quantity.IsPositive() {
			continue
		}
		total = total.Add(ComputeCreditAllocation(sel.Line, sel.Quantity).CreditTotal)
	}
	return total
}

// ValidateCreditNote decide si la nota crédito es enviable: motivo global no
// vacío (después de recortar espacios) y al menos una línea que participe.
// Los motivos por línea son opcionales y caen al motivo global.
func ValidateCreditNote(globalReason string, selections []CreditSelection) error {
	if strings.TrimSpace(globalReason) == "" {
		return ErrReasonRequired
	}
	for _, sel := range selections {
		if sel.Selected && sel.Quantity.IsPositive() {
			return nil
		}
	}
	return ErrNothingSelected
}
