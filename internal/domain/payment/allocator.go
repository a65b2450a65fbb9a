// Package payment implementa la conciliación de pagos de una venta:
// cuadrar los montos entregados (cash, qr, other) contra el total,
// con soporte de venta a crédito (saldo pendiente por cobrar).
package payment

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
)

// Entry es una entrada de medio de pago dentro de un intento de checkout.
type Entry struct {
	Kind   string // cash | qr | other
	Amount decimal.Decimal
}

// Allocation es el resultado de conciliar pagos contra un total.
type Allocation struct {
	Paid    decimal.Decimal
	Pending decimal.Decimal
	Valid   bool
}

// Reconcile es una función pura: se puede invocar especulativamente desde la
// UI y volver a ejecutar idéntica al momento del commit. La aritmética es
// decimal exacta, sin tolerancia epsilon de flotantes.
//
// Reglas:
//   - entradas con monto negativo fallan con InvalidAmountError
//   - paid = suma de montos; pending = max(0, total - paid)
//   - crédito: válido si paid < total (queda saldo por cobrar)
//   - contado: válido si paid == total exacto
//   - lista vacía: paid = 0, válido solo a crédito con total > 0, o total == 0
func Reconcile(total decimal.Decimal, entries []Entry, isCredit bool) (Allocation, error) {
	paid := decimal.Zero
	for _, e := range entries {
		if e.Amount.IsNegative() {
			return Allocation{}, &domain.InvalidAmountError{Kind: e.Kind, Amount: e.Amount}
		}
		paid = paid.Add(e.Amount)
	}

	pending := total.Sub(paid)
	if pending.IsNegative() {
		pending = decimal.Zero
	}

	var valid bool
	if isCredit {
		// Una venta de total cero no necesita pagos, aun marcada a crédito.
		valid = paid.LessThan(total) || (total.IsZero() && paid.IsZero())
	} else {
		valid = paid.Equal(total)
	}

	return Allocation{Paid: paid, Pending: pending, Valid: valid}, nil
}
