package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de venta.
const (
	DocumentReceipt = "receipt"
	DocumentInvoice = "invoice"
)

// Medios de pago aceptados.
const (
	PaymentCash  = "cash"
	PaymentQR    = "qr"
	PaymentOther = "other"
)

// SaleItem es una línea de venta con snapshots de nombre y precio unitario,
// para que ediciones posteriores del catálogo nunca alteren recibos históricos.
type SaleItem struct {
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// SalePayment es una entrada de medio de pago dentro de una venta.
// No existe fuera de la venta ni se muta después del commit.
type SalePayment struct {
	ID     string
	Kind   string // cash | qr | other
	Amount decimal.Decimal
}

// Sale es el registro inmutable de un checkout completado.
// Invariantes: Total == suma de subtotales; con IsCredit,
// suma(pagos) + PendingAmount == Total; sin IsCredit, suma(pagos) == Total.
type Sale struct {
	ID             string
	Date           time.Time
	Items          []SaleItem
	Total          decimal.Decimal
	DocumentType   string // receipt | invoice
	ActorID        string
	ActorName      string
	Payments       []SalePayment
	IsCredit       bool
	PendingAmount  decimal.Decimal
	Observations   string
	IdempotencyKey string // vacío si el caller no envió clave
	CreatedAt      time.Time
}

// PaidAmount suma los montos de todos los medios de pago.
func (s *Sale) PaidAmount() decimal.Decimal {
	paid := decimal.Zero
	for _, p := range s.Payments {
		paid = paid.Add(p.Amount)
	}
	return paid
}
