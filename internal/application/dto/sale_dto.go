package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleItemRequest línea del carrito en el checkout.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PaymentEntryRequest entrada de medio de pago del checkout.
type PaymentEntryRequest struct {
	Kind   string          `json:"kind"` // cash | qr | other
	Amount decimal.Decimal `json:"amount"`
}

// CommitSaleRequest intento de checkout completo. IdempotencyKey también
// puede venir en el header Idempotency-Key.
type CommitSaleRequest struct {
	Items          []SaleItemRequest     `json:"items"`
	DocumentType   string                `json:"document_type"` // receipt | invoice
	Payments       []PaymentEntryRequest `json:"payments"`
	IsCredit       bool                  `json:"is_credit"`
	Observations   string                `json:"observations"`
	IdempotencyKey string                `json:"idempotency_key"`
}

// SaleItemResponse línea de venta con snapshots.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SalePaymentResponse pago dentro de una venta.
type SalePaymentResponse struct {
	ID     string          `json:"id"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleResponse venta confirmada para la UI.
type SaleResponse struct {
	ID            string                `json:"id"`
	Date          time.Time             `json:"date"`
	Items         []SaleItemResponse    `json:"items"`
	Total         decimal.Decimal       `json:"total"`
	DocumentType  string                `json:"document_type"`
	ActorID       string                `json:"actor_id"`
	ActorName     string                `json:"actor_name"`
	Payments      []SalePaymentResponse `json:"payments"`
	IsCredit      bool                  `json:"is_credit"`
	PendingAmount decimal.Decimal       `json:"pending_amount"`
	Observations  string                `json:"observations,omitempty"`
}

// ToSaleResponse mapea la entidad al DTO.
func ToSaleResponse(s *entity.Sale) *SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	payments := make([]SalePaymentResponse, 0, len(s.Payments))
	for _, p := range s.Payments {
		payments = append(payments, SalePaymentResponse{ID: p.ID, Kind: p.Kind, Amount: p.Amount})
	}
	return &SaleResponse{
		ID:            s.ID,
		Date:          s.Date,
		Items:         items,
		Total:         s.Total,
		DocumentType:  s.DocumentType,
		ActorID:       s.ActorID,
		ActorName:     s.ActorName,
		Payments:      payments,
		IsCredit:      s.IsCredit,
		PendingAmount: s.PendingAmount,
		Observations:  s.Observations,
	}
}
