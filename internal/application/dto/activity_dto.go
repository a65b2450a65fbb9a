package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/activity"
)

// ActivityItemResponse entrada del feed: una venta o un movimiento manual.
type ActivityItemResponse struct {
	Kind     string            `json:"kind"` // sale | movement
	Sale     *SaleResponse     `json:"sale,omitempty"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// ToActivityItemResponse mapea un ítem del feed al DTO.
func ToActivityItemResponse(item activity.Item) ActivityItemResponse {
	out := ActivityItemResponse{Kind: item.Kind}
	if item.Sale != nil {
		out.Sale = ToSaleResponse(item.Sale)
	}
	if item.Movement != nil {
		out.Movement = ToMovementResponse(item.Movement)
	}
	return out
}

// SummaryResponse cifras del dashboard.
type SummaryResponse struct {
	SalesToday    int             `json:"sales_today"`
	RevenueToday  decimal.Decimal `json:"revenue_today"`
	LowStockCount int             `json:"low_stock_count"`
}
