package dto

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RegisterMovementRequest movimiento manual de stock.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // in | out
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementResponse movimiento para historiales.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	SaleID      string    `json:"sale_id,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	ActorID     string    `json:"actor_id"`
	ActorName   string    `json:"actor_name"`
	Date        time.Time `json:"date"`
}

// ToMovementResponse mapea la entidad al DTO.
func ToMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		SaleID:      m.SaleID,
		Reason:      m.Reason,
		ActorID:     m.ActorID,
		ActorName:   m.ActorName,
		Date:        m.CreatedAt,
	}
}
