package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de ciclo de vida de productos y categorías.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product representa un producto o SKU del catálogo.
// Stock es propiedad exclusiva del libro de inventario: fuera de la creación
// inicial, solo se muta vía ApplyDelta (nunca por la edición de catálogo).
type Product struct {
	ID           string
	SKU          string // único
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta, >= 0
	CategoryID   string
	CategoryName string // denormalizado para listados
	Stock        int64
	MinStock     int64 // umbral de alerta; no bloquea ventas
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sellable indica si el producto es elegible para venta.
func (p *Product) Sellable() bool { return p.Status == StatusActive }

// LowStock indica si el stock está en o bajo el umbral mínimo.
func (p *Product) LowStock() bool { return p.Stock <= p.MinStock }
