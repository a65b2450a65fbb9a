package entity

import "time"

// Direcciones de movimiento de inventario.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// Movement es un registro inmutable de auditoría de un cambio de stock.
// Nunca se actualiza ni se borra; las correcciones se modelan como
// movimientos compensatorios.
type Movement struct {
	ID          string
	Seq         int64 // asignado por la BD; desempata timestamps iguales
	ProductID   string
	ProductName string // snapshot al momento del movimiento
	Type        string // in | out
	Quantity    int64  // siempre positiva; Type indica la dirección
	SaleID      string // vacío en movimientos manuales
	Reason      string
	ActorID     string
	ActorName   string
	CreatedAt   time.Time
}

// Delta devuelve el cambio con signo que este movimiento aplicó al stock.
func (m *Movement) Delta() int64 {
	if m.Type == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}
