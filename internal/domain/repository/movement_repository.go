package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// MovementRepository puerto del log de movimientos: append-only.
// No existen Update ni Delete; las correcciones son movimientos compensatorios.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.Movement) error
	// ListAll devuelve movimientos ordenados por fecha descendente,
	// desempatados por secuencia de inserción.
	ListAll(ctx context.Context, limit, offset int) ([]entity.Movement, error)
	// ListManual devuelve solo movimientos no causados por ventas
	// (sale_id nulo), para el feed de actividad.
	ListManual(ctx context.Context, limit int) ([]entity.Movement, error)
}
