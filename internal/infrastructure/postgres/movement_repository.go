package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL.
// Append-only: no existen UPDATE ni DELETE sobre la tabla movements.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append agrega el movimiento. La columna seq (bigserial) desempata
// timestamps idénticos y establece el orden total de inserción.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, product_name, type, quantity, sale_id, reason, actor_id, actor_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.ProductName, m.Type, m.Quantity,
		nullIfEmpty(m.SaleID), nullIfEmpty(m.Reason), m.ActorID, m.ActorName, m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListAll historial completo, más reciente primero.
func (r *MovementRepo) ListAll(ctx context.Context, limit, offset int) ([]entity.Movement, error) {
	query := `
		SELECT seq, id, product_id, product_name, type, quantity,
		       COALESCE(sale_id::text, ''), COALESCE(reason, ''), actor_id, actor_name, created_at
		FROM movements
		ORDER BY created_at DESC, seq DESC
		LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// ListManual solo movimientos sin venta asociada (para el feed de actividad).
func (r *MovementRepo) ListManual(ctx context.Context, limit int) ([]entity.Movement, error) {
	query := `
		SELECT seq, id, product_id, product_name, type, quantity,
		       COALESCE(sale_id::text, ''), COALESCE(reason, ''), actor_id, actor_name, created_at
		FROM movements
		WHERE sale_id IS NULL
		ORDER BY created_at DESC, seq DESC
		LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.Seq, &m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.Quantity,
			&m.SaleID, &m.Reason, &m.ActorID, &m.ActorName, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
