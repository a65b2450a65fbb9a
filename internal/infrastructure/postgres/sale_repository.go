package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del almacén de ventas sobre PostgreSQL
// (cabecera + líneas + pagos). Las ventas son inmutables: solo INSERT y SELECT.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste cabecera, líneas y pagos. El índice único sobre
// idempotency_key convierte un doble commit en domain.ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, date, total, document_type, actor_id, actor_name, is_credit, pending_amount, observations, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.Date, sale.Total, sale.DocumentType, sale.ActorID, sale.ActorName,
		sale.IsCredit, sale.PendingAmount, nullIfEmpty(sale.Observations),
		nullIfEmpty(sale.IdempotencyKey), sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	for i, item := range sale.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (sale_id, line_no, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID, i+1, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	for _, p := range sale.Payments {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_payments (id, sale_id, kind, amount)
			VALUES ($1, $2, $3, $4)`,
			p.ID, sale.ID, p.Kind, p.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert sale payment: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta completa o nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByIdempotencyKey busca una venta ya confirmada con esa clave de checkout.
func (r *SaleRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.Sale, error) {
	return r.getOne(ctx, `WHERE idempotency_key = $1`, key)
}

// GetAll devuelve ventas completas ordenadas por fecha descendente.
func (r *SaleRepo) GetAll(ctx context.Context, limit, offset int) ([]entity.Sale, error) {
	query := saleHeaderQuery + `
		ORDER BY date DESC, created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []entity.Sale
	ids := make([]string, 0)
	for rows.Next() {
		var s entity.Sale
		if err := scanSaleHeader(rows, &s); err != nil {
			return nil, err
		}
		sales = append(sales, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	itemsBySale, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	paymentsBySale, err := r.loadPayments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sales[i].Items = itemsBySale[sales[i].ID]
		sales[i].Payments = paymentsBySale[sales[i].ID]
	}
	return sales, nil
}

// TotalsSince cuenta y suma ventas desde un instante (resumen del dashboard).
func (r *SaleRepo) TotalsSince(ctx context.Context, since time.Time) (int, decimal.Decimal, error) {
	var count int
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE date >= $1`, since,
	).Scan(&count, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sale totals: %w", err)
	}
	return count, total, nil
}

const saleHeaderQuery = `
	SELECT id, date, total, document_type, actor_id, actor_name, is_credit,
	       pending_amount, COALESCE(observations, ''), COALESCE(idempotency_key, ''), created_at
	FROM sales`

func scanSaleHeader(row pgx.Row, s *entity.Sale) error {
	return row.Scan(
		&s.ID, &s.Date, &s.Total, &s.DocumentType, &s.ActorID, &s.ActorName,
		&s.IsCredit, &s.PendingAmount, &s.Observations, &s.IdempotencyKey, &s.CreatedAt,
	)
}

func (r *SaleRepo) getOne(ctx context.Context, where string, arg any) (*entity.Sale, error) {
	var s entity.Sale
	err := scanSaleHeader(r.q.QueryRow(ctx, saleHeaderQuery+" "+where, arg), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	itemsBySale, err := r.loadItems(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	paymentsBySale, err := r.loadPayments(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = itemsBySale[s.ID]
	s.Payments = paymentsBySale[s.ID]
	return &s, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleIDs []string) (map[string][]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sale_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, line_no`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.SaleItem)
	for rows.Next() {
		var saleID string
		var item entity.SaleItem
		if err := rows.Scan(&saleID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[saleID] = append(out[saleID], item)
	}
	return out, rows.Err()
}

func (r *SaleRepo) loadPayments(ctx context.Context, saleIDs []string) (map[string][]entity.SalePayment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sale_id, id, kind, amount
		FROM sale_payments
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, id`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("load sale payments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.SalePayment)
	for rows.Next() {
		var saleID string
		var p entity.SalePayment
		if err := rows.Scan(&saleID, &p.ID, &p.Kind, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan sale payment: %w", err)
		}
		out[saleID] = append(out[saleID], p)
	}
	return out, rows.Err()
}
