package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleRepository puerto del almacén de ventas. Las ventas son inmutables:
// solo Create y lecturas.
type SaleRepository interface {
	// Create persiste cabecera, líneas y pagos. Devuelve domain.ErrDuplicate
	// si la clave de idempotencia ya fue usada.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.Sale, error)
	GetAll(ctx context.Context, limit, offset int) ([]entity.Sale, error)
	// TotalsSince cuenta y suma ventas desde un instante (resumen de dashboard).
	TotalsSince(ctx context.Context, since time.Time) (int, decimal.Decimal, error)
}
