package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos.
// Update no toca la columna stock: el stock solo se muta vía UpdateStock,
// y solo desde el libro de inventario dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE);
	// solo tiene sentido con repos atados a una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, stock int64) error
	List(ctx context.Context) ([]entity.Product, error)
	CountLowStock(ctx context.Context) (int, error)
}
