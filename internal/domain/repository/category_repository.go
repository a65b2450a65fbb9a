package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia de categorías.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]entity.Category, error)
}
