package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// QueryUseCase lecturas del almacén de ventas (historial y recibos).
// Los registros devueltos son snapshots de solo lectura.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye las consultas de ventas.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// GetAll devuelve ventas ordenadas por fecha descendente.
func (uc *QueryUseCase) GetAll(ctx context.Context, limit, offset int) ([]entity.Sale, error) {
	return uc.saleRepo.GetAll(ctx, limit, offset)
}

// GetByID devuelve la venta completa (líneas y pagos) o ErrNotFound.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}
