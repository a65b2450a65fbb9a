package inventory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// applyDelta es la primitiva contable del libro de inventario. Opera sobre un
// repo atado a la transacción del caller: bloquea la fila del producto
// (FOR UPDATE), aplica el delta con signo y persiste el stock resultante.
// Todo camino que muta stock fuera de una venta pasa por aquí, de modo que el
// caller pueda aparear cada delta exitoso con exactamente un Append al log.
// Con allowNegative en false, una salida que dejaría el stock bajo cero se
// rechaza con OutOfStockError; las entradas nunca se rechazan por piso.
func applyDelta(ctx context.Context, productRepo repository.ProductRepository, productID string, delta int64, allowNegative bool) (*entity.Product, int64, error) {
	product, err := productRepo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if product == nil {
		return nil, 0, domain.ErrProductNotFound
	}
	newStock := product.Stock + delta
	if delta < 0 && newStock < 0 && !allowNegative {
		return nil, 0, &domain.OutOfStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   -delta,
			Available:   product.Stock,
		}
	}
	if err := productRepo.UpdateStock(ctx, productID, newStock); err != nil {
		return nil, 0, err
	}
	return product, newStock, nil
}

// LedgerUseCase expone el libro de inventario fuera del paquete: lecturas de
// stock puntuales y aplicación de deltas en transacción propia.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewLedgerUseCase construye el libro.
func NewLedgerUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, productRepo: productRepo}
}

// Get devuelve el stock actual del producto.
func (uc *LedgerUseCase) Get(ctx context.Context, productID string) (int64, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}
	return product.Stock, nil
}

// ApplyDelta aplica un delta con signo al stock y devuelve el stock
// resultante. No impone piso: la política de stock negativo es decisión
// del caller.
func (uc *LedgerUseCase) ApplyDelta(ctx context.Context, productID string, delta int64) (int64, error) {
	var newStock int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		_, stock, err := applyDelta(ctx, productRepo, productID, delta, true)
		if err != nil {
			return err
		}
		newStock = stock
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}
