package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta el commit de una venta dentro de una transacción de BD:
// deducción de stock, movimientos de auditoría y registro de la venta son
// una sola unidad atómica.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptGenerator genera la representación imprimible de una venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale) ([]byte, error)
}
