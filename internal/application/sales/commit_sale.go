package sales

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/capability"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/payment"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Actor identifica quién comete la venta.
type Actor struct {
	ID   string
	Name string
	Role string
}

// CartItem es una línea candidata del carrito: producto y cantidad.
// Nombre y precio se toman como snapshot del catálogo al momento del commit.
type CartItem struct {
	ProductID string
	Quantity  int64
}

// CommitInput es el intento de checkout completo.
type CommitInput struct {
	Items        []CartItem
	DocumentType string // receipt | invoice
	Payments     []payment.Entry
	IsCredit     bool
	Observations string
	// IdempotencyKey opcional: un reintento con la misma clave devuelve la
	// venta ya confirmada en lugar de cometer dos veces.
	IdempotencyKey string
}

// CommitSaleUseCase es el procesador de transacciones de venta: valida el
// carrito contra el stock, concilia los pagos, descuenta inventario, agrega
// movimientos de auditoría y persiste la venta inmutable.
type CommitSaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewCommitSaleUseCase construye el procesador.
func NewCommitSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *CommitSaleUseCase {
	return &CommitSaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// Commit ejecuta la venta como unidad atómica.
//
// Dentro de la transacción se bloquean las filas de los productos en orden
// ascendente de id (orden consistente: dos commits concurrentes multi-producto
// no se interbloquean) y la suficiencia de stock se revalida bajo el lock,
// de modo que la ventana validar-luego-cometer no tiene carrera. Cualquier
// fallo de validación o conciliación aborta sin efectos.
func (uc *CommitSaleUseCase) Commit(ctx context.Context, actor Actor, in CommitInput) (*entity.Sale, error) {
	if !capability.Allows(actor.Role, capability.ActionCommitSale) {
		return nil, domain.ErrForbidden
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		existing, err := uc.saleRepo.GetByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	// El id se genera antes de los movimientos para que el motivo
	// "Sale #<id>" pueda referenciarlo. UUID: resistente a colisiones.
	saleID := uuid.New().String()
	now := time.Now()

	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Cantidad requerida por producto (el carrito puede repetir producto).
		required := make(map[string]int64, len(in.Items))
		for _, item := range in.Items {
			required[item.ProductID] += item.Quantity
		}
		ids := make([]string, 0, len(required))
		for id := range required {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		// Bloquear y validar todo antes de mutar nada: todo-o-nada.
		products := make(map[string]*entity.Product, len(ids))
		for _, id := range ids {
			product, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			if !product.Sellable() {
				return domain.ErrProductInactive
			}
			if required[id] > product.Stock {
				return &domain.OutOfStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   required[id],
					Available:   product.Stock,
				}
			}
			products[id] = product
		}

		// Líneas con snapshot de nombre y precio; total por suma de subtotales.
		items := make([]entity.SaleItem, 0, len(in.Items))
		total := decimal.Zero
		for _, cartItem := range in.Items {
			product := products[cartItem.ProductID]
			qty := decimal.NewFromInt(cartItem.Quantity)
			subtotal := product.Price.Mul(qty)
			items = append(items, entity.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    cartItem.Quantity,
				UnitPrice:   product.Price,
				Subtotal:    subtotal,
			})
			total = total.Add(subtotal)
		}

		alloc, err := payment.Reconcile(total, in.Payments, in.IsCredit)
		if err != nil {
			return err
		}
		if !alloc.Valid {
			return &domain.PaymentMismatchError{Paid: alloc.Paid, Total: total}
		}

		payments := make([]entity.SalePayment, 0, len(in.Payments))
		for _, entry := range in.Payments {
			payments = append(payments, entity.SalePayment{
				ID:     uuid.New().String(),
				Kind:   entry.Kind,
				Amount: entry.Amount,
			})
		}

		// La cabecera de la venta se inserta ANTES de los movimientos:
		// movements.sale_id tiene FK contra sales(id) y PostgreSQL la
		// verifica por sentencia, no al COMMIT.
		sale = &entity.Sale{
			ID:             saleID,
			Date:           now,
			Items:          items,
			Total:          total,
			DocumentType:   in.DocumentType,
			ActorID:        actor.ID,
			ActorName:      actor.Name,
			Payments:       payments,
			IsCredit:       in.IsCredit,
			PendingAmount:  alloc.Pending,
			Observations:   in.Observations,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		// Descuento de stock más un movimiento por producto.
		// La validación bajo lock ya garantizó suficiencia.
		for _, id := range ids {
			product := products[id]
			if err := productRepo.UpdateStock(ctx, id, product.Stock-required[id]); err != nil {
				return err
			}
			movement := &entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Type:        entity.MovementOut,
				Quantity:    required[id],
				SaleID:      saleID,
				Reason:      "Sale #" + saleID,
				ActorID:     actor.ID,
				ActorName:   actor.Name,
				CreatedAt:   now,
			}
			if err := movementRepo.Append(ctx, movement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Carrera entre dos reintentos con la misma clave: el perdedor
		// devuelve la venta que el ganador confirmó.
		if in.IdempotencyKey != "" && errors.Is(err, domain.ErrDuplicate) {
			existing, lookupErr := uc.saleRepo.GetByIdempotencyKey(ctx, in.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, err
	}
	return sale, nil
}

func validateInput(in CommitInput) error {
	if len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	if in.DocumentType != entity.DocumentReceipt && in.DocumentType != entity.DocumentInvoice {
		return domain.ErrInvalidInput
	}
	for _, entry := range in.Payments {
		switch entry.Kind {
		case entity.PaymentCash, entity.PaymentQR, entity.PaymentOther:
		default:
			return domain.ErrInvalidInput
		}
	}
	return nil
}
