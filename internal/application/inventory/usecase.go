package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/capability"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Policy gobierna el comportamiento del inventario ante casos ambiguos.
// AllowNegativeStock: si una salida manual puede dejar stock negativo
// (backorder). Las ventas siempre validan suficiencia, sin importar esta
// opción. Configurable vía INVENTORY_ALLOW_NEGATIVE_STOCK.
type Policy struct {
	AllowNegativeStock bool
}

// Actor identifica quién ejecuta la operación.
type Actor struct {
	ID   string
	Name string
	Role string
}

// MovementInput entrada para registrar un movimiento manual de stock.
type MovementInput struct {
	ProductID string
	Type      string // in | out
	Quantity  int64  // > 0
	Reason    string
}

// RegisterMovementUseCase registra movimientos manuales de inventario:
// bloquea la fila del producto, aplica el delta y agrega el movimiento de
// auditoría, todo en una transacción.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	policy       Policy
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository, policy Policy) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, movementRepo: movementRepo, policy: policy}
}

// RegisterMovement valida, muta el stock y deja el rastro de auditoría.
// Para salidas, la política AllowNegativeStock decide si se permite quedar
// bajo cero; por defecto se rechaza con ErrOutOfStock.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, actor Actor, in MovementInput) (*entity.Movement, error) {
	if !capability.Allows(actor.Role, capability.ActionMoveStock) {
		return nil, domain.ErrForbidden
	}
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementIn && in.Type != entity.MovementOut {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	movement := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		CreatedAt: now,
	}

	delta := in.Quantity
	if in.Type == entity.MovementOut {
		delta = -in.Quantity
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		product, _, err := applyDelta(ctx, productRepo, in.ProductID, delta, uc.policy.AllowNegativeStock)
		if err != nil {
			return err
		}
		movement.ProductName = product.Name
		return movementRepo.Append(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListMovements devuelve el historial completo, más reciente primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, limit, offset int) ([]entity.Movement, error) {
	return uc.movementRepo.ListAll(ctx, limit, offset)
}
