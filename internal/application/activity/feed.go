// Package activity expone el modelo de lectura para dashboards: la mezcla
// temporal de ventas y movimientos manuales. Proyección pura, recalculada en
// cada llamada; no mantiene estado propio.
package activity

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Tipos de ítem del feed.
const (
	KindSale     = "sale"
	KindMovement = "movement"
)

// Item es una entrada del feed: o una venta o un movimiento manual.
type Item struct {
	Kind     string
	Sale     *entity.Sale
	Movement *entity.Movement
}

// Timestamp devuelve el instante del ítem según su tipo.
func (i Item) Timestamp() int64 {
	if i.Kind == KindSale {
		return i.Sale.Date.UnixNano()
	}
	return i.Movement.CreatedAt.UnixNano()
}

// FeedUseCase construye el feed de actividad.
type FeedUseCase struct {
	saleRepo     repository.SaleRepository
	movementRepo repository.MovementRepository
}

// NewFeedUseCase construye el caso de uso.
func NewFeedUseCase(saleRepo repository.SaleRepository, movementRepo repository.MovementRepository) *FeedUseCase {
	return &FeedUseCase{saleRepo: saleRepo, movementRepo: movementRepo}
}

// Feed mezcla ventas y movimientos NO causados por ventas (los causados por
// ventas ya están representados por la venta misma), ordenados por fecha
// descendente y truncados a limit. Dos llamadas sin escrituras intermedias
// devuelven exactamente la misma secuencia.
func (uc *FeedUseCase) Feed(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 20
	}
	sales, err := uc.saleRepo.GetAll(ctx, limit, 0)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListManual(ctx, limit)
	if err != nil {
		return nil, err
	}

	// Ambas fuentes ya vienen descendentes: merge de dos listas ordenadas.
	// En empate de timestamp la venta va primero (regla fija, para que la
	// proyección sea determinista).
	items := make([]Item, 0, len(sales)+len(movements))
	i, j := 0, 0
	for i < len(sales) && j < len(movements) {
		saleItem := Item{Kind: KindSale, Sale: &sales[i]}
		movItem := Item{Kind: KindMovement, Movement: &movements[j]}
		if saleItem.Timestamp() >= movItem.Timestamp() {
			items = append(items, saleItem)
			i++
		} else {
			items = append(items, movItem)
			j++
		}
	}
	for ; i < len(sales); i++ {
		items = append(items, Item{Kind: KindSale, Sale: &sales[i]})
	}
	for ; j < len(movements); j++ {
		items = append(items, Item{Kind: KindMovement, Movement: &movements[j]})
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
