package activity

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Summary cifras del dashboard: ventas de hoy y productos bajo umbral.
type Summary struct {
	SalesToday    int
	RevenueToday  decimal.Decimal
	LowStockCount int
}

// SummaryUseCase lecturas agregadas para el dashboard.
type SummaryUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *SummaryUseCase {
	return &SummaryUseCase{saleRepo: saleRepo, productRepo: productRepo}
}

// Summarize calcula el resumen del día en curso (zona horaria local).
func (uc *SummaryUseCase) Summarize(ctx context.Context) (*Summary, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, revenue, err := uc.saleRepo.TotalsSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{SalesToday: count, RevenueToday: revenue, LowStockCount: lowStock}, nil
}
