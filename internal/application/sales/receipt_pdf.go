package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReceiptPDFUseCase genera la representación imprimible de una venta.
type ReceiptPDFUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptGenerator
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(saleRepo repository.SaleRepository, generator ReceiptGenerator) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{saleRepo: saleRepo, generator: generator}
}

// GeneratePDF busca la venta y devuelve los bytes del PDF.
func (uc *ReceiptPDFUseCase) GeneratePDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale)
}
