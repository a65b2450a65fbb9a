package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CreateProductRequest alta de producto (incluye stock inicial).
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"min_stock"`
	Status      string          `json:"status"`
}

// UpdateProductRequest edición de catálogo. Sin campo de stock: el stock solo
// se muta vía movimientos de inventario.
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  string           `json:"category_id"`
	MinStock    *int64           `json:"min_stock"`
	Status      string           `json:"status"`
}

// ProductResponse producto para la UI, con la bandera de stock bajo.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Stock        int64           `json:"stock"`
	MinStock     int64           `json:"min_stock"`
	LowStock     bool            `json:"low_stock"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad al DTO.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		LowStock:     p.LowStock(),
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateCategoryRequest edición de categoría.
type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// CategoryResponse categoría para la UI.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ToCategoryResponse mapea la entidad al DTO.
func ToCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Status: c.Status}
}
