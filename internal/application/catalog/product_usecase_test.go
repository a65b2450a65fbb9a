package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

type fakeProductRepo struct {
	products map[string]*entity.Product
	getBySKU error // error inyectado en GetBySKU
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	if r.getBySKU != nil {
		return nil, r.getBySKU
	}
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) CountLowStock(ctx context.Context) (int, error) { return 0, nil }

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var electronica = &entity.Category{ID: "c1", Name: "Electrónica", Status: entity.StatusActive}

func altaValida() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:        "PROD-100",
		Name:       "Teclado mecánico",
		Price:      d("85.50"),
		CategoryID: "c1",
		Stock:      10,
		MinStock:   2,
	}
}

func TestProductCreate_Exitoso(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo, newFakeCategoryRepo(electronica))

	product, err := uc.Create(context.Background(), altaValida())
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Electrónica", product.CategoryName)
	assert.Equal(t, entity.StatusActive, product.Status)
	assert.Equal(t, int64(10), product.Stock)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo, newFakeCategoryRepo(electronica))

	_, err := uc.Create(context.Background(), altaValida())
	require.NoError(t, err)

	otra := altaValida()
	otra.Name = "Otro teclado"
	_, err = uc.Create(context.Background(), otra)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_FallaLecturaNoSeTragaElError(t *testing.T) {
	// Un fallo transitorio del repo al verificar el SKU no debe leerse
	// como "SKU libre": el error se propaga y no se crea el producto.
	repo := newFakeProductRepo()
	repo.getBySKU = errors.New("conexión perdida")
	uc := catalog.NewProductUseCase(repo, newFakeCategoryRepo(electronica))

	_, err := uc.Create(context.Background(), altaValida())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, repo.products)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc := catalog.NewProductUseCase(newFakeProductRepo(), newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), altaValida())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc := catalog.NewProductUseCase(newFakeProductRepo(), newFakeCategoryRepo(electronica))

	casos := []dto.CreateProductRequest{
		{Name: "Sin SKU", Price: d("10.00"), CategoryID: "c1"},
		{SKU: "PROD-101", Price: d("10.00"), CategoryID: "c1"},
		{SKU: "PROD-102", Name: "Precio negativo", Price: d("-1.00"), CategoryID: "c1"},
		{SKU: "PROD-103", Name: "Stock negativo", Price: d("10.00"), CategoryID: "c1", Stock: -5},
	}
	for _, in := range casos {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %s", in.SKU)
	}
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := catalog.NewProductUseCase(repo, newFakeCategoryRepo(electronica))

	created, err := uc.Create(context.Background(), altaValida())
	require.NoError(t, err)

	price := d("99.99")
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:  "Teclado v2",
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Teclado v2", updated.Name)
	assert.True(t, updated.Price.Equal(price))
	// El stock solo se mueve vía inventario, nunca por edición de catálogo.
	assert.Equal(t, int64(10), updated.Stock)
}
