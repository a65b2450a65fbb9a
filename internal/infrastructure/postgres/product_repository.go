package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.sku, p.name, p.description, p.price, p.category_id,
	       COALESCE(c.name, ''), p.stock, p.min_stock, p.status, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, price, category_id, stock, min_stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.Description, product.Price,
		product.CategoryID, product.Stock, product.MinStock, product.Status,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update actualiza precio y metadata. La columna stock queda fuera a propósito:
// solo UpdateStock la escribe, desde el libro de inventario.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category_id = $5,
		    min_stock = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.CategoryID, product.MinStock, product.Status, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	return r.scanOne(ctx, query, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.sku = $1`
	return r.scanOne(ctx, query, sku)
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Serializa las mutaciones de stock por producto; solo tiene sentido dentro
// de una transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT p.id, p.sku, p.name, p.description, p.price, p.category_id,
		       '', p.stock, p.min_stock, p.status, p.created_at, p.updated_at
		FROM products p
		WHERE p.id = $1
		FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

// UpdateStock escribe el stock resultante. Solo el libro de inventario y el
// procesador de ventas llaman aquí, siempre bajo el lock de fila.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// List devuelve el catálogo completo ordenado por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CountLowStock cuenta productos activos en o bajo su umbral mínimo.
func (r *ProductRepo) CountLowStock(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE status = 'active' AND stock <= min_stock`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}

func (r *ProductRepo) scanOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := scanProduct(r.q.QueryRow(ctx, query, arg), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.CategoryID,
		&p.CategoryName, &p.Stock, &p.MinStock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
}
