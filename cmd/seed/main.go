// Command seed carga datos de demostración: categorías, productos y usuarios
// con contraseñas conocidas. Pensado para entornos de desarrollo; las filas
// existentes (mismo SKU / email) se omiten.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	categories := []entity.Category{
		{Name: "Electronics", Description: "Gadgets and devices", Status: entity.StatusActive},
		{Name: "Furniture", Description: "Office and home furniture", Status: entity.StatusActive},
		{Name: "Accessories", Description: "Cables, chargers, etc.", Status: entity.StatusActive},
		{Name: "Clothing", Description: "Uniforms and apparel", Status: entity.StatusActive},
	}
	now := time.Now()
	categoryIDs := make(map[string]string, len(categories))
	for i := range categories {
		c := &categories[i]
		c.ID = uuid.NewString()
		c.CreatedAt, c.UpdatedAt = now, now
		if err := categoryRepo.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("category", c.Name).Msg("sembrar categoría")
		}
		categoryIDs[c.Name] = c.ID
		log.Info().Str("id", c.ID).Str("name", c.Name).Msg("categoría creada")
	}

	products := []struct {
		sku, name, description, category string
		price                            string
		stock, minStock                  int64
	}{
		{"PROD-001", "Wireless Headphones", "Noise cancelling headphones", "Electronics", "120.00", 15, 5},
		{"PROD-002", "Mechanical Keyboard", "RGB Gaming Keyboard", "Electronics", "85.50", 3, 10},
		{"PROD-003", "Office Chair", "Ergonomic chair", "Furniture", "250.00", 8, 2},
		{"PROD-004", "USB-C Cable", "2m fast charging cable", "Accessories", "12.00", 100, 20},
		{"PROD-005", "Monitor 24\"", "IPS 1080p Display", "Electronics", "180.00", 12, 5},
	}
	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatal().Err(err).Str("sku", p.sku).Msg("precio inválido")
		}
		prod := &entity.Product{
			ID:          uuid.NewString(),
			SKU:         p.sku,
			Name:        p.name,
			Description: p.description,
			Price:       price,
			CategoryID:  categoryIDs[p.category],
			Stock:       p.stock,
			MinStock:    p.minStock,
			Status:      entity.StatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := productRepo.Create(ctx, prod); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Warn().Str("sku", p.sku).Msg("producto ya existe, se omite")
				continue
			}
			log.Fatal().Err(err).Str("sku", p.sku).Msg("sembrar producto")
		}
		log.Info().Str("sku", p.sku).Str("name", p.name).Msg("producto creado")
	}

	users := []struct {
		name, email, role, password string
	}{
		{"Super Admin", "admin@store.com", entity.RoleAdmin, "admin123"},
		{"Sales Rep", "sales@store.com", entity.RoleSales, "sales123"},
		{"Guest Viewer", "viewer@store.com", entity.RoleViewer, "viewer123"},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("hash de password")
		}
		user := &entity.User{
			ID:           uuid.NewString(),
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				log.Warn().Str("email", u.email).Msg("usuario ya existe, se omite")
				continue
			}
			log.Fatal().Err(err).Str("email", u.email).Msg("sembrar usuario")
		}
		log.Info().Str("email", u.email).Str("role", u.role).Msg("usuario creado")
	}

	log.Info().Msg("seed completado")
}
