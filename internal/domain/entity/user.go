package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleSales  = "sales"
	RoleViewer = "viewer"
)

// User representa un usuario de la aplicación (actor de ventas y movimientos).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // admin | sales | viewer
	Active       bool
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
