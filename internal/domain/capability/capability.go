// Package capability centraliza los chequeos de permisos por rol,
// en lugar de comparaciones de strings dispersas en handlers.
package capability

import "github.com/jhoicas/pos-api/internal/domain/entity"

// Action identifica una operación protegida.
type Action string

const (
	ActionCommitSale   Action = "sale.commit"
	ActionMoveStock    Action = "inventory.move"
	ActionWriteCatalog Action = "catalog.write"
	ActionManageUsers  Action = "user.manage"
)

// perms: acciones de escritura permitidas por rol. Las lecturas
// (catálogo, historial, feed) están abiertas a cualquier usuario autenticado.
var perms = map[string]map[Action]bool{
	entity.RoleAdmin: {
		ActionCommitSale:   true,
		ActionMoveStock:    true,
		ActionWriteCatalog: true,
		ActionManageUsers:  true,
	},
	entity.RoleSales: {
		ActionCommitSale: true,
		ActionMoveStock:  true,
	},
	entity.RoleViewer: {},
}

// Allows responde si el rol puede ejecutar la acción.
// Roles desconocidos no pueden nada.
func Allows(role string, action Action) bool {
	actions, ok := perms[role]
	if !ok {
		return false
	}
	return actions[action]
}
