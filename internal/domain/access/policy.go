// Package access contiene la política de acceso: predicados puros sobre una
// instantánea del usuario. Se usan como compuerta (403) en escrituras y como
// filtro de respuesta (redacción) en lecturas.
package access

import "github.com/jhoicas/sales-analytics-api/internal/domain/entity"

// IsAdmin indica si el usuario tiene rol admin.
func IsAdmin(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleAdmin
}

// Can indica si el usuario tiene la capacidad. El rol admin implica todas.
func Can(u *entity.User, c entity.Capability) bool {
	if u == nil {
		return false
	}
	if IsAdmin(u) {
		return true
	}
	for _, p := range u.Permissions {
		if p == c {
			return true
		}
	}
	return false
}

// HasFinancialAccess controla la visibilidad de costos y utilidades.
func HasFinancialAccess(u *entity.User) bool {
	return Can(u, entity.CapFinancial)
}
