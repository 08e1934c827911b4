// Package authz materializa la autorización como un contexto explícito que se
// resuelve una vez por request y se pasa a los casos de uso. Sustituye
// cualquier lookup ambiental de "usuario actual".
package authz

import "github.com/tu-usuario/planta-pos/internal/domain/entity"

// Context identidad + capacidades del actor de un request.
type Context struct {
	UserID string
	Role   entity.Role
	caps   map[entity.Capability]struct{}
}

// NewContext resuelve el conjunto cerrado de capacidades del rol.
func NewContext(userID string, role entity.Role) Context {
	caps := make(map[entity.Capability]struct{})
	for _, c := range role.Capabilities() {
		caps[c] = struct{}{}
	}
	return Context{UserID: userID, Role: role, caps: caps}
}

// Can indica si el actor tiene la capacidad.
func (c Context) Can(capability entity.Capability) bool {
	_, ok := c.caps[capability]
	return ok
}

// CanAccessChannel delega en la regla de canal del rol.
func (c Context) CanAccessChannel(channel string) bool {
	return c.Role.CanAccessChannel(channel)
}
