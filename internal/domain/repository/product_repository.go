package repository

import "github.com/tu-usuario/planta-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia de productos.
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE): es el punto
// de serialización por entidad del motor de inventario.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	ListActive() ([]*entity.Product, error)
}
