package repository

import "github.com/tu-usuario/planta-pos/internal/domain/entity"

// SupplyRepository define el puerto de persistencia de insumos.
type SupplyRepository interface {
	GetByID(id string) (*entity.Supply, error)
	GetForUpdate(id string) (*entity.Supply, error)
	ListActive() ([]*entity.Supply, error)
	// ListByLinkedProduct devuelve los insumos activos vinculados a un producto,
	// ordenados por ID ascendente (orden fijo de bloqueo).
	ListByLinkedProduct(productID string) ([]*entity.Supply, error)
	// ListKitComponents devuelve los insumos activos del kit de unidad nueva,
	// ordenados por ID ascendente.
	ListKitComponents() ([]*entity.Supply, error)
}
