package repository

import (
	"time"

	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// InventoryMovementRepository define el puerto del libro de productos
// terminados. El libro es append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	// Create persiste el movimiento y asigna Seq (secuencia de inserción).
	Create(movement *entity.InventoryMovement) error
	// LastByProduct devuelve el movimiento más reciente del producto en orden
	// de libro (CreatedAt, Seq), o nil si no hay ninguno.
	LastByProduct(productID string) (*entity.InventoryMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}

// SupplyMovementRepository es el puerto equivalente del libro de insumos.
type SupplyMovementRepository interface {
	Create(movement *entity.SupplyMovement) error
	LastBySupply(supplyID string) (*entity.SupplyMovement, error)
	ListBySupply(supplyID string, from, to *time.Time, limit, offset int) ([]*entity.SupplyMovement, error)
}
