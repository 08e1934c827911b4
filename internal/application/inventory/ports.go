package inventory

import (
	"context"

	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción y entrega repositorios
// ligados a esa transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
