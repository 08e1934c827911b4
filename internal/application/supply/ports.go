package supply

import (
	"context"

	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con los repositorios de
// insumos ligados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		supplyRepo repository.SupplyRepository,
		movRepo repository.SupplyMovementRepository,
	) error) error
}
