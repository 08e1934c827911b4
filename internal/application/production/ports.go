package production

import (
	"context"
	"time"

	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

// TxRunner abre la transacción de producción con sus repositorios ligados.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		prodRepo repository.ProductionRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		supplyRepo repository.SupplyRepository,
		supplyMovRepo repository.SupplyMovementRepository,
	) error) error
}

// StockEngine asiento de entrada de producción en el libro de productos.
type StockEngine interface {
	RecordMovementInTx(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		in inventory.MovementInput,
		now time.Time,
	) (*entity.InventoryMovement, error)
}

// SupplyEngine consumo de insumos de la corrida.
type SupplyEngine interface {
	DeductForProductionInTx(
		supplyRepo repository.SupplyRepository,
		movRepo repository.SupplyMovementRepository,
		productID string,
		producedQty int64,
		ref entity.MovementReference,
		actor string,
		now time.Time,
	) ([]*entity.SupplyMovement, error)
}
