package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

// TxRunner abre la transacción de venta y entrega todos los repositorios que
// la orquestación necesita, ligados a esa transacción.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		supplyRepo repository.SupplyRepository,
		supplyMovRepo repository.SupplyMovementRepository,
	) error) error
}

// StockEngine operaciones del libro de productos que la venta necesita.
type StockEngine interface {
	RecordMovementInTx(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		in inventory.MovementInput,
		now time.Time,
	) (*entity.InventoryMovement, error)
	CurrentBalance(ctx context.Context, productID string) (int64, error)
}

// SupplyEngine operaciones del libro de insumos que la venta necesita.
type SupplyEngine interface {
	DeductForSaleInTx(
		supplyRepo repository.SupplyRepository,
		movRepo repository.SupplyMovementRepository,
		productID string,
		soldQty int64,
		ref entity.MovementReference,
		actor string,
		now time.Time,
	) ([]*entity.SupplyMovement, error)
	DeductKitInTx(
		supplyRepo repository.SupplyRepository,
		movRepo repository.SupplyMovementRepository,
		qty int64,
		ref entity.MovementReference,
		actor string,
		now time.Time,
	) ([]*entity.SupplyMovement, error)
}

// PriceAuthorizer verifica el acceso a un precio y lo devuelve para snapshot.
type PriceAuthorizer interface {
	Authorize(ctx context.Context, role entity.Role, channel, priceID, productID string, now time.Time) (*entity.Price, error)
}

// ReceiptGenerator genera el comprobante PDF de una venta.
type ReceiptGenerator interface {
	Generate(sale *entity.Sale, customer *entity.Customer, products map[string]*entity.Product) ([]byte, error)
}
