package sync

import (
	"context"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// SaleCreator operaciones de venta que la sincronización necesita.
type SaleCreator interface {
	CreateSale(ctx context.Context, actor authz.Context, req dto.CreateSaleRequest) (*entity.Sale, error)
	CreateSaleForced(ctx context.Context, actor authz.Context, req dto.CreateSaleRequest) (*entity.Sale, error)
	MarkSynced(ctx context.Context, saleID string) error
}

// StockReader lectura de saldo para el chequeo previo de conflicto.
type StockReader interface {
	CurrentBalance(ctx context.Context, productID string) (int64, error)
}
