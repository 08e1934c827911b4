package memory

import (
	"context"

	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/application/production"
	"github.com/tu-usuario/planta-pos/internal/application/sales"
	"github.com/tu-usuario/planta-pos/internal/application/supply"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ supply.TxRunner = (*supplyTxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre el store en memoria: admite una a la vez,
// toma un snapshot al entrar y lo restaura si el callback falla. Eso da la
// misma garantía todo-o-nada que la transacción PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) runTx(fn func() error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.Lock()
	snap := r.store.snapshot()
	r.store.mu.Unlock()

	if err := fn(); err != nil {
		r.store.mu.Lock()
		r.store.restore(snap)
		r.store.mu.Unlock()
		return err
	}
	return nil
}

// Run transacción del libro de productos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.runTx(func() error {
		return fn(NewInventoryMovementRepository(r.store), NewProductRepository(r.store))
	})
}

// RunSale transacción de venta completa.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	supplyRepo repository.SupplyRepository,
	supplyMovRepo repository.SupplyMovementRepository,
) error) error {
	return r.runTx(func() error {
		return fn(
			NewSaleRepository(r.store),
			NewInventoryMovementRepository(r.store),
			NewProductRepository(r.store),
			NewSupplyRepository(r.store),
			NewSupplyMovementRepository(r.store),
		)
	})
}

// RunProduction transacción de una corrida de producción.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	prodRepo repository.ProductionRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	supplyRepo repository.SupplyRepository,
	supplyMovRepo repository.SupplyMovementRepository,
) error) error {
	return r.runTx(func() error {
		return fn(
			NewProductionRepository(r.store),
			NewInventoryMovementRepository(r.store),
			NewProductRepository(r.store),
			NewSupplyRepository(r.store),
			NewSupplyMovementRepository(r.store),
		)
	})
}

// Supplies vista del runner para el puerto de insumos.
func (r *TxRunner) Supplies() *supplyTxRunner {
	return &supplyTxRunner{inner: r}
}

type supplyTxRunner struct {
	inner *TxRunner
}

// Run transacción del libro de insumos.
func (r *supplyTxRunner) Run(ctx context.Context, fn func(
	supplyRepo repository.SupplyRepository,
	movRepo repository.SupplyMovementRepository,
) error) error {
	return r.inner.runTx(func() error {
		return fn(NewSupplyRepository(r.inner.store), NewSupplyMovementRepository(r.inner.store))
	})
}
