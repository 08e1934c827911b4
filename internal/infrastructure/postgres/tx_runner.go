package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/application/production"
	"github.com/tu-usuario/planta-pos/internal/application/sales"
	"github.com/tu-usuario/planta-pos/internal/application/supply"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
)

// TxRunner satisface los puertos transaccionales de los casos de uso.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ supply.TxRunner = (*supplyTxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del libro de productos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryMovementRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia la transacción de venta con todos sus repos.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	supplyRepo repository.SupplyRepository,
	supplyMovRepo repository.SupplyMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewSaleRepository(tx),
		NewInventoryMovementRepository(tx),
		NewProductRepository(tx),
		NewSupplyRepository(tx),
		NewSupplyMovementRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction inicia la transacción de una corrida de producción.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	prodRepo repository.ProductionRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	supplyRepo repository.SupplyRepository,
	supplyMovRepo repository.SupplyMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(
		NewProductionRepository(tx),
		NewInventoryMovementRepository(tx),
		NewProductRepository(tx),
		NewSupplyRepository(tx),
		NewSupplyMovementRepository(tx),
	)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Supplies devuelve la vista del runner para el puerto de insumos.
// supply.TxRunner tiene un método Run con otra firma, de ahí el tipo aparte.
func (r *TxRunner) Supplies() *supplyTxRunner {
	return &supplyTxRunner{pool: r.pool}
}

type supplyTxRunner struct {
	pool *pgxpool.Pool
}

// Run inicia una transacción con los repos del libro de insumos.
func (r *supplyTxRunner) Run(ctx context.Context, fn func(
	supplyRepo repository.SupplyRepository,
	movRepo repository.SupplyMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSupplyRepository(tx), NewSupplyMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
