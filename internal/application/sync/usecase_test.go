package sync_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/application/pricing"
	"github.com/tu-usuario/planta-pos/internal/application/sales"
	"github.com/tu-usuario/planta-pos/internal/application/supply"
	appsync "github.com/tu-usuario/planta-pos/internal/application/sync"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

type syncEnv struct {
	store     *memory.Store
	stock     *inventory.StockEngine
	orch      *sales.Orchestrator
	processor *appsync.Processor
	queueRepo *memory.SyncQueueRepo
}

func newSyncEnv() *syncEnv {
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	tx := memory.NewTxRunner(store)

	stock := inventory.NewStockEngine(tx,
		memory.NewProductRepository(store),
		memory.NewInventoryMovementRepository(store), log)
	supplies := supply.NewDeductionEngine(tx.Supplies(),
		memory.NewSupplyRepository(store),
		memory.NewSupplyMovementRepository(store), log)
	prices := pricing.NewResolver(memory.NewPriceRepository(store),
		cache.NewNoopPriceCache(), time.Minute, log)
	orch := sales.NewOrchestrator(tx, stock, supplies, prices,
		memory.NewSaleRepository(store),
		memory.NewProductRepository(store),
		memory.NewCustomerRepository(store),
		pdf.NewReceiptGenerator("Planta Demo"), log)

	queueRepo := memory.NewSyncQueueRepository(store)
	processor := appsync.NewProcessor(orch, stock, queueRepo,
		memory.NewUserRepository(store), log)

	// Vendedor de ruta registrado: la resolución de conflictos reproduce la
	// venta a su nombre.
	store.PutUser(entity.User{
		ID: "u-ruta", Name: "Vendedor Ruta", Email: "ruta@planta.co",
		Role: entity.RoleVendedor, IsActive: true,
	})

	return &syncEnv{store: store, stock: stock, orch: orch, processor: processor, queueRepo: queueRepo}
}

func (e *syncEnv) seedCatalog(productID string, stock int64) {
	e.store.PutProduct(entity.Product{
		ID: productID, SKU: "SKU-" + productID, Name: "Bolsa de hielo 5kg",
		Unit: "bolsa", IsActive: true,
	})
	e.store.PutPrice(entity.Price{
		ID: "pr-" + productID, ProductID: productID,
		Amount: decimal.NewFromInt(6000), Channel: entity.ChannelRoute,
		IsActive: true, ValidFrom: time.Now().Add(-time.Hour),
		Roles: []entity.Role{entity.RoleVendedor},
	})
	if stock > 0 {
		_, err := e.stock.RecordMovement(context.Background(), inventory.MovementInput{
			ProductID: productID, Type: entity.MovementProductionIn, Quantity: stock, Actor: "seed",
		})
		if err != nil {
			panic(err)
		}
	}
}

func rutaActor() authz.Context { return authz.NewContext("u-ruta", entity.RoleVendedor) }
func adminActor() authz.Context {
	return authz.NewContext("u-admin", entity.RoleAdmin)
}

func offlineTx(localID, productID string, qty int64) dto.OfflineTransaction {
	return dto.OfflineTransaction{
		LocalID:       localID,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: productID, PriceID: "pr-" + productID, Quantity: qty},
		},
	}
}

// Cada transacción del lote se procesa aislada: una en conflicto no impide
// sincronizar las demás, y los resultados conservan el orden del request.
func TestPushBatch_AislamientoPorTransaccion(t *testing.T) {
	env := newSyncEnv()
	env.seedCatalog("p1", 10)
	ctx := context.Background()

	results, err := env.processor.PushBatch(ctx, rutaActor(), dto.PushRequest{
		Transactions: []dto.OfflineTransaction{
			offlineTx("local-1", "p1", 4),
			offlineTx("local-2", "p1", 50), // no alcanza el stock
			offlineTx("local-3", "p1", 3),
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "local-1", results[0].LocalID)
	assert.Equal(t, dto.PushStatusSynced, results[0].Status)
	assert.NotEmpty(t, results[0].InvoiceNumber)

	assert.Equal(t, dto.PushStatusConflict, results[1].Status)
	assert.NotEmpty(t, results[1].QueueID, "el conflicto queda encolado para el admin")
	assert.Empty(t, results[1].SaleID)

	assert.Equal(t, dto.PushStatusSynced, results[2].Status,
		"el conflicto anterior no frena al resto del lote")

	// Las sincronizadas quedan marcadas synced.
	sale, err := env.orch.GetSale(ctx, results[0].SaleID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncStatusSynced, sale.SyncStatus)

	// 4 + 3 vendidas, el conflicto no movió stock.
	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), balance)
}

func TestPushBatch_Validaciones(t *testing.T) {
	env := newSyncEnv()

	// Sin capacidad de push (el cajero no sincroniza).
	_, err := env.processor.PushBatch(context.Background(),
		authz.NewContext("u-caja", entity.RoleCajero), dto.PushRequest{
			Transactions: []dto.OfflineTransaction{offlineTx("l1", "p1", 1)},
		})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Lote vacío.
	_, err = env.processor.PushBatch(context.Background(), rutaActor(), dto.PushRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Aprobar un conflicto reproduce la venta en modo forzado a nombre del
// vendedor original; el saldo puede quedar negativo y nunca se recorta.
func TestResolveConflict_Aprobar(t *testing.T) {
	env := newSyncEnv()
	env.seedCatalog("p1", 5)
	ctx := context.Background()

	results, err := env.processor.PushBatch(ctx, rutaActor(), dto.PushRequest{
		Transactions: []dto.OfflineTransaction{offlineTx("local-1", "p1", 8)},
	})
	require.NoError(t, err)
	require.Equal(t, dto.PushStatusConflict, results[0].Status)
	queueID := results[0].QueueID

	conflicts, err := env.processor.ListConflicts(ctx, adminActor())
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "u-ruta", conflicts[0].UserID)

	resolution, err := env.processor.ResolveConflict(ctx, adminActor(), queueID, dto.DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncStatusSynced, resolution.Status)
	require.NotEmpty(t, resolution.SaleID)

	sale, err := env.orch.GetSale(ctx, resolution.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "u-ruta", sale.CreatedBy, "la venta se reproduce a nombre del vendedor")
	assert.Equal(t, entity.SyncStatusSynced, sale.SyncStatus)

	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), balance, "5 - 8: el déficit real queda visible")

	entry, err := env.queueRepo.GetByID(queueID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncStatusSynced, entry.Status)
	assert.NotNil(t, entry.SyncedAt)

	// Ya resuelta: no se puede volver a decidir.
	_, err = env.processor.ResolveConflict(ctx, adminActor(), queueID, dto.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveConflict_Rechazar(t *testing.T) {
	env := newSyncEnv()
	env.seedCatalog("p1", 0)
	ctx := context.Background()

	results, err := env.processor.PushBatch(ctx, rutaActor(), dto.PushRequest{
		Transactions: []dto.OfflineTransaction{offlineTx("local-1", "p1", 2)},
	})
	require.NoError(t, err)
	require.Equal(t, dto.PushStatusConflict, results[0].Status)

	resolution, err := env.processor.ResolveConflict(ctx, adminActor(), results[0].QueueID, dto.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncStatusFailed, resolution.Status)

	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance, "el rechazo no toca el stock")

	entry, err := env.queueRepo.GetByID(results[0].QueueID)
	require.NoError(t, err)
	assert.Equal(t, entity.SyncStatusFailed, entry.Status)
	assert.Equal(t, "rechazada por el administrador", entry.ErrorMessage)
}

// Tres aprobaciones fallidas cierran la entrada como failed.
func TestResolveConflict_ReintentosAgotados(t *testing.T) {
	env := newSyncEnv()
	env.seedCatalog("p1", 0)
	ctx := context.Background()

	// El payload referencia un precio que ya no existe: cada aprobación
	// fallará en la autorización de precio.
	tx := offlineTx("local-1", "p1", 2)
	tx.Items[0].PriceID = "pr-borrado"
	results, err := env.processor.PushBatch(ctx, rutaActor(), dto.PushRequest{
		Transactions: []dto.OfflineTransaction{tx},
	})
	require.NoError(t, err)
	require.Equal(t, dto.PushStatusConflict, results[0].Status)
	queueID := results[0].QueueID

	for i := 1; i <= entity.SyncMaxRetries; i++ {
		_, err = env.processor.ResolveConflict(ctx, adminActor(), queueID, dto.DecisionApprove)
		require.Error(t, err)

		entry, gerr := env.queueRepo.GetByID(queueID)
		require.NoError(t, gerr)
		assert.Equal(t, i, entry.RetryCount)
		if i < entity.SyncMaxRetries {
			assert.Equal(t, entity.SyncStatusConflict, entry.Status, "sigue en conflicto mientras queden reintentos")
		} else {
			assert.Equal(t, entity.SyncStatusFailed, entry.Status)
		}
	}

	_, err = env.processor.ResolveConflict(ctx, adminActor(), queueID, dto.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una entrada failed ya no se decide")
}

func TestResolveConflict_Validaciones(t *testing.T) {
	env := newSyncEnv()
	ctx := context.Background()

	// Solo quien resuelve conflictos.
	_, err := env.processor.ResolveConflict(ctx, rutaActor(), "q1", dto.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.processor.ResolveConflict(ctx, adminActor(), "nope", dto.DecisionApprove)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Decisión desconocida.
	env.seedCatalog("p1", 0)
	results, err := env.processor.PushBatch(ctx, rutaActor(), dto.PushRequest{
		Transactions: []dto.OfflineTransaction{offlineTx("l1", "p1", 1)},
	})
	require.NoError(t, err)
	_, err = env.processor.ResolveConflict(ctx, adminActor(), results[0].QueueID, "tal vez")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
