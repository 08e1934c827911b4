package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pos/internal/application/authz"
	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/application/production"
	"github.com/tu-usuario/planta-pos/internal/application/supply"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

type productionEnv struct {
	store    *memory.Store
	stock    *inventory.StockEngine
	supplies *supply.DeductionEngine
	recorder *production.Recorder
}

func newProductionEnv() *productionEnv {
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	tx := memory.NewTxRunner(store)

	stock := inventory.NewStockEngine(tx,
		memory.NewProductRepository(store),
		memory.NewInventoryMovementRepository(store), log)
	supplies := supply.NewDeductionEngine(tx.Supplies(),
		memory.NewSupplyRepository(store),
		memory.NewSupplyMovementRepository(store), log)
	recorder := production.NewRecorder(tx, stock, supplies,
		memory.NewProductRepository(store),
		memory.NewProductionRepository(store), log)

	return &productionEnv{store: store, stock: stock, supplies: supplies, recorder: recorder}
}

func productionReq(productID string, qty int64) dto.CreateProductionRequest {
	on := time.Now().Add(-2 * time.Hour)
	return dto.CreateProductionRequest{
		ProductID:    productID,
		Quantity:     qty,
		MachineOnAt:  on,
		MachineOffAt: on.Add(90 * time.Minute),
		Notes:        "corrida de la mañana",
	}
}

// Una corrida registra el record, suma producto terminado y consume los
// insumos vinculados, todo junto.
func TestRecordProduction_CorridaCompleta(t *testing.T) {
	env := newProductionEnv()
	env.store.PutProduct(entity.Product{ID: "p1", SKU: "HIELO-5", Name: "Bolsa de hielo 5kg", Unit: "bolsa", IsActive: true})
	linked := "p1"
	env.store.PutSupply(entity.Supply{
		ID: "bolsa", Name: "Bolsa plástica", IsActive: true,
		LinkedProductID: &linked, DeductPerSale: 1,
	})
	ctx := context.Background()
	actor := authz.NewContext("u-caja", entity.RoleCajero)

	record, err := env.recorder.RecordProduction(ctx, actor, productionReq("p1", 200))
	require.NoError(t, err)
	assert.Equal(t, int64(90), record.DurationMinutes())

	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), balance)

	supplyBalance, err := env.supplies.CurrentBalance(ctx, "bolsa")
	require.NoError(t, err)
	assert.Equal(t, int64(-200), supplyBalance, "una bolsa consumida por unidad producida")

	records, err := env.recorder.ListBetween(ctx, time.Now().Add(-3*time.Hour), time.Now())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}

func TestRecordProduction_Validaciones(t *testing.T) {
	env := newProductionEnv()
	env.store.PutProduct(entity.Product{ID: "p1", Name: "Bolsa de hielo", IsActive: true})
	ctx := context.Background()
	actor := authz.NewContext("u-caja", entity.RoleCajero)

	// Cantidad no positiva.
	req := productionReq("p1", 0)
	_, err := env.recorder.RecordProduction(ctx, actor, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Apagado antes del encendido.
	req = productionReq("p1", 10)
	req.MachineOffAt = req.MachineOnAt.Add(-time.Minute)
	_, err = env.recorder.RecordProduction(ctx, actor, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Producto inexistente.
	_, err = env.recorder.RecordProduction(ctx, actor, productionReq("nope", 10))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El auditor no registra producción.
	auditor := authz.NewContext("u-audit", entity.RoleAuditor)
	_, err = env.recorder.RecordProduction(ctx, auditor, productionReq("p1", 10))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
