package sales_test

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
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

type salesEnv struct {
	store    *memory.Store
	stock    *inventory.StockEngine
	supplies *supply.DeductionEngine
	orch     *sales.Orchestrator
}

func newSalesEnv() *salesEnv {
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

	return &salesEnv{store: store, stock: stock, supplies: supplies, orch: orch}
}

// seedCatalog producto de hielo con precio para todos los roles y stock inicial.
func (e *salesEnv) seedCatalog(productID string, stock int64, priceAmount int64) {
	e.store.PutProduct(entity.Product{
		ID: productID, SKU: "SKU-" + productID, Name: "Bolsa de hielo 5kg",
		Unit: "bolsa", IsActive: true,
	})
	e.store.PutPrice(entity.Price{
		ID: "pr-" + productID, ProductID: productID,
		Amount: decimal.NewFromInt(priceAmount), Channel: entity.PriceChannelAll,
		IsActive: true, ValidFrom: time.Now().Add(-time.Hour),
		Roles: []entity.Role{entity.RoleGerente, entity.RoleAdmin, entity.RoleCajero, entity.RoleVendedor},
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

func cajero() authz.Context   { return authz.NewContext("u-caja", entity.RoleCajero) }
func vendedor() authz.Context { return authz.NewContext("u-ruta", entity.RoleVendedor) }
func gerente() authz.Context  { return authz.NewContext("u-dueno", entity.RoleGerente) }

func saleReq(channel, payment, productID string, qty int64) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		Channel:       channel,
		PaymentMethod: payment,
		Items: []dto.SaleItemRequest{
			{ProductID: productID, PriceID: "pr-" + productID, Quantity: qty},
		},
	}
}

// Venta de contado en planta: factura PLT, pagada, sincronizada, movimientos
// de producto e insumo asentados.
func TestCreateSale_VentaEnPlanta(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	linked := "p1"
	env.store.PutSupply(entity.Supply{
		ID: "bolsa", Name: "Bolsa plástica", IsActive: true,
		LinkedProductID: &linked, DeductPerSale: 1,
	})
	ctx := context.Background()

	sale, err := env.orch.CreateSale(ctx, cajero(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 10))
	require.NoError(t, err)

	expected := entity.FormatInvoiceNumber(entity.ChannelPlant, time.Now(), 1)
	assert.Equal(t, expected, sale.InvoiceNumber)
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Equal(t, entity.PaymentStatusPaid, sale.PaymentStatus, "contado queda pagada")
	assert.Equal(t, entity.SyncStatusSynced, sale.SyncStatus, "venta en planta nace sincronizada")
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(50000)), "5000 × 10")
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].PriceSnapshot.Equal(decimal.NewFromInt(5000)))

	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(90), balance)

	supplyBalance, err := env.supplies.CurrentBalance(ctx, "bolsa")
	require.NoError(t, err)
	assert.Equal(t, int64(-10), supplyBalance, "una bolsa consumida por unidad vendida")
}

func TestCreateSale_VentaEnRutaQuedaPendienteDeSync(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 50, 6000)

	sale, err := env.orch.CreateSale(context.Background(), vendedor(),
		saleReq(entity.ChannelRoute, entity.PaymentCash, "p1", 5))
	require.NoError(t, err)
	assert.Equal(t, entity.SyncStatusPending, sale.SyncStatus)
	assert.Equal(t, "RTA", sale.InvoiceNumber[:3])
}

// La numeración de factura es independiente por canal y por día.
func TestCreateSale_NumeracionPorCanalYDia(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()
	now := time.Now()

	s1, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1))
	require.NoError(t, err)
	s2, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1))
	require.NoError(t, err)
	s3, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelRoute, entity.PaymentCash, "p1", 1))
	require.NoError(t, err)

	assert.Equal(t, entity.FormatInvoiceNumber(entity.ChannelPlant, now, 1), s1.InvoiceNumber)
	assert.Equal(t, entity.FormatInvoiceNumber(entity.ChannelPlant, now, 2), s2.InvoiceNumber)
	assert.Equal(t, entity.FormatInvoiceNumber(entity.ChannelRoute, now, 1), s3.InvoiceNumber,
		"el otro canal arranca su propia secuencia")
}

// Todo o nada: si un paso dentro de la transacción falla, no queda venta,
// ítem ni movimiento alguno.
func TestCreateSale_FallaEnTransaccionNoDejaRastro(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()
	now := time.Now()

	// Dos ventas preexistentes fuerzan un choque de número de factura: una
	// cuenta para la secuencia de hoy y la otra ya ocupa el número que la
	// nueva venta va a calcular.
	saleRepo := memory.NewSaleRepository(env.store)
	require.NoError(t, saleRepo.Create(&entity.Sale{
		ID: "old-1", InvoiceNumber: entity.FormatInvoiceNumber(entity.ChannelPlant, now, 1),
		Channel: entity.ChannelPlant, CreatedAt: now,
	}))
	require.NoError(t, saleRepo.Create(&entity.Sale{
		ID: "old-2", InvoiceNumber: entity.FormatInvoiceNumber(entity.ChannelPlant, now, 2),
		Channel: entity.ChannelPlant, CreatedAt: now.AddDate(0, 0, -1),
	}))

	_, err := env.orch.CreateSale(ctx, cajero(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 10))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance, "la transacción revertida no movió stock")
}

// El snapshot de precio de cada ítem es inmutable: cambiar el Price después
// no toca ventas ya registradas.
func TestCreateSale_SnapshotDePrecioInmutable(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()

	sale, err := env.orch.CreateSale(ctx, cajero(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 2))
	require.NoError(t, err)

	// Sube el precio.
	env.store.PutPrice(entity.Price{
		ID: "pr-p1", ProductID: "p1", Amount: decimal.NewFromInt(9000),
		Channel: entity.PriceChannelAll, IsActive: true,
		ValidFrom: time.Now().Add(-time.Hour),
		Roles:     []entity.Role{entity.RoleCajero},
	})

	stored, err := env.orch.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.True(t, stored.Items[0].PriceSnapshot.Equal(decimal.NewFromInt(5000)))
	assert.True(t, stored.Items[0].Subtotal.Equal(decimal.NewFromInt(10000)))
}

func TestCreateSale_AccesoAPrecios(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	env.store.PutProduct(entity.Product{ID: "p2", SKU: "SKU-p2", Name: "Botellón", Unit: "botellón", IsActive: true})
	ctx := context.Background()

	// Precio exclusivo de gerente.
	env.store.PutPrice(entity.Price{
		ID: "pr-vip", ProductID: "p1", Amount: decimal.NewFromInt(3000),
		Channel: entity.PriceChannelAll, IsActive: true,
		ValidFrom: time.Now().Add(-time.Hour),
		Roles:     []entity.Role{entity.RoleGerente},
	})

	req := saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1)
	req.Items[0].PriceID = "pr-vip"
	_, err := env.orch.CreateSale(ctx, cajero(), req)
	assert.ErrorIs(t, err, domain.ErrPriceNotAllowed, "el cajero no puede usar el precio de gerente")

	// Precio de otro producto.
	req = saleReq(entity.ChannelPlant, entity.PaymentCash, "p2", 1)
	req.Items[0].PriceID = "pr-p1"
	_, err = env.orch.CreateSale(ctx, gerente(), req)
	assert.ErrorIs(t, err, domain.ErrPriceMismatch)
}

func TestCreateSale_AccesoPorCanalYCapacidad(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()

	// El cajero solo vende en planta.
	_, err := env.orch.CreateSale(ctx, cajero(), saleReq(entity.ChannelRoute, entity.PaymentCash, "p1", 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El vendedor solo vende en ruta.
	_, err = env.orch.CreateSale(ctx, vendedor(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El auditor no vende.
	auditor := authz.NewContext("u-audit", entity.RoleAuditor)
	_, err = env.orch.CreateSale(ctx, auditor, saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Canal y método de pago desconocidos.
	_, err = env.orch.CreateSale(ctx, gerente(), saleReq("BODEGA", entity.PaymentCash, "p1", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, "TRUEQUE", "p1", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// CREDIT exige due_date de hoy en adelante y arranca impaga.
func TestCreateSale_Credito(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()

	// Sin fecha.
	_, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCredit, "p1", 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Fecha en el pasado.
	past := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	req := saleReq(entity.ChannelPlant, entity.PaymentCredit, "p1", 1)
	req.DueDate = &past
	_, err = env.orch.CreateSale(ctx, gerente(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Fecha válida.
	due := time.Now().AddDate(0, 0, 15).Format("2006-01-02")
	req.DueDate = &due
	sale, err := env.orch.CreateSale(ctx, gerente(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, sale.PaymentStatus)
	require.NotNil(t, sale.DueDate)
	assert.Equal(t, due, sale.DueDate.Format("2006-01-02"))
}

// La lista negra solo bloquea crédito: el mismo cliente puede comprar de
// contado.
func TestCreateSale_ClienteEnListaNegra(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	env.store.PutCustomer(entity.Customer{
		ID: "c1", Name: "Tienda El Paso", IsBlacklisted: true,
		BlacklistReason: "factura vencida",
	})
	ctx := context.Background()
	customerID := "c1"

	due := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	req := saleReq(entity.ChannelPlant, entity.PaymentCredit, "p1", 1)
	req.CustomerID = &customerID
	req.DueDate = &due
	_, err := env.orch.CreateSale(ctx, gerente(), req)
	assert.ErrorIs(t, err, domain.ErrBlacklisted)

	cashReq := saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1)
	cashReq.CustomerID = &customerID
	_, err = env.orch.CreateSale(ctx, gerente(), cashReq)
	assert.NoError(t, err, "de contado la lista negra no aplica")
}

// Varias líneas del mismo producto se agregan para el chequeo de stock.
func TestCreateSale_LineasRepetidasAgregadas(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 10, 5000)
	ctx := context.Background()

	req := dto.CreateSaleRequest{
		Channel:       entity.ChannelPlant,
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", PriceID: "pr-p1", Quantity: 6},
			{ProductID: "p1", PriceID: "pr-p1", Quantity: 6},
		},
	}
	_, err := env.orch.CreateSale(ctx, gerente(), req)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "6+6 supera el saldo de 10")

	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

// El kit (envase vacío + tapa) solo se descuenta en venta de unidad nueva de
// un producto de envase retornable.
func TestCreateSale_KitDeUnidadNueva(t *testing.T) {
	env := newSalesEnv()
	env.store.PutProduct(entity.Product{
		ID: "botellon", SKU: "BOT-20", Name: "Botellón 20L", Unit: "botellón",
		ReturnableContainer: true, IsActive: true,
	})
	env.store.PutPrice(entity.Price{
		ID: "pr-botellon", ProductID: "botellon", Amount: decimal.NewFromInt(12000),
		Channel: entity.PriceChannelAll, IsActive: true,
		ValidFrom: time.Now().Add(-time.Hour),
		Roles:     []entity.Role{entity.RoleGerente},
	})
	env.store.PutSupply(entity.Supply{ID: "envase", Name: "Botellón vacío", IsActive: true, KitComponent: true})
	env.store.PutSupply(entity.Supply{ID: "tapa", Name: "Tapa", IsActive: true, KitComponent: true})
	ctx := context.Background()

	_, err := env.stock.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "botellon", Type: entity.MovementProductionIn, Quantity: 20, Actor: "seed",
	})
	require.NoError(t, err)

	// Recarga: sin descuento de kit.
	_, err = env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCash, "botellon", 3))
	require.NoError(t, err)
	for _, id := range []string{"envase", "tapa"} {
		balance, err := env.supplies.CurrentBalance(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance, "la recarga no consume kit")
	}

	// Unidad nueva: un envase y una tapa por unidad.
	req := saleReq(entity.ChannelPlant, entity.PaymentCash, "botellon", 2)
	req.IsNewKitUnit = true
	_, err = env.orch.CreateSale(ctx, gerente(), req)
	require.NoError(t, err)
	for _, id := range []string{"envase", "tapa"} {
		balance, err := env.supplies.CurrentBalance(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(-2), balance)
	}
}

// La cancelación asienta RETURN por cada ítem sin borrar nada del libro.
func TestCancelSale_RetornaStockYConservaLibro(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()

	sale, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 10))
	require.NoError(t, err)

	cancelled, err := env.orch.CancelSale(ctx, gerente(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, cancelled.Status)

	balance, err := env.stock.CurrentBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance, "el RETURN restituye el stock")

	movRepo := memory.NewInventoryMovementRepository(env.store)
	movs, err := movRepo.ListByProduct("p1", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3, "producción + venta + retorno, nada se borra")
	assert.Equal(t, entity.MovementReturn, movs[0].Type)
	assert.Equal(t, sale.ID, movs[0].ReferenceID)

	// Cancelar dos veces no duplica retornos.
	_, err = env.orch.CancelSale(ctx, gerente(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestCancelSale_Validaciones(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()

	_, err := env.orch.CancelSale(ctx, gerente(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El cajero no tiene la capacidad de cancelar.
	sale, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1))
	require.NoError(t, err)
	_, err = env.orch.CancelSale(ctx, cajero(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMarkAsPaid(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()

	due := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	req := saleReq(entity.ChannelPlant, entity.PaymentCredit, "p1", 1)
	req.DueDate = &due
	sale, err := env.orch.CreateSale(ctx, gerente(), req)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, sale.PaymentStatus)

	require.NoError(t, env.orch.MarkAsPaid(ctx, gerente(), sale.ID))
	stored, err := env.orch.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)

	// Sobre una venta cancelada no se registra pago.
	cash, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 1))
	require.NoError(t, err)
	_, err = env.orch.CancelSale(ctx, gerente(), cash.ID)
	require.NoError(t, err)
	err = env.orch.MarkAsPaid(ctx, gerente(), cash.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
}

func TestReceiptPDF(t *testing.T) {
	env := newSalesEnv()
	env.seedCatalog("p1", 100, 5000)
	ctx := context.Background()

	sale, err := env.orch.CreateSale(ctx, gerente(), saleReq(entity.ChannelPlant, entity.PaymentCash, "p1", 2))
	require.NoError(t, err)

	doc, err := env.orch.ReceiptPDF(ctx, sale.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}
