package overdue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pos/internal/application/overdue"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

func newSweepEnv() (*memory.Store, *overdue.Sweeper) {
	store := memory.NewStore()
	sweeper := overdue.NewSweeper(
		memory.NewSaleRepository(store),
		memory.NewCustomerRepository(store),
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	return store, sweeper
}

func seedCreditSale(store *memory.Store, id, customerID string, due time.Time, paymentStatus string) {
	cid := customerID
	sale := &entity.Sale{
		ID:            id,
		InvoiceNumber: "PLT-20260801-" + id,
		Channel:       entity.ChannelPlant,
		PaymentMethod: entity.PaymentCredit,
		Status:        entity.SaleStatusCompleted,
		PaymentStatus: paymentStatus,
		DueDate:       &due,
		CreatedAt:     due.AddDate(0, 0, -30),
	}
	if customerID != "" {
		sale.CustomerID = &cid
	}
	if err := memory.NewSaleRepository(store).Create(sale); err != nil {
		panic(err)
	}
}

// El barrido marca overdue las ventas a crédito impagas con due_date pasada
// y pone en lista negra a sus clientes.
func TestSweep_MarcaVencidasYListaNegra(t *testing.T) {
	store, sweeper := newSweepEnv()
	now := time.Now()
	store.PutCustomer(entity.Customer{ID: "c1", Name: "Tienda El Paso"})
	store.PutCustomer(entity.Customer{ID: "c2", Name: "Restaurante Mar"})

	seedCreditSale(store, "s1", "c1", now.AddDate(0, 0, -3), entity.PaymentStatusUnpaid) // vencida
	seedCreditSale(store, "s2", "c2", now.AddDate(0, 0, 5), entity.PaymentStatusUnpaid)  // al día
	seedCreditSale(store, "s3", "", now.AddDate(0, 0, -1), entity.PaymentStatusUnpaid)   // vencida, sin cliente

	result, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SalesMarked, "s1 y s3 están vencidas")
	assert.Equal(t, 1, result.CustomersBlacklisted, "solo s1 tiene cliente")

	saleRepo := memory.NewSaleRepository(store)
	s1, err := saleRepo.GetByID("s1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusOverdue, s1.PaymentStatus)
	s2, err := saleRepo.GetByID("s2")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusUnpaid, s2.PaymentStatus, "la venta al día no se toca")

	customer, err := memory.NewCustomerRepository(store).GetByID("c1")
	require.NoError(t, err)
	assert.True(t, customer.IsBlacklisted)
	assert.Contains(t, customer.BlacklistReason, s1.InvoiceNumber)
}

// Un segundo barrido no re-marca ni re-lista: las ventas ya están en overdue
// y el cliente ya está en la lista.
func TestSweep_Idempotente(t *testing.T) {
	store, sweeper := newSweepEnv()
	now := time.Now()
	store.PutCustomer(entity.Customer{ID: "c1", Name: "Tienda El Paso"})
	seedCreditSale(store, "s1", "c1", now.AddDate(0, 0, -3), entity.PaymentStatusUnpaid)

	first, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, first.SalesMarked)
	assert.Equal(t, 1, first.CustomersBlacklisted)

	second, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, second.SalesMarked)
	assert.Equal(t, 0, second.CustomersBlacklisted)
}

// Las pagadas y las canceladas quedan fuera aunque la fecha haya pasado.
func TestSweep_IgnoraPagadasYCanceladas(t *testing.T) {
	store, sweeper := newSweepEnv()
	now := time.Now()
	store.PutCustomer(entity.Customer{ID: "c1", Name: "Tienda El Paso"})

	seedCreditSale(store, "s1", "c1", now.AddDate(0, 0, -3), entity.PaymentStatusPaid)
	seedCreditSale(store, "s2", "c1", now.AddDate(0, 0, -3), entity.PaymentStatusUnpaid)
	require.NoError(t, memory.NewSaleRepository(store).UpdateStatus("s2", entity.SaleStatusCancelled))

	result, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SalesMarked)
	assert.Equal(t, 0, result.CustomersBlacklisted)
}
