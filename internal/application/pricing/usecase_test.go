package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/pricing"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/planta-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// fakeCache cache en memoria para observar hits y escrituras.
type fakeCache struct {
	data map[string][]dto.PriceResponse
	sets int
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]dto.PriceResponse)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]dto.PriceResponse, bool, error) {
	prices, ok := f.data[key]
	if ok {
		f.hits++
	}
	return prices, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, prices []dto.PriceResponse, ttl time.Duration) error {
	f.sets++
	f.data[key] = prices
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, pattern string) error {
	f.data = make(map[string][]dto.PriceResponse)
	return nil
}

func newPricingEnv(c pricing.Cache) (*memory.Store, *pricing.Resolver) {
	store := memory.NewStore()
	resolver := pricing.NewResolver(
		memory.NewPriceRepository(store),
		c,
		time.Minute,
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	return store, resolver
}

func seedPrice(store *memory.Store, id, productID, channel string, amount int64, roles ...entity.Role) {
	store.PutPrice(entity.Price{
		ID:        id,
		ProductID: productID,
		Amount:    decimal.NewFromInt(amount),
		Channel:   channel,
		IsActive:  true,
		ValidFrom: time.Now().Add(-time.Hour),
		Roles:     roles,
	})
}

// La lista de precios filtra por rol, canal (con comodín ALL) y ventana de
// validez, y sale ascendente por monto.
func TestResolver_PreciosElegibles(t *testing.T) {
	store, resolver := newPricingEnv(cache.NewNoopPriceCache())
	ctx := context.Background()
	now := time.Now()

	seedPrice(store, "caro", "p1", entity.ChannelPlant, 7000, entity.RoleCajero)
	seedPrice(store, "barato", "p1", entity.PriceChannelAll, 5000, entity.RoleCajero, entity.RoleVendedor)
	seedPrice(store, "solo-ruta", "p1", entity.ChannelRoute, 6000, entity.RoleVendedor)
	seedPrice(store, "solo-gerente", "p1", entity.ChannelPlant, 4000, entity.RoleGerente)

	// Precio vencido: no debe aparecer para nadie.
	expired := now.Add(-time.Minute)
	store.PutPrice(entity.Price{
		ID: "vencido", ProductID: "p1", Amount: decimal.NewFromInt(100),
		Channel: entity.PriceChannelAll, IsActive: true,
		ValidFrom: now.Add(-time.Hour), ValidUntil: &expired,
		Roles: []entity.Role{entity.RoleCajero},
	})
	// Precio futuro: tampoco.
	store.PutPrice(entity.Price{
		ID: "futuro", ProductID: "p1", Amount: decimal.NewFromInt(200),
		Channel: entity.PriceChannelAll, IsActive: true,
		ValidFrom: now.Add(time.Hour),
		Roles:     []entity.Role{entity.RoleCajero},
	})
	// Inactivo.
	store.PutPrice(entity.Price{
		ID: "inactivo", ProductID: "p1", Amount: decimal.NewFromInt(300),
		Channel: entity.PriceChannelAll, IsActive: false,
		ValidFrom: now.Add(-time.Hour),
		Roles:     []entity.Role{entity.RoleCajero},
	})

	prices, err := resolver.AvailablePrices(ctx, entity.RoleCajero, entity.ChannelPlant, "p1")
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "barato", prices[0].ID, "ascendente por monto: el primero es el sugerido")
	assert.Equal(t, "caro", prices[1].ID)

	prices, err = resolver.AvailablePrices(ctx, entity.RoleVendedor, entity.ChannelRoute, "p1")
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "barato", prices[0].ID)
	assert.Equal(t, "solo-ruta", prices[1].ID)
}

func TestResolver_EntradaInvalida(t *testing.T) {
	_, resolver := newPricingEnv(cache.NewNoopPriceCache())
	ctx := context.Background()

	_, err := resolver.AvailablePrices(ctx, "marciano", entity.ChannelPlant, "p1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = resolver.AvailablePrices(ctx, entity.RoleCajero, "BODEGA", "p1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La lista se sirve del cache mientras el TTL viva; la fuente solo se
// consulta en el primer miss.
func TestResolver_ListaCacheada(t *testing.T) {
	fc := newFakeCache()
	store, resolver := newPricingEnv(fc)
	ctx := context.Background()
	seedPrice(store, "pr1", "p1", entity.PriceChannelAll, 5000, entity.RoleCajero)

	first, err := resolver.AvailablePrices(ctx, entity.RoleCajero, entity.ChannelPlant, "p1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, fc.sets)
	assert.Equal(t, 0, fc.hits)

	// Borramos el precio de la fuente: la segunda lectura sigue viniendo
	// del cache.
	store.PutPrice(entity.Price{ID: "pr1", ProductID: "p1", IsActive: false})
	second, err := resolver.AvailablePrices(ctx, entity.RoleCajero, entity.ChannelPlant, "p1")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, fc.hits)
	assert.Equal(t, 1, fc.sets, "el hit no reescribe el cache")
}

// Authorize nunca usa el cache: verifica contra la fuente el producto, el
// canal, el rol y la ventana del precio elegido.
func TestResolver_Authorize(t *testing.T) {
	fc := newFakeCache()
	store, resolver := newPricingEnv(fc)
	ctx := context.Background()
	now := time.Now()
	seedPrice(store, "pr1", "p1", entity.ChannelPlant, 5000, entity.RoleCajero)

	price, err := resolver.Authorize(ctx, entity.RoleCajero, entity.ChannelPlant, "pr1", "p1", now)
	require.NoError(t, err)
	assert.True(t, price.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 0, fc.hits+fc.sets, "la autorización no toca el cache")

	// Precio inexistente.
	_, err = resolver.Authorize(ctx, entity.RoleCajero, entity.ChannelPlant, "nope", "p1", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Precio de otro producto.
	_, err = resolver.Authorize(ctx, entity.RoleCajero, entity.ChannelPlant, "pr1", "p2", now)
	assert.ErrorIs(t, err, domain.ErrPriceMismatch)

	// Rol sin acceso al precio.
	_, err = resolver.Authorize(ctx, entity.RoleVendedor, entity.ChannelPlant, "pr1", "p1", now)
	assert.ErrorIs(t, err, domain.ErrPriceNotAllowed)

	// Canal equivocado.
	_, err = resolver.Authorize(ctx, entity.RoleCajero, entity.ChannelRoute, "pr1", "p1", now)
	assert.ErrorIs(t, err, domain.ErrPriceNotAllowed)
}
