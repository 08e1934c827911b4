// Package pricing resuelve qué precios puede ver y usar un actor según su
// rol y el canal de venta. La lista visible se cachea con TTL corto; la
// verificación de autorización de un precio concreto va siempre a la base,
// nunca al cache.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/domain"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
	"github.com/tu-usuario/planta-pos/internal/domain/repository"
	"github.com/tu-usuario/planta-pos/pkg/logger"
)

// Cache almacén de listas de precios ya resueltas por rol+canal+producto.
type Cache interface {
	Get(ctx context.Context, key string) ([]dto.PriceResponse, bool, error)
	Set(ctx context.Context, key string, prices []dto.PriceResponse, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// Resolver caso de uso de acceso a precios.
type Resolver struct {
	priceRepo repository.PriceRepository
	cache     Cache
	cacheTTL  time.Duration
	log       *logger.Logger
}

// NewResolver crea el resolver. cache puede ser la implementación Noop.
func NewResolver(priceRepo repository.PriceRepository, cache Cache, cacheTTL time.Duration, log *logger.Logger) *Resolver {
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &Resolver{priceRepo: priceRepo, cache: cache, cacheTTL: cacheTTL, log: log}
}

// AvailablePrices precios elegibles para rol+canal+producto, ascendente por
// monto. El primero es el precio por defecto sugerido en UI; el caller sigue
// eligiendo price_id explícito al vender.
func (r *Resolver) AvailablePrices(ctx context.Context, role entity.Role, channel, productID string) ([]dto.PriceResponse, error) {
	if !role.Valid() || !entity.ValidChannel(channel) {
		return nil, domain.ErrInvalidInput
	}

	key := cacheKey(role, channel, productID)
	if cached, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("cache de precios no disponible")
	}

	prices, err := r.priceRepo.ListEligible(role, channel, productID, time.Now())
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, dto.PriceResponse{
			ID:         p.ID,
			ProductID:  p.ProductID,
			Amount:     p.Amount,
			Channel:    p.Channel,
			ValidUntil: p.ValidUntil,
		})
	}

	if err := r.cache.Set(ctx, key, out, r.cacheTTL); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear precios")
	}
	return out, nil
}

// Authorize verifica que el actor pueda usar el precio para el producto en el
// canal dado. Devuelve el precio para el snapshot. Lee siempre de la base.
func (r *Resolver) Authorize(ctx context.Context, role entity.Role, channel, priceID, productID string, now time.Time) (*entity.Price, error) {
	price, err := r.priceRepo.GetByID(priceID)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, domain.ErrNotFound
	}
	if price.ProductID != productID {
		return nil, domain.ErrPriceMismatch
	}
	if !price.EligibleFor(role, channel, now) {
		return nil, domain.ErrPriceNotAllowed
	}
	return price, nil
}

func cacheKey(role entity.Role, channel, productID string) string {
	return fmt.Sprintf("prices:%s:%s:%s", role, channel, productID)
}
