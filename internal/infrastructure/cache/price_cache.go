// Package cache implementa el cache de listas de precios sobre Redis, con
// una variante Noop para correr sin Redis (tests, demo, despliegues chicos).
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/planta-pos/internal/application/dto"
	"github.com/tu-usuario/planta-pos/internal/application/pricing"
	"github.com/tu-usuario/planta-pos/pkg/config"
)

var _ pricing.Cache = (*RedisPriceCache)(nil)
var _ pricing.Cache = (*NoopPriceCache)(nil)

// NewRedisClient crea el cliente Redis desde la configuración.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisPriceCache cache de precios sobre Redis. Solo guarda listas ya
// resueltas; la autorización de un precio concreto nunca pasa por aquí.
type RedisPriceCache struct {
	client *redis.Client
}

// NewRedisPriceCache construye el cache sobre un cliente existente.
func NewRedisPriceCache(client *redis.Client) *RedisPriceCache {
	return &RedisPriceCache{client: client}
}

// Get devuelve la lista cacheada, con ok=false si no existe.
func (c *RedisPriceCache) Get(ctx context.Context, key string) ([]dto.PriceResponse, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var prices []dto.PriceResponse
	if err := json.Unmarshal(raw, &prices); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return prices, true, nil
}

// Set guarda la lista con TTL.
func (c *RedisPriceCache) Set(ctx context.Context, key string, prices []dto.PriceResponse, ttl time.Duration) error {
	raw, err := json.Marshal(prices)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate borra las claves que matcheen el patrón (SCAN + DEL).
func (c *RedisPriceCache) Invalidate(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache del: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	return nil
}

// NoopPriceCache implementación nula: todo Get es miss.
type NoopPriceCache struct{}

// NewNoopPriceCache construye el cache nulo.
func NewNoopPriceCache() *NoopPriceCache { return &NoopPriceCache{} }

func (NoopPriceCache) Get(ctx context.Context, key string) ([]dto.PriceResponse, bool, error) {
	return nil, false, nil
}

func (NoopPriceCache) Set(ctx context.Context, key string, prices []dto.PriceResponse, ttl time.Duration) error {
	return nil
}

func (NoopPriceCache) Invalidate(ctx context.Context, pattern string) error {
	return nil
}
