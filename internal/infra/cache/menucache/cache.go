// Package menucache кэширует справочник меню в Redis.
// Без клиента Redis все запросы уходят напрямую в источник.
package menucache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/barbershop-reservation/internal/domain"
)

const (
	cacheName = "menus"

	resultHit    = "hit"
	resultMiss   = "miss"
	resultError  = "error"
	resultBypass = "bypass"
)

// Cache обертка над MenuLister с кэшем в Redis
type Cache struct {
	source  MenuLister
	client  redis.Cmdable
	key     string
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// New создает кэш меню. client может быть nil.
func New(source MenuLister, client *redis.Client, key string, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	c := &Cache{
		source:  source,
		key:     key,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
	if client != nil {
		c.client = client
	}
	return c
}

// ListMenus возвращает меню из кэша, при промахе или ошибке Redis - из источника
func (c *Cache) ListMenus(ctx context.Context) ([]domain.Menu, error) {
	if c.client == nil {
		c.inc(resultBypass)
		return c.source.ListMenus(ctx)
	}

	raw, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var cached []cachedMenu
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			c.inc(resultHit)
			return fromCached(cached), nil
		}
		c.logger.Warn("menucache: broken cache entry %s, reloading", c.key)
		c.inc(resultError)
	case errors.Is(err, redis.Nil):
		c.inc(resultMiss)
	default:
		c.logger.Warn("menucache: get %s: %v", c.key, err)
		c.inc(resultError)
	}

	menus, err := c.source.ListMenus(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, menus)

	return menus, nil
}

// Invalidate удаляет закэшированный справочник
func (c *Cache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key).Err()
}

func (c *Cache) store(ctx context.Context, menus []domain.Menu) {
	payload, err := json.Marshal(toCached(menus))
	if err != nil {
		c.logger.Warn("menucache: encode menus: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("menucache: set %s: %v", c.key, err)
	}
}

func (c *Cache) inc(result string) {
	if c.metrics != nil {
		c.metrics.IncCache(cacheName, result)
	}
}
