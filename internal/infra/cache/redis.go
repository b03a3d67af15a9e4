package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

const (
	packagesKey  = "cache:catalog:packages"
	timeSlotsKey = "cache:catalog:time-slots"
)

// ErrCache ошибка обращения к redis
var ErrCache = errors.New("cache: redis error")

// RedisCache кэш каталога: активные пакеты и слоты.
// Промах возвращает nil без ошибки.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// Ping проверка соединения при старте
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrCache, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetPackages(ctx context.Context) ([]*domain.Package, error) {
	var packages []*domain.Package
	found, err := c.get(ctx, packagesKey, &packages)
	if err != nil || !found {
		return nil, err
	}
	return packages, nil
}

func (c *RedisCache) SetPackages(ctx context.Context, packages []*domain.Package) error {
	return c.set(ctx, packagesKey, packages)
}

func (c *RedisCache) GetTimeSlots(ctx context.Context) ([]*domain.TimeSlot, error) {
	var slots []*domain.TimeSlot
	found, err := c.get(ctx, timeSlotsKey, &slots)
	if err != nil || !found {
		return nil, err
	}
	return slots, nil
}

func (c *RedisCache) SetTimeSlots(ctx context.Context, slots []*domain.TimeSlot) error {
	return c.set(ctx, timeSlotsKey, slots)
}

func (c *RedisCache) InvalidatePackages(ctx context.Context) error {
	return c.del(ctx, packagesKey)
}

func (c *RedisCache) InvalidateTimeSlots(ctx context.Context) error {
	return c.del(ctx, timeSlotsKey)
}

func (c *RedisCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrCache, key, err)
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrCache, key, err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}
	return nil
}

func (c *RedisCache) del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrCache, key, err)
	}
	return nil
}
