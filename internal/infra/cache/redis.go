package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationGateway/internal/domain"
)

const keyPrefix = "reservation-gateway:"

// store JSON-кэш поверх Redis. Ошибки Redis не пробрасываются:
// при недоступном кэше запрос уходит в источник
type store struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger Logger
}

func (s *store) read(ctx context.Context, key string, out interface{}) bool {
	if s.rdb == nil || s.ttl <= 0 {
		return false
	}
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("cache: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		s.logger.Warn("cache: decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *store) write(ctx context.Context, key string, val interface{}) {
	if s.rdb == nil || s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("cache: set %s: %v", key, err)
	}
}

// MerchantCache кэширует соответствие GUID -> ID ресторана
type MerchantCache struct {
	next  MerchantRepository
	store store
}

// NewMerchantCache оборачивает репозиторий ресторанов
func NewMerchantCache(next MerchantRepository, rdb redis.UniversalClient, ttl time.Duration, logger Logger) *MerchantCache {
	return &MerchantCache{next: next, store: store{rdb: rdb, ttl: ttl, logger: logger}}
}

// ResolveID возвращает ID ресторана. Ненайденные рестораны не кэшируются
func (c *MerchantCache) ResolveID(ctx context.Context, guid string) (int64, error) {
	key := keyPrefix + "merchant:" + guid

	var id int64
	if c.store.read(ctx, key, &id) {
		return id, nil
	}

	id, err := c.next.ResolveID(ctx, guid)
	if err != nil {
		return 0, err
	}

	c.store.write(ctx, key, id)
	return id, nil
}

// ConfigCache кэширует сырую конфигурацию ресторана
type ConfigCache struct {
	next  ConfigRepository
	store store
}

// NewConfigCache оборачивает репозиторий конфигурации
func NewConfigCache(next ConfigRepository, rdb redis.UniversalClient, ttl time.Duration, logger Logger) *ConfigCache {
	return &ConfigCache{next: next, store: store{rdb: rdb, ttl: ttl, logger: logger}}
}

// GetByMerchant возвращает конфигурацию ресторана
func (c *ConfigCache) GetByMerchant(ctx context.Context, merchantID int64) (*domain.MerchantConfigRow, error) {
	key := fmt.Sprintf("%sconfig:%d", keyPrefix, merchantID)

	var row domain.MerchantConfigRow
	if c.store.read(ctx, key, &row) {
		return &row, nil
	}

	fresh, err := c.next.GetByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	c.store.write(ctx, key, fresh)
	return fresh, nil
}
