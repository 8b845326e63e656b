// Package cache содержит Redis-кеш календаря доступности.
// Кеш ускоряет только путь чтения; пути записи (создание, перенос,
// отмена) всегда работают с БД и инвалидируют затронутые дни.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krasivo-app/SalonBookingService/internal/domain"
)

// ErrCacheMiss возвращается, когда запись отсутствует в кеше
var ErrCacheMiss = errors.New("availability.cache: cache miss")

// AvailabilityCache кеш дневной доступности салона
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache создает новый экземпляр кеша доступности
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// InvalidateSalon сбрасывает кеш доступности для всех услуг салона
// Ключи по услугам перечислять нельзя без SCAN, поэтому инвалидация
// идет через маркер поколения салона, входящий в ключ дня
func (c *AvailabilityCache) InvalidateSalon(ctx context.Context, salonID int64) error {
	if err := c.client.Incr(ctx, generationKey(salonID)).Err(); err != nil {
		return fmt.Errorf("availability.cache: InvalidateSalon - incr generation: %w", err)
	}
	return nil
}

// Generation возвращает текущее поколение кеша салона
// Поколение входит в ключи дней: после инвалидации старые записи
// перестают находиться и доживают до истечения TTL
func (c *AvailabilityCache) Generation(ctx context.Context, salonID int64) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(salonID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("availability.cache: Generation - get key: %w", err)
	}
	return gen, nil
}

// GetDay получает кешированную доступность дня в рамках поколения салона
func (c *AvailabilityCache) GetDay(ctx context.Context, salonID, serviceID, generation int64, date string) (*domain.DailyAvailability, error) {
	data, err := c.client.Get(ctx, dayKey(salonID, serviceID, generation, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("availability.cache: GetDay - get key: %w", err)
	}

	var day domain.DailyAvailability
	if err := json.Unmarshal(data, &day); err != nil {
		return nil, fmt.Errorf("availability.cache: GetDay - unmarshal: %w", err)
	}

	return &day, nil
}

// SetDay кеширует доступность дня с TTL в рамках поколения салона
func (c *AvailabilityCache) SetDay(ctx context.Context, salonID, serviceID, generation int64, date string, day *domain.DailyAvailability) error {
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("availability.cache: SetDay - marshal: %w", err)
	}

	if err := c.client.Set(ctx, dayKey(salonID, serviceID, generation, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("availability.cache: SetDay - set key: %w", err)
	}

	return nil
}

func dayKey(salonID, serviceID, generation int64, date string) string {
	return fmt.Sprintf("availability:salon:%d:gen:%d:service:%d:date:%s", salonID, generation, serviceID, date)
}

func generationKey(salonID int64) string {
	return fmt.Sprintf("availability:salon:%d:generation", salonID)
}
