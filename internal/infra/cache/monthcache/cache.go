package monthcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/ludoteca-service/internal/domain"
	"github.com/m04kA/ludoteca-service/pkg/businesstime"
)

const keyPrefix = "ludoteca:bookings"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Metrics счётчик попаданий в кэш
type Metrics interface {
	IncMonthCache(result string)
}

// Cache кэширует выборку бронирований за месяц по виду.
// Инвалидация через счётчик поколения вида: после INCR старые ключи
// больше не читаются и истекают по TTL.
// Ошибки Redis не прерывают запрос: чтение считается промахом, запись пропускается.
type Cache struct {
	rdb     *redis.Client
	ttl     time.Duration
	logger  Logger
	metrics Metrics
}

// New создаёт кэш. rdb == nil выключает кэш.
func New(rdb *redis.Client, ttl time.Duration, logger Logger, metrics Metrics) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, logger: logger, metrics: metrics}
}

// NoGeneration поколение, под которым Set ничего не пишет
// (кэш выключен или поколение не прочитано)
const NoGeneration int64 = -1

// Get возвращает бронирования месяца, если они есть в кэше.
// При промахе отдаёт поколение, прочитанное до выборки из БД:
// его надо передать в Set, чтобы инвалидация между чтением БД
// и записью в кэш не оставила устаревшую выборку.
func (c *Cache) Get(ctx context.Context, kind domain.BookingKind, year int, month time.Month) ([]*domain.Booking, int64, bool) {
	if c.rdb == nil {
		return nil, NoGeneration, false
	}

	gen, err := c.generation(ctx, kind)
	if err != nil {
		c.logger.Warn("monthcache.Get: generation of %s: %v", kind, err)
		c.inc("error")
		return nil, NoGeneration, false
	}
	key := MonthKey(kind, gen, year, month)

	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.inc("miss")
		return nil, gen, false
	}
	if err != nil {
		c.logger.Warn("monthcache.Get: key=%s: %v", key, err)
		c.inc("error")
		return nil, gen, false
	}

	var bookings []*domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		c.logger.Warn("monthcache.Get: decode key=%s: %v", key, err)
		c.inc("error")
		return nil, gen, false
	}

	for _, b := range bookings {
		normalize(b)
	}

	c.inc("hit")
	return bookings, gen, true
}

// Set сохраняет бронирования месяца под поколением gen из Get.
// Если вид с тех пор инвалидирован, запись ляжет в старое поколение и не будет прочитана.
func (c *Cache) Set(ctx context.Context, kind domain.BookingKind, gen int64, year int, month time.Month, bookings []*domain.Booking) {
	if c.rdb == nil || gen < 0 {
		return
	}

	key := MonthKey(kind, gen, year, month)
	data, err := json.Marshal(bookings)
	if err != nil {
		c.logger.Warn("monthcache.Set: encode key=%s: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("monthcache.Set: key=%s: %v", key, err)
	}
}

// Invalidate сбрасывает все закэшированные месяцы вида
func (c *Cache) Invalidate(ctx context.Context, kind domain.BookingKind) {
	if c.rdb == nil {
		return
	}

	if err := c.rdb.Incr(ctx, generationKey(kind)).Err(); err != nil {
		c.logger.Warn("monthcache.Invalidate: %s: %v", kind, err)
	}
}

// Ping проверяет доступность Redis (для /readyz)
func (c *Cache) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) generation(ctx context.Context, kind domain.BookingKind) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(kind)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *Cache) inc(result string) {
	if c.metrics != nil {
		c.metrics.IncMonthCache(result)
	}
}

// MonthKey ключ выборки месяца в заданном поколении
func MonthKey(kind domain.BookingKind, gen int64, year int, month time.Month) string {
	return fmt.Sprintf("%s:%s:%d:%04d-%02d", keyPrefix, kind, gen, year, int(month))
}

func generationKey(kind domain.BookingKind) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, kind)
}

// normalize возвращает время в бизнес-зону после JSON
func normalize(b *domain.Booking) {
	b.CreatedAt = businesstime.In(b.CreatedAt)
	b.UpdatedAt = businesstime.In(b.UpdatedAt)
	if b.Slot != nil {
		b.Slot.Start = businesstime.In(b.Slot.Start)
		b.Slot.End = businesstime.In(b.Slot.End)
	}
}
