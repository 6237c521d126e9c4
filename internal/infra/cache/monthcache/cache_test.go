package monthcache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

type countingMetrics struct {
	results map[string]int
}

func (m *countingMetrics) IncMonthCache(result string) {
	if m.results == nil {
		m.results = map[string]int{}
	}
	m.results[result]++
}

// memRedis отвечает на GET/SET/INCR/PING из памяти, не открывая соединений
type memRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemRedis(t *testing.T) (*redis.Client, *memRedis) {
	t.Helper()
	m := &memRedis{data: map[string]string{}}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	rdb.AddHook(m)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, m
}

func (m *memRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (m *memRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (m *memRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		m.mu.Lock()
		defer m.mu.Unlock()

		args := cmd.Args()
		key := ""
		if len(args) > 1 {
			key = fmt.Sprint(args[1])
		}

		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := m.data[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			if cmd.Name() == "set" {
				if b, ok := args[2].([]byte); ok {
					m.data[key] = string(b)
				} else {
					m.data[key] = fmt.Sprint(args[2])
				}
			}
			c.SetVal("OK")
		case *redis.IntCmd:
			n, _ := strconv.ParseInt(m.data[key], 10, 64)
			n++
			m.data[key] = strconv.FormatInt(n, 10)
			c.SetVal(n)
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "ludoteca:bookings:birthday:0:2024-03", MonthKey(domain.KindBirthday, 0, 2024, time.March))
	assert.Equal(t, "ludoteca:bookings:daycare:7:2023-12", MonthKey(domain.KindDaycare, 7, 2023, time.December))
	assert.Equal(t, "ludoteca:bookings:daycare:gen", generationKey(domain.KindDaycare))
}

func TestCache_DisabledIsNoop(t *testing.T) {
	c := New(nil, time.Minute, nopLogger{}, nil)
	ctx := context.Background()

	c.Set(ctx, domain.KindBirthday, 0, 2024, time.March, []*domain.Booking{{ID: 1}})
	_, gen, ok := c.Get(ctx, domain.KindBirthday, 2024, time.March)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)

	c.Invalidate(ctx, domain.KindBirthday)
	assert.NoError(t, c.Ping(ctx))
}

func TestCache_UnreachableRedisIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	m := &countingMetrics{}
	c := New(rdb, time.Minute, nopLogger{}, m)
	ctx := context.Background()

	_, gen, ok := c.Get(ctx, domain.KindDaycare, 2024, time.March)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)
	assert.Equal(t, 1, m.results["error"])

	c.Set(ctx, domain.KindDaycare, gen, 2024, time.March, nil)
	c.Invalidate(ctx, domain.KindDaycare)
	require.Error(t, c.Ping(ctx))
}

func TestCache_SetThenGet(t *testing.T) {
	rdb, _ := newMemRedis(t)
	m := &countingMetrics{}
	c := New(rdb, time.Minute, nopLogger{}, m)
	ctx := context.Background()

	_, gen, ok := c.Get(ctx, domain.KindBirthday, 2024, time.March)
	require.False(t, ok)
	assert.Equal(t, int64(0), gen)

	c.Set(ctx, domain.KindBirthday, gen, 2024, time.March, []*domain.Booking{{ID: 7, Status: domain.StatusPending}})

	got, _, ok := c.Get(ctx, domain.KindBirthday, 2024, time.March)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)

	_, _, ok = c.Get(ctx, domain.KindDaycare, 2024, time.March)
	assert.False(t, ok)
	assert.Equal(t, 1, m.results["hit"])
	assert.Equal(t, 2, m.results["miss"])
	assert.NoError(t, c.Ping(ctx))
}

func TestCache_InvalidateDropsMonths(t *testing.T) {
	rdb, _ := newMemRedis(t)
	c := New(rdb, time.Minute, nopLogger{}, nil)
	ctx := context.Background()

	_, gen, _ := c.Get(ctx, domain.KindDaycare, 2024, time.March)
	c.Set(ctx, domain.KindDaycare, gen, 2024, time.March, []*domain.Booking{{ID: 1}})
	c.Invalidate(ctx, domain.KindDaycare)

	_, next, ok := c.Get(ctx, domain.KindDaycare, 2024, time.March)
	assert.False(t, ok)
	assert.Equal(t, gen+1, next)
}

func TestCache_SetAfterInvalidateIsNotServed(t *testing.T) {
	rdb, mem := newMemRedis(t)
	c := New(rdb, time.Minute, nopLogger{}, nil)
	ctx := context.Background()

	// промах, затем изменение бронирования до записи выборки в кэш
	_, gen, ok := c.Get(ctx, domain.KindBirthday, 2024, time.March)
	require.False(t, ok)
	c.Invalidate(ctx, domain.KindBirthday)
	c.Set(ctx, domain.KindBirthday, gen, 2024, time.March, []*domain.Booking{{ID: 1, Status: domain.StatusPending}})

	_, _, ok = c.Get(ctx, domain.KindBirthday, 2024, time.March)
	assert.False(t, ok)
	assert.Contains(t, mem.data, MonthKey(domain.KindBirthday, gen, 2024, time.March))
	assert.NotContains(t, mem.data, MonthKey(domain.KindBirthday, gen+1, 2024, time.March))
}

func TestCache_SetWithoutGenerationIsSkipped(t *testing.T) {
	rdb, mem := newMemRedis(t)
	c := New(rdb, time.Minute, nopLogger{}, nil)

	c.Set(context.Background(), domain.KindBirthday, NoGeneration, 2024, time.March, []*domain.Booking{{ID: 1}})
	assert.Empty(t, mem.data)
}
