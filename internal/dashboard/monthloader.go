package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/ludoteca-service/internal/calendar"
)

// FetchFunc loads the records of one month from the backing store
type FetchFunc[T any] func(ctx context.Context, month calendar.YearMonth) ([]T, error)

// MergeFunc merges fetched records into the caller's collection
type MergeFunc[T any] func(items []T)

// MonthLoader fetches months on demand and tracks which months are loaded,
// loading and expanded. Concurrent loads of the same month share one fetch.
type MonthLoader[T any] struct {
	mu       sync.RWMutex
	loaded   map[string]struct{}
	loading  map[string]struct{}
	expanded map[string]struct{}

	group  singleflight.Group
	logger Logger
}

func NewMonthLoader[T any](logger Logger) *MonthLoader[T] {
	return &MonthLoader[T]{
		loaded:   make(map[string]struct{}),
		loading:  make(map[string]struct{}),
		expanded: make(map[string]struct{}),
		logger:   logger,
	}
}

// LoadMonth fetches month unless it is already loaded. On success the
// records are merged and the month is marked loaded (and expanded when
// initial). On failure the month stays unloaded so a later call retries;
// the error is logged and returned.
func (l *MonthLoader[T]) LoadMonth(ctx context.Context, month calendar.YearMonth, fetch FetchFunc[T], merge MergeFunc[T], initial bool) error {
	key := month.Key()

	if !l.IsLoaded(key) {
		_, err, _ := l.group.Do(key, func() (interface{}, error) {
			// a previous flight may have finished between the check and Do
			if l.IsLoaded(key) {
				return nil, nil
			}

			l.setFlag(flagLoading, key, true)
			defer l.setFlag(flagLoading, key, false)

			items, err := fetch(ctx, month)
			if err != nil {
				l.logger.Error("LoadMonth: failed to fetch month=%s: %v", key, err)
				return nil, err
			}

			merge(items)
			l.setFlag(flagLoaded, key, true)
			l.logger.Info("LoadMonth: month=%s loaded, items=%d", key, len(items))
			return nil, nil
		})
		if err != nil {
			return err
		}
	}

	if initial {
		l.setFlag(flagExpanded, key, true)
	}
	return nil
}

// ToggleMonth loads month if needed and flips its expanded state.
// A month whose load failed is not expanded.
func (l *MonthLoader[T]) ToggleMonth(ctx context.Context, month calendar.YearMonth, fetch FetchFunc[T], merge MergeFunc[T]) (expanded bool, err error) {
	key := month.Key()

	if !l.IsLoaded(key) {
		if err := l.LoadMonth(ctx, month, fetch, merge, false); err != nil {
			return l.IsExpanded(key), err
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.expanded[key]; ok {
		delete(l.expanded, key)
		return false, nil
	}
	l.expanded[key] = struct{}{}
	return true, nil
}

// IsLoaded reports whether month key has been fetched successfully
func (l *MonthLoader[T]) IsLoaded(key string) bool {
	return l.has(flagLoaded, key)
}

// IsLoading reports whether a fetch for month key is in flight
func (l *MonthLoader[T]) IsLoading(key string) bool {
	return l.has(flagLoading, key)
}

// IsExpanded reports whether month key is shown expanded
func (l *MonthLoader[T]) IsExpanded(key string) bool {
	return l.has(flagExpanded, key)
}

// Reset forgets all loaded months (used after a full reload)
func (l *MonthLoader[T]) Reset() {
	l.mu.Lock()
	l.loaded = make(map[string]struct{})
	l.mu.Unlock()
}

type flag int

const (
	flagLoaded flag = iota
	flagLoading
	flagExpanded
)

// set must be called with l.mu held
func (l *MonthLoader[T]) set(f flag) map[string]struct{} {
	switch f {
	case flagLoaded:
		return l.loaded
	case flagLoading:
		return l.loading
	default:
		return l.expanded
	}
}

func (l *MonthLoader[T]) has(f flag, key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.set(f)[key]
	return ok
}

func (l *MonthLoader[T]) setFlag(f flag, key string, on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if on {
		l.set(f)[key] = struct{}{}
		return
	}
	delete(l.set(f), key)
}
