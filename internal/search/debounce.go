// Package search debounces type-ahead lookups against the remote search
// endpoint.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/schwiftylabs/goportal/internal/annotation"
)

// Default debounce parameters.
const (
	DefaultInterval = 300 * time.Millisecond
	DefaultLimit    = 10
)

// SearchFunc performs the remote lookup.
type SearchFunc func(ctx context.Context, query string, limit int) ([]annotation.SearchResult, error)

// Callbacks receive lookup outcomes. OnClear fires for whitespace-only
// queries, which suppress the dropdown without a network call.
type Callbacks struct {
	OnResults func(query string, results []annotation.SearchResult)
	OnError   func(query string, err error)
	OnClear   func()
}

// Config tunes the debouncer.
type Config struct {
	Interval time.Duration
	Limit    int
}

// Debouncer delays remote lookups while the user types. Every query change
// restarts the window; only the last query in a window dispatches a lookup.
// In-flight lookups are not cancelled, but a response resolving after a
// newer query has been issued is dropped (last-query-wins, by sequence
// token captured at dispatch).
type Debouncer struct {
	mu       sync.Mutex
	search   SearchFunc
	cb       Callbacks
	interval time.Duration
	limit    int
	timer    *time.Timer
	seq      uint64
	closed   bool
}

// NewDebouncer creates a debouncer. Zero config fields get defaults.
func NewDebouncer(search SearchFunc, cb Callbacks, cfg Config) *Debouncer {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	return &Debouncer{
		search:   search,
		cb:       cb,
		interval: cfg.Interval,
		limit:    cfg.Limit,
	}
}

// OnQueryChange restarts the debounce window for query. A whitespace-only
// query clears results immediately and invalidates any in-flight lookup.
func (d *Debouncer) OnQueryChange(query string) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}

	d.seq++
	token := d.seq
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if strings.TrimSpace(query) == "" {
		onClear := d.cb.OnClear
		d.mu.Unlock()
		if onClear != nil {
			onClear()
		}
		return
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.run(token, query)
	})
	d.mu.Unlock()
}

// Close stops any pending dispatch and drops in-flight results.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) run(token uint64, query string) {
	d.mu.Lock()
	if d.closed || token != d.seq {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	results, err := d.search(context.Background(), query, d.limit)

	d.mu.Lock()
	stale := d.closed || token != d.seq
	d.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		if d.cb.OnError != nil {
			d.cb.OnError(query, err)
		}
		return
	}
	if d.cb.OnResults != nil {
		d.cb.OnResults(query, results)
	}
}
