package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schwiftylabs/goportal/internal/annotation"
)

// recorder collects search dispatches and delivered outcomes.
type recorder struct {
	mu        sync.Mutex
	calls     []string
	delivered []string
	cleared   int
	errs      []string
}

func (r *recorder) recordCall(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, q)
}

func (r *recorder) callbacks(done chan<- struct{}) Callbacks {
	return Callbacks{
		OnResults: func(query string, _ []annotation.SearchResult) {
			r.mu.Lock()
			r.delivered = append(r.delivered, query)
			r.mu.Unlock()
			if done != nil {
				done <- struct{}{}
			}
		},
		OnError: func(query string, err error) {
			r.mu.Lock()
			r.errs = append(r.errs, err.Error())
			r.mu.Unlock()
			if done != nil {
				done <- struct{}{}
			}
		},
		OnClear: func() {
			r.mu.Lock()
			r.cleared++
			r.mu.Unlock()
		},
	}
}

func (r *recorder) snapshot() (calls, delivered []string, cleared int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...), append([]string(nil), r.delivered...), r.cleared
}

func TestOnlyLastQueryInWindowFires(t *testing.T) {
	rec := &recorder{}
	done := make(chan struct{}, 1)

	d := NewDebouncer(func(_ context.Context, q string, _ int) ([]annotation.SearchResult, error) {
		rec.recordCall(q)
		return []annotation.SearchResult{{ID: "2", Name: "Morty Smith", Type: "character"}}, nil
	}, rec.callbacks(done), Config{Interval: 30 * time.Millisecond})
	defer d.Close()

	d.OnQueryChange("mort")
	time.Sleep(5 * time.Millisecond)
	d.OnQueryChange("morty")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for results")
	}

	calls, delivered, _ := rec.snapshot()
	assert.Equal(t, []string{"morty"}, calls, "Only the last query in the window dispatches")
	assert.Equal(t, []string{"morty"}, delivered)
}

func TestEmptyQueryClearsWithoutNetworkCall(t *testing.T) {
	rec := &recorder{}

	d := NewDebouncer(func(_ context.Context, q string, _ int) ([]annotation.SearchResult, error) {
		rec.recordCall(q)
		return nil, nil
	}, rec.callbacks(nil), Config{Interval: 20 * time.Millisecond})
	defer d.Close()

	d.OnQueryChange("rick")
	d.OnQueryChange("   ")

	// Wait well past the window: the cleared pending dispatch must not fire.
	time.Sleep(80 * time.Millisecond)

	calls, _, cleared := rec.snapshot()
	assert.Empty(t, calls, "Whitespace-only query suppresses the lookup entirely")
	assert.Equal(t, 1, cleared)
}

func TestStaleResponseDoesNotOverwriteNewerQuery(t *testing.T) {
	rec := &recorder{}
	done := make(chan struct{}, 2)

	started := make(chan string, 2)
	release := make(chan struct{})

	d := NewDebouncer(func(_ context.Context, q string, _ int) ([]annotation.SearchResult, error) {
		rec.recordCall(q)
		started <- q
		if q == "mor" {
			<-release // hold the first lookup in flight
		}
		return []annotation.SearchResult{{ID: "1", Name: q}}, nil
	}, rec.callbacks(done), Config{Interval: 10 * time.Millisecond})
	defer d.Close()

	d.OnQueryChange("mor")
	require.Equal(t, "mor", <-started, "first lookup should dispatch")

	// New keystroke while the first lookup is in flight.
	d.OnQueryChange("morty")
	require.Equal(t, "morty", <-started)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for morty results")
	}

	// Let the stale lookup resolve; it must be dropped.
	close(release)
	time.Sleep(50 * time.Millisecond)

	_, delivered, _ := rec.snapshot()
	assert.Equal(t, []string{"morty"}, delivered, "Stale response must not overwrite newer results")
}

func TestSearchErrorDelivered(t *testing.T) {
	rec := &recorder{}
	done := make(chan struct{}, 1)

	d := NewDebouncer(func(_ context.Context, q string, _ int) ([]annotation.SearchResult, error) {
		return nil, errors.New("search backend unavailable")
	}, rec.callbacks(done), Config{Interval: 10 * time.Millisecond})
	defer d.Close()

	d.OnQueryChange("rick")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.errs, 1)
	assert.Contains(t, rec.errs[0], "search backend unavailable")
}

func TestCloseStopsPendingDispatch(t *testing.T) {
	rec := &recorder{}

	d := NewDebouncer(func(_ context.Context, q string, _ int) ([]annotation.SearchResult, error) {
		rec.recordCall(q)
		return nil, nil
	}, rec.callbacks(nil), Config{Interval: 10 * time.Millisecond})

	d.OnQueryChange("rick")
	d.Close()

	time.Sleep(50 * time.Millisecond)
	calls, _, _ := rec.snapshot()
	assert.Empty(t, calls)
}
