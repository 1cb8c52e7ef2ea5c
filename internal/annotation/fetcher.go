package annotation

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/schwiftylabs/goportal/internal/store"
)

// FetchState holds the view state for a single text artifact.
type FetchState struct {
	Value   string `json:"value"`
	Loading bool   `json:"loading"`
	Err     string `json:"error,omitempty"`
}

// InsightsState holds the view state for the insight list.
type InsightsState struct {
	Items   []string `json:"items"`
	Loading bool     `json:"loading"`
	Err     string   `json:"error,omitempty"`
}

// EvaluationState holds the view state for the location evaluation.
type EvaluationState struct {
	Value   *LocationEvaluation `json:"value,omitempty"`
	Loading bool                `json:"loading"`
	Err     string              `json:"error,omitempty"`
}

// Fetcher retrieves generated artifacts for the current entity, cache first,
// and keeps the per-entity view state. Navigating to another entity discards
// view state; a result that resolves for a superseded identity is dropped.
//
// Fetch methods block until resolution — run them on their own goroutines
// when the caller must stay responsive. There is no automatic retry; the
// caller re-triggers by revisiting the entity.
type Fetcher struct {
	mu    sync.Mutex
	store store.Storer
	gen   Generator
	now   func() time.Time

	kind   store.EntityKind
	entity string

	description FetchState
	insights    InsightsState
	evaluation  EvaluationState

	// Per-session evaluation guards, keyed by location id. A finished or
	// in-flight evaluation is never re-requested.
	evalRequested map[string]bool
	evalResults   map[string]*LocationEvaluation
}

// NewFetcher creates a fetcher over the given store and collaborator.
func NewFetcher(s store.Storer, gen Generator) *Fetcher {
	return &Fetcher{
		store:         s,
		gen:           gen,
		now:           time.Now,
		evalRequested: make(map[string]bool),
		evalResults:   make(map[string]*LocationEvaluation),
	}
}

// SetEntity switches the fetcher to a new entity identity and discards the
// previous view state. Session-scoped evaluation results survive so a
// finished evaluation is shown again on revisit without a re-request.
func (f *Fetcher) SetEntity(kind store.EntityKind, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.kind = kind
	f.entity = id
	f.description = FetchState{}
	f.insights = InsightsState{}
	f.evaluation = EvaluationState{}

	if kind == store.Location {
		if eval, ok := f.evalResults[id]; ok {
			f.evaluation = EvaluationState{Value: eval}
		}
	}
}

// Description returns the current description view state.
func (f *Fetcher) Description() FetchState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.description
}

// Insights returns the current insight list view state.
func (f *Fetcher) Insights() InsightsState {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.insights
	out.Items = append([]string(nil), f.insights.Items...)
	return out
}

// Evaluation returns the current evaluation view state.
func (f *Fetcher) Evaluation() EvaluationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.evaluation
}

// current reports whether the identity captured at fetch start still names
// the entity on screen. Fetch correlation is by entity identity: a response
// for a superseded identity must be dropped, not applied.
func (f *Fetcher) current(kind store.EntityKind, id string) bool {
	return f.kind == kind && f.entity == id
}

// FetchDescription loads the entity's description. A store hit returns
// immediately without a network call and without ever setting the loading
// flag. For locations, a successful description triggers the evaluation
// (once per entity per session); a failed one skips it entirely.
func (f *Fetcher) FetchDescription(ctx context.Context) {
	f.mu.Lock()
	kind, id := f.kind, f.entity
	if id == "" {
		f.mu.Unlock()
		return
	}

	key := store.ArtifactKey(kind, id, store.KindDescription)
	value, ok, err := f.store.Get(key)
	if err != nil {
		log.Printf("[fetcher] cache read failed for %s, treating as miss: %v", key, err)
		ok = false
	}
	if ok {
		f.description = FetchState{Value: value}
		f.mu.Unlock()
		f.maybeEvaluate(ctx, kind, id, value)
		return
	}

	f.description = FetchState{Loading: true}
	f.mu.Unlock()

	var text string
	var fetchErr error
	if kind == store.Location {
		text, fetchErr = f.gen.LocationDescription(ctx, id)
	} else {
		text, fetchErr = f.gen.CharacterDescription(ctx, id)
	}

	f.mu.Lock()
	if !f.current(kind, id) {
		f.mu.Unlock()
		return
	}
	if fetchErr != nil {
		f.description = FetchState{Err: fetchErr.Error()}
		f.mu.Unlock()
		return
	}
	f.description = FetchState{Value: text}
	if err := f.store.Set(key, text); err != nil {
		log.Printf("[fetcher] cache write failed for %s, showing for session only: %v", key, err)
	}
	f.mu.Unlock()

	f.maybeEvaluate(ctx, kind, id, text)
}

// FetchInsights loads the character's insight list, cache first. A corrupt
// cached value is treated as absent and re-fetched.
func (f *Fetcher) FetchInsights(ctx context.Context) {
	f.mu.Lock()
	kind, id := f.kind, f.entity
	if id == "" {
		f.mu.Unlock()
		return
	}

	key := store.ArtifactKey(kind, id, store.KindInsights)
	raw, ok, err := f.store.Get(key)
	if err != nil {
		log.Printf("[fetcher] cache read failed for %s, treating as miss: %v", key, err)
		ok = false
	}
	if ok {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			log.Printf("[fetcher] corrupt cache for %s, re-fetching: %v", key, err)
		} else {
			f.insights = InsightsState{Items: items}
			f.mu.Unlock()
			return
		}
	}

	f.insights = InsightsState{Loading: true}
	f.mu.Unlock()

	items, fetchErr := f.gen.CharacterInsights(ctx, id)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.current(kind, id) {
		return
	}
	if fetchErr != nil {
		f.insights = InsightsState{Err: fetchErr.Error()}
		return
	}
	if items == nil {
		items = []string{}
	}
	f.insights = InsightsState{Items: items}
	if data, err := json.Marshal(items); err == nil {
		if err := f.store.Set(key, string(data)); err != nil {
			log.Printf("[fetcher] cache write failed for %s, showing for session only: %v", key, err)
		}
	}
}

// maybeEvaluate issues the location evaluation, guarded to at most once per
// entity per session, and fixes the user score on first success.
func (f *Fetcher) maybeEvaluate(ctx context.Context, kind store.EntityKind, id, description string) {
	if kind != store.Location {
		return
	}

	f.mu.Lock()
	if f.evalRequested[id] {
		f.mu.Unlock()
		return
	}
	f.evalRequested[id] = true
	if f.current(kind, id) {
		f.evaluation = EvaluationState{Loading: true}
	}
	f.mu.Unlock()

	eval, err := f.gen.EvaluateLocation(ctx, id, description)

	f.mu.Lock()
	if err != nil {
		if f.current(kind, id) {
			f.evaluation = EvaluationState{Err: err.Error()}
		}
		f.mu.Unlock()
		return
	}
	f.evalResults[id] = eval
	if f.current(kind, id) {
		f.evaluation = EvaluationState{Value: eval}
	}
	f.mu.Unlock()

	if _, _, err := SaveUserScoreIfAbsent(f.store, id, eval, f.now()); err != nil {
		log.Printf("[fetcher] score write failed for location %s: %v", id, err)
	}
}
