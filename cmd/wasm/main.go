//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/schwiftylabs/goportal/internal/annotation"
	"github.com/schwiftylabs/goportal/internal/notes"
	"github.com/schwiftylabs/goportal/internal/search"
	"github.com/schwiftylabs/goportal/internal/store"
)

// Version info
const Version = "0.1.0"

// Global state. The bridge is driven from the JS event loop, so these are
// only ever touched from one goroutine except where the fetcher's own lock
// covers them.
var (
	kv         store.Storer
	gen        annotation.Generator
	fetcher    *annotation.Fetcher
	ledger     *notes.Ledger
	reconciler *notes.Reconciler
	debouncer  *search.Debouncer
)

func main() {
	println("[GoPortal] WASM Ready v" + Version)

	js.Global().Set("GoPortal", js.ValueOf(map[string]interface{}{
		"version":    js.FuncOf(getVersion),
		"initialize": js.FuncOf(initialize),
		// Entity navigation and artifact fetching
		"setEntity":        js.FuncOf(setEntity),
		"fetchDescription": js.FuncOf(fetchDescription),
		"fetchInsights":    js.FuncOf(fetchInsights),
		"description":      js.FuncOf(description),
		"insights":         js.FuncOf(insights),
		"evaluation":       js.FuncOf(evaluation),
		"userScore":        js.FuncOf(userScore),
		// Notes and suggestions
		"notes":            js.FuncOf(listNotes),
		"suggestions":      js.FuncOf(suggestions),
		"addNote":          js.FuncOf(addNote),
		"selectSuggestion": js.FuncOf(selectSuggestion),
		"deleteNote":       js.FuncOf(deleteNote),
		// Compatibility
		"generateCompatibility": js.FuncOf(generateCompatibility),
		"segment":               js.FuncOf(segment),
		// Search
		"setSearchHandlers":  js.FuncOf(setSearchHandlers),
		"searchQueryChanged": js.FuncOf(searchQueryChanged),
	}))

	select {}
}

// initialize opens the IndexedDB-backed store and points the generator at the
// backend.
// Args: [baseURL string]
func initialize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: baseURL (string)")
	}

	fs, err := indexeddb.NewFS(context.Background(), "goportal", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}
	kv, err = store.NewFSStore(fs, store.DefaultDir)
	if err != nil {
		return errorResult("failed to open store: " + err.Error())
	}

	gen = annotation.NewHTTPGenerator(args[0].String(), nil)
	fetcher = annotation.NewFetcher(kv, gen)
	ledger = nil
	reconciler = nil

	return successResult("initialized")
}

// setEntity switches the current entity and loads its note ledger.
// Args: [kind string ("character"|"location"), id string]
func setEntity(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: kind (string), id (string)")
	}
	if fetcher == nil {
		return errorResult("not initialized")
	}

	kind, err := parseKind(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	id := args[1].String()

	fetcher.SetEntity(kind, id)
	ledger = notes.Load(kv, kind, id)
	reconciler = notes.NewReconciler(ledger, nil)

	return successResult("entity set")
}

// fetchDescription resolves the current entity's description, cache first.
// The fetch blocks on the network, so it runs on its own goroutine and
// reports back through the callback.
// Args: [callback func(stateJSON string)]
func fetchDescription(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: callback (function)")
	}
	if fetcher == nil {
		return errorResult("not initialized")
	}

	cb := args[0]
	go func() {
		fetcher.FetchDescription(context.Background())
		state, _ := json.Marshal(fetcher.Description())
		cb.Invoke(string(state))
	}()
	return successResult("fetching")
}

// fetchInsights resolves the current character's insight list, cache first,
// and feeds the result into the suggestion reconciler.
// Args: [callback func(stateJSON string)]
func fetchInsights(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: callback (function)")
	}
	if fetcher == nil {
		return errorResult("not initialized")
	}

	cb := args[0]
	go func() {
		fetcher.FetchInsights(context.Background())
		state := fetcher.Insights()
		if reconciler != nil && state.Err == "" {
			reconciler.SetInsights(state.Items)
		}
		data, _ := json.Marshal(state)
		cb.Invoke(string(data))
	}()
	return successResult("fetching")
}

// description returns the current description view state.
func description(this js.Value, args []js.Value) interface{} {
	if fetcher == nil {
		return errorResult("not initialized")
	}
	data, _ := json.Marshal(fetcher.Description())
	return string(data)
}

// insights returns the current insight list view state.
func insights(this js.Value, args []js.Value) interface{} {
	if fetcher == nil {
		return errorResult("not initialized")
	}
	data, _ := json.Marshal(fetcher.Insights())
	return string(data)
}

// evaluation returns the current location evaluation view state.
func evaluation(this js.Value, args []js.Value) interface{} {
	if fetcher == nil {
		return errorResult("not initialized")
	}
	data, _ := json.Marshal(fetcher.Evaluation())
	return string(data)
}

// userScore returns the saved score for a location, or null when none is on
// record.
// Args: [locationID string]
func userScore(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: locationID (string)")
	}
	if kv == nil {
		return errorResult("not initialized")
	}

	score, ok := annotation.LoadUserScore(kv, args[0].String())
	if !ok {
		return "null"
	}
	data, _ := json.Marshal(score)
	return string(data)
}

// listNotes returns the current entity's notes in insertion order.
func listNotes(this js.Value, args []js.Value) interface{} {
	if ledger == nil {
		return "[]"
	}
	data, _ := json.Marshal(ledger.Notes())
	return string(data)
}

// suggestions returns the insight texts still open for promotion.
func suggestions(this js.Value, args []js.Value) interface{} {
	if reconciler == nil {
		return "[]"
	}
	data, _ := json.Marshal(reconciler.Available())
	return string(data)
}

// addNote appends a user-authored note to the current entity's ledger.
// Args: [content string]
func addNote(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: content (string)")
	}
	if ledger == nil {
		return errorResult("no entity selected")
	}

	note, err := ledger.AddUser(args[0].String())
	if err != nil {
		return errorResult(err.Error())
	}
	data, _ := json.Marshal(note)
	return string(data)
}

// selectSuggestion promotes a suggestion to a note.
// Args: [text string]
func selectSuggestion(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: text (string)")
	}
	if reconciler == nil {
		return errorResult("no entity selected")
	}

	note := reconciler.Select(args[0].String())
	data, _ := json.Marshal(note)
	return string(data)
}

// deleteNote removes a note by id. Deleting a promoted suggestion makes it
// available again.
// Args: [noteID string]
func deleteNote(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: noteID (string)")
	}
	if reconciler == nil {
		return errorResult("no entity selected")
	}

	removed := reconciler.DeleteNote(args[0].String())
	if removed == nil {
		return errorResult("note not found")
	}
	data, _ := json.Marshal(removed)
	return string(data)
}

// generateCompatibility runs a compatibility analysis for two characters at
// a location. Validation failures come back synchronously; the generation
// itself reports through the callback.
// Args: [character1ID, character2ID, locationID string, callback func(resultJSON string)]
func generateCompatibility(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return errorResult("requires 4 args: character1ID, character2ID, locationID, callback")
	}
	if gen == nil {
		return errorResult("not initialized")
	}

	c1, c2, loc := args[0].String(), args[1].String(), args[2].String()
	if c1 == "" || c2 == "" || loc == "" {
		return errorResult(annotation.ErrMissingSelection.Error())
	}
	if c1 == c2 {
		return errorResult(annotation.ErrSameCharacter.Error())
	}

	cb := args[3]
	go func() {
		analysis, err := annotation.GenerateCompatibility(context.Background(), gen, c1, c2, loc)
		if err != nil {
			cb.Invoke(errorResult(err.Error()))
			return
		}
		data, _ := json.Marshal(analysis)
		cb.Invoke(string(data))
	}()
	return successResult("generating")
}

// segment splits a generated text block into display line items.
// Args: [text string]
func segment(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return "[]"
	}
	data, _ := json.Marshal(annotation.SegmentText(args[0].String()))
	return string(data)
}

// setSearchHandlers wires the debounced search to JS callbacks and resets any
// previous debouncer.
// Args: [onResults func(query, resultsJSON string), onError func(query, message string), onClear func()]
func setSearchHandlers(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return errorResult("requires 3 args: onResults, onError, onClear (functions)")
	}
	if gen == nil {
		return errorResult("not initialized")
	}
	if debouncer != nil {
		debouncer.Close()
	}

	onResults, onError, onClear := args[0], args[1], args[2]
	debouncer = search.NewDebouncer(gen.Search, search.Callbacks{
		OnResults: func(query string, results []annotation.SearchResult) {
			data, _ := json.Marshal(results)
			onResults.Invoke(query, string(data))
		},
		OnError: func(query string, err error) {
			onError.Invoke(query, err.Error())
		},
		OnClear: func() {
			onClear.Invoke()
		},
	}, search.Config{})

	return successResult("search wired")
}

// searchQueryChanged feeds a keystroke into the debouncer.
// Args: [query string]
func searchQueryChanged(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: query (string)")
	}
	if debouncer == nil {
		return errorResult("search handlers not set")
	}
	debouncer.OnQueryChange(args[0].String())
	return successResult("queued")
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

func parseKind(s string) (store.EntityKind, error) {
	switch s {
	case string(store.Character):
		return store.Character, nil
	case string(store.Location):
		return store.Location, nil
	}
	return "", fmt.Errorf("invalid entity kind: %q", s)
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
