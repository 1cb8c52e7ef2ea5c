// Package notes implements the per-entity note ledger and the reconciliation
// of user notes against server-suggested insights.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/schwiftylabs/goportal/internal/store"
)

// Source records how a note came to exist.
type Source string

const (
	SourceUser       Source = "user"
	SourceSuggestion Source = "suggestion"
)

// ErrEmptyContent is returned when a user note is empty after trimming.
var ErrEmptyContent = errors.New("note content is empty")

// Note is a persisted annotation attached to one entity. Notes are never
// mutated in place; they are appended and deleted.
//
// For suggestion-sourced notes, Content is the exact suggestion text and is
// the join key back to the insight list — no separate foreign key is kept.
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	Source    Source `json:"source"`
}

// Ledger is the ordered collection of notes for one entity, persisted as a
// single serialized record. Every mutation is a full read-modify-write of
// that record; a failed write keeps the mutation in memory for the session.
type Ledger struct {
	store  store.Storer
	kind   store.EntityKind
	entity string
	notes  []Note
	seq    uint64

	now func() time.Time
}

// Load reads the ledger for an entity through the store. An absent, corrupt
// or unreadable record degrades to an empty ledger.
func Load(s store.Storer, kind store.EntityKind, entityID string) *Ledger {
	l := &Ledger{
		store:  s,
		kind:   kind,
		entity: entityID,
		now:    time.Now,
	}

	key := store.NotesKey(kind, entityID)
	raw, ok, err := s.Get(key)
	if err != nil {
		log.Printf("[notes] read failed for %s, starting empty: %v", key, err)
		return l
	}
	if !ok {
		return l
	}

	var loaded []Note
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		log.Printf("[notes] corrupt record for %s, starting empty: %v", key, err)
		return l
	}
	l.notes = loaded
	return l
}

// EntityID returns the id of the entity this ledger belongs to.
func (l *Ledger) EntityID() string {
	return l.entity
}

// Notes returns the notes in insertion order.
func (l *Ledger) Notes() []Note {
	out := make([]Note, len(l.notes))
	copy(out, l.notes)
	return out
}

// Len returns the number of notes.
func (l *Ledger) Len() int {
	return len(l.notes)
}

// AddUser appends a user-authored note with trimmed content and persists the
// ledger. Content that is empty after trimming returns ErrEmptyContent with
// no side effects.
func (l *Ledger) AddUser(content string) (Note, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Note{}, ErrEmptyContent
	}
	return l.append(trimmed, SourceUser), nil
}

// AddFromSuggestion promotes a suggestion to a note, keeping the exact
// suggestion text so content equality joins it back to the insight list.
func (l *Ledger) AddFromSuggestion(content string) Note {
	return l.append(content, SourceSuggestion)
}

// Delete removes the note with the given id, persists, and returns the
// removed note so the caller can restore its suggestion. Returns nil when no
// note has that id.
func (l *Ledger) Delete(noteID string) *Note {
	for i, n := range l.notes {
		if n.ID == noteID {
			removed := n
			l.notes = append(l.notes[:i:i], l.notes[i+1:]...)
			l.persist()
			return &removed
		}
	}
	return nil
}

func (l *Ledger) append(content string, src Source) Note {
	note := Note{
		ID:        l.nextID(),
		Content:   content,
		CreatedAt: l.now().UnixMilli(),
		Source:    src,
	}
	l.notes = append(l.notes, note)
	l.persist()
	return note
}

// nextID derives ids from the clock plus a monotonic per-session sequence,
// never from ledger length, so ids stay unique after deletions.
func (l *Ledger) nextID() string {
	l.seq++
	return fmt.Sprintf("%d-%d", l.now().UnixMilli(), l.seq)
}

// persist writes the whole serialized ledger. A write failure is non-fatal:
// the in-memory state stays current for the session.
func (l *Ledger) persist() {
	data, err := json.Marshal(l.notes)
	if err != nil {
		log.Printf("[notes] marshal failed for %s: %v", l.entity, err)
		return
	}
	key := store.NotesKey(l.kind, l.entity)
	if err := l.store.Set(key, string(data)); err != nil {
		log.Printf("[notes] write failed for %s, keeping in-memory only: %v", key, err)
	}
}
