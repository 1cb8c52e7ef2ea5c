package notes

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schwiftylabs/goportal/internal/store"
)

// fixedClock pins the ledger clock so id uniqueness under identical
// timestamps is actually exercised.
func fixedClock(ms int64) func() time.Time {
	return func() time.Time {
		return time.UnixMilli(ms)
	}
}

func TestAddUserPersistsTrimmedContent(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	ledger := Load(s, store.Character, "1")
	note, err := ledger.AddUser("  Rick distrusts the council.  ")
	require.NoError(t, err)
	assert.Equal(t, "Rick distrusts the council.", note.Content)
	assert.Equal(t, SourceUser, note.Source)
	assert.NotEmpty(t, note.ID)

	// Reload from the store: exactly one note with the trimmed content.
	reloaded := Load(s, store.Character, "1")
	require.Equal(t, 1, reloaded.Len())
	got := reloaded.Notes()[0]
	assert.Equal(t, "Rick distrusts the council.", got.Content)
	assert.Equal(t, SourceUser, got.Source)
	assert.Equal(t, note.ID, got.ID)
}

func TestAddUserEmptyContentNoSideEffects(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	ledger := Load(s, store.Character, "1")
	_, err := ledger.AddUser("   \n\t ")
	require.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, 0, ledger.Len())

	_, ok, err := s.Get(store.NotesKey(store.Character, "1"))
	require.NoError(t, err)
	assert.False(t, ok, "Rejected add must not persist anything")
}

func TestAddFromSuggestionKeepsExactText(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	ledger := Load(s, store.Character, "1")
	text := "  Known for reckless portal travel.  "
	note := ledger.AddFromSuggestion(text)

	assert.Equal(t, text, note.Content, "Suggestion text is the join key and must not be altered")
	assert.Equal(t, SourceSuggestion, note.Source)
}

func TestDeleteReturnsRemovedNote(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	ledger := Load(s, store.Character, "1")
	first, err := ledger.AddUser("first")
	require.NoError(t, err)
	second, err := ledger.AddUser("second")
	require.NoError(t, err)

	removed := ledger.Delete(first.ID)
	require.NotNil(t, removed)
	assert.Equal(t, first.ID, removed.ID)
	assert.Equal(t, "first", removed.Content)

	require.Equal(t, 1, ledger.Len())
	assert.Equal(t, second.ID, ledger.Notes()[0].ID)

	assert.Nil(t, ledger.Delete("no-such-id"))

	reloaded := Load(s, store.Character, "1")
	require.Equal(t, 1, reloaded.Len())
}

func TestIDsUniqueWithinSameMillisecond(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	ledger := Load(s, store.Character, "1")
	ledger.now = fixedClock(1700000000000)

	a, err := ledger.AddUser("a")
	require.NoError(t, err)
	b, err := ledger.AddUser("b")
	require.NoError(t, err)
	c := ledger.AddFromSuggestion("c")

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, b.ID, c.ID)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	ledger := Load(s, store.Character, "1")
	ledger.now = fixedClock(1700000000000)

	a, err := ledger.AddUser("a")
	require.NoError(t, err)
	b, err := ledger.AddUser("b")
	require.NoError(t, err)

	require.NotNil(t, ledger.Delete(b.ID))

	c, err := ledger.AddUser("c")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
	assert.NotEqual(t, b.ID, c.ID, "Ids must never be reused, even after deletion")
}

func TestLoadAbsentAndCorruptRecords(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	assert.Equal(t, 0, Load(s, store.Character, "1").Len())

	require.NoError(t, s.Set(store.NotesKey(store.Character, "1"), "{not json"))
	assert.Equal(t, 0, Load(s, store.Character, "1").Len(), "Corrupt record degrades to empty")
}

func TestLoadReadFailureDegradesToEmpty(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	require.NoError(t, s.Set(store.NotesKey(store.Character, "1"), `[{"id":"1","content":"x","createdAt":0,"source":"user"}]`))
	s.ReadErr = errors.New("storage disabled")

	ledger := Load(s, store.Character, "1")
	assert.Equal(t, 0, ledger.Len())
}

func TestWriteFailureKeepsNoteForSession(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()
	s.WriteErr = errors.New("quota exceeded")

	ledger := Load(s, store.Character, "1")
	note, err := ledger.AddUser("still visible this session")
	require.NoError(t, err, "Persist failure must not surface from AddUser")
	assert.Equal(t, 1, ledger.Len())
	assert.Equal(t, note.ID, ledger.Notes()[0].ID)

	// Nothing was durably written.
	s.WriteErr = nil
	assert.Equal(t, 0, Load(s, store.Character, "1").Len())
}

func TestLedgersAreEntityScoped(t *testing.T) {
	s := store.NewMemStore()
	defer s.Close()

	rick := Load(s, store.Character, "1")
	_, err := rick.AddUser("rick note")
	require.NoError(t, err)

	morty := Load(s, store.Character, "2")
	assert.Equal(t, 0, morty.Len())

	earth := Load(s, store.Location, "1")
	assert.Equal(t, 0, earth.Len(), "Same id under a different entity kind is a different ledger")
}
