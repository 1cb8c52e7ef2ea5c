package main

import (
	"fmt"
	"log"

	"github.com/hack-pad/hackpadfs/mem"

	"github.com/schwiftylabs/goportal/internal/notes"
	"github.com/schwiftylabs/goportal/internal/store"
)

func main() {
	fmt.Println("Testing MemStore...")
	testStore(store.NewMemStore())

	fmt.Println("\nTesting SQLiteStore...")
	sqlite, err := store.NewSQLiteStore()
	if err != nil {
		log.Fatalf("NewSQLiteStore failed: %v", err)
	}
	testStore(sqlite)

	fmt.Println("\nTesting FSStore...")
	fs, err := mem.NewFS()
	if err != nil {
		log.Fatalf("mem.NewFS failed: %v", err)
	}
	fsStore, err := store.NewFSStore(fs, store.DefaultDir)
	if err != nil {
		log.Fatalf("NewFSStore failed: %v", err)
	}
	testStore(fsStore)

	fmt.Println("\nTesting note ledger round-trip...")
	testLedger()

	fmt.Println("\n✅ All tests passed!")
}

func testStore(s store.Storer) {
	defer s.Close()

	key := store.ArtifactKey(store.Character, "1", store.KindDescription)
	if err := s.Set(key, "Rick is a genius scientist."); err != nil {
		log.Fatalf("Set failed: %v", err)
	}
	fmt.Println("  ✓ Set works")

	value, ok, err := s.Get(key)
	if err != nil {
		log.Fatalf("Get failed: %v", err)
	}
	if !ok || value != "Rick is a genius scientist." {
		log.Fatalf("Get returned %q (ok=%v)", value, ok)
	}
	fmt.Println("  ✓ Get works")

	if _, ok, _ := s.Get("missing_key"); ok {
		log.Fatal("Get reported a hit for a missing key")
	}
	fmt.Println("  ✓ Miss reporting works")

	if err := s.Delete(key); err != nil {
		log.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get(key); ok {
		log.Fatal("Get reported a hit after Delete")
	}
	fmt.Println("  ✓ Delete works")
}

func testLedger() {
	s := store.NewMemStore()
	defer s.Close()

	ledger := notes.Load(s, store.Character, "1")
	note, err := ledger.AddUser("  Rick hides real feelings behind sarcasm  ")
	if err != nil {
		log.Fatalf("AddUser failed: %v", err)
	}
	fmt.Println("  ✓ AddUser works")

	reloaded := notes.Load(s, store.Character, "1")
	if reloaded.Len() != 1 {
		log.Fatalf("reloaded ledger has %d notes, want 1", reloaded.Len())
	}
	if reloaded.Notes()[0].Content != "Rick hides real feelings behind sarcasm" {
		log.Fatalf("reloaded content = %q", reloaded.Notes()[0].Content)
	}
	fmt.Println("  ✓ Ledger persists across loads")

	if removed := reloaded.Delete(note.ID); removed == nil {
		log.Fatal("Delete did not find the note")
	}
	if notes.Load(s, store.Character, "1").Len() != 0 {
		log.Fatal("delete did not persist")
	}
	fmt.Println("  ✓ Delete persists")
}
