package testsupport

import (
	"testing"

	"songrenamer/internal/config"
	"songrenamer/internal/journal"
)

// MustOpenJournal opens the journal at the config's journal path and closes
// it when the test ends.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg.JournalPath())
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
