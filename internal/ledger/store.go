package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/contaflow-erp/contaflow/internal/notify"
	"github.com/contaflow-erp/contaflow/internal/platform/kv"
)

// Collection keys used against the kv contract.
const (
	// JournalKey holds the full journal collection.
	JournalKey = "ledger:journal"
	// JournalQuarantineKey receives the raw payload verbatim when the
	// journal blob fails to parse, so backup/restore keeps the evidence.
	JournalQuarantineKey = "ledger:journal:quarantine"
)

// JournalStore is the append-only persistence layer for journal entries.
// Entries are stored newest-first; there is no update or delete.
type JournalStore struct {
	mu       sync.Mutex
	store    kv.Store
	notifier notify.Notifier
}

// NewJournalStore builds a JournalStore over the kv contract.
func NewJournalStore(store kv.Store, notifier notify.Notifier) *JournalStore {
	return &JournalStore{store: store, notifier: notifier}
}

// Append persists an already validated entry and makes it visible to
// subsequent reads. The single mutex serializes concurrent writers over
// the read-modify-write cycle.
func (s *JournalStore) Append(ctx context.Context, entry JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return err
	}
	entries = append([]JournalEntry{entry}, entries...)
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("ledger: encode journal: %w", err)
	}
	return s.store.Set(ctx, JournalKey, data)
}

// List returns every stored entry in reverse chronological insertion
// order, most recently appended first. An empty backing store yields an
// empty slice.
func (s *JournalStore) List(ctx context.Context) ([]JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// load reads the journal collection. A malformed blob is quarantined
// verbatim and the journal treated as empty, per the parse-fallback
// policy: corrupted bookkeeping data must survive for backup while the
// engine keeps serving.
func (s *JournalStore) load(ctx context.Context) ([]JournalEntry, error) {
	data, err := s.store.Get(ctx, JournalKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []JournalEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: read journal: %w", err)
	}
	var entries []JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		if qerr := s.store.Set(ctx, JournalQuarantineKey, data); qerr != nil {
			return nil, fmt.Errorf("ledger: quarantine journal: %w", qerr)
		}
		if s.notifier != nil {
			s.notifier.Notify(ctx, notify.Event{
				Severity: notify.SeverityError,
				Code:     "ledger.journal_malformed",
				Message:  "journal collection failed to parse, raw payload quarantined",
				Meta:     map[string]any{"bytes": len(data)},
			})
		}
		return []JournalEntry{}, nil
	}
	return entries, nil
}
