// Package backup snapshots and restores the kv collections. It works on
// raw payloads so corrupted (quarantined) data survives a round-trip.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/contaflow-erp/contaflow/internal/inventory"
	"github.com/contaflow-erp/contaflow/internal/ledger"
	"github.com/contaflow-erp/contaflow/internal/platform/kv"
)

// KnownKeys lists every collection eligible for snapshot and restore.
// Restore ignores anything else in a backup document.
var KnownKeys = []string{
	ledger.JournalKey,
	ledger.JournalQuarantineKey,
	inventory.ProductsKey,
	inventory.ProductsQuarantineKey,
}

// Snapshot is the on-disk backup document.
type Snapshot struct {
	CreatedAt   time.Time                  `json:"created_at"`
	Collections map[string]json.RawMessage `json:"collections"`
}

// Manager performs snapshot and restore over the kv contract.
type Manager struct {
	store kv.Store
	keys  []string
	now   func() time.Time
}

// NewManager builds a Manager for the known collection keys.
func NewManager(store kv.Store) *Manager {
	return &Manager{store: store, keys: KnownKeys, now: time.Now}
}

// Create reads every known key and serializes the snapshot. Payloads that
// are not valid JSON are preserved verbatim as JSON strings.
func (m *Manager) Create(ctx context.Context) ([]byte, error) {
	snapshot := Snapshot{
		CreatedAt:   m.now().UTC(),
		Collections: make(map[string]json.RawMessage),
	}
	for _, key := range m.keys {
		data, err := m.store.Get(ctx, key)
		if errors.Is(err, kv.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("backup: read %s: %w", key, err)
		}
		if json.Valid(data) {
			snapshot.Collections[key] = json.RawMessage(data)
			continue
		}
		wrapped, err := json.Marshal(string(data))
		if err != nil {
			return nil, fmt.Errorf("backup: wrap %s: %w", key, err)
		}
		snapshot.Collections[key] = wrapped
	}
	return json.MarshalIndent(snapshot, "", "  ")
}

// Restore writes the known collections found in the document back to the
// store and reports how many were applied.
func (m *Manager) Restore(ctx context.Context, data []byte) (int, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return 0, fmt.Errorf("backup: parse snapshot: %w", err)
	}
	restored := 0
	for _, key := range m.keys {
		payload, ok := snapshot.Collections[key]
		if !ok {
			continue
		}
		if err := m.store.Set(ctx, key, payload); err != nil {
			return restored, fmt.Errorf("backup: restore %s: %w", key, err)
		}
		restored++
	}
	return restored, nil
}
