package backup

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contaflow-erp/contaflow/internal/inventory"
	"github.com/contaflow-erp/contaflow/internal/ledger"
	"github.com/contaflow-erp/contaflow/internal/platform/kv"
)

func TestCreateSkipsAbsentCollections(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, ledger.JournalKey, []byte(`[{"number":"VTA-1"}]`)))

	data, err := NewManager(store).Create(ctx)
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	require.Contains(t, snapshot.Collections, ledger.JournalKey)
	require.NotContains(t, snapshot.Collections, inventory.ProductsKey)
}

func TestCreateWrapsNonJSONPayloads(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	corrupt := []byte(`{"truncated`)
	require.NoError(t, store.Set(ctx, ledger.JournalQuarantineKey, corrupt))

	data, err := NewManager(store).Create(ctx)
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	var wrapped string
	require.NoError(t, json.Unmarshal(snapshot.Collections[ledger.JournalQuarantineKey], &wrapped))
	require.Equal(t, string(corrupt), wrapped)
}

func TestRestoreAppliesOnlyKnownKeys(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	manager := NewManager(store)

	doc := []byte(`{
		"created_at": "2026-03-10T00:00:00Z",
		"collections": {
			"ledger:journal": [{"number":"VTA-1"}],
			"inventory:products": [{"id":"p1"}],
			"attacker:key": {"x":1}
		}
	}`)
	restored, err := manager.Restore(ctx, doc)
	require.NoError(t, err)
	require.Equal(t, 2, restored)

	journal, err := store.Get(ctx, ledger.JournalKey)
	require.NoError(t, err)
	require.JSONEq(t, `[{"number":"VTA-1"}]`, string(journal))

	_, err = store.Get(ctx, "attacker:key")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRestoreRejectsMalformedDocument(t *testing.T) {
	manager := NewManager(kv.NewMemory())
	_, err := manager.Restore(context.Background(), []byte("not json"))
	require.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := kv.NewMemory()
	require.NoError(t, source.Set(ctx, ledger.JournalKey, []byte(`[{"number":"VTA-1"}]`)))
	require.NoError(t, source.Set(ctx, inventory.ProductsKey, []byte(`[{"id":"p1","stock":5}]`)))

	data, err := NewManager(source).Create(ctx)
	require.NoError(t, err)

	target := kv.NewMemory()
	restored, err := NewManager(target).Restore(ctx, data)
	require.NoError(t, err)
	require.Equal(t, 2, restored)

	journal, err := target.Get(ctx, ledger.JournalKey)
	require.NoError(t, err)
	require.JSONEq(t, `[{"number":"VTA-1"}]`, string(journal))
}
