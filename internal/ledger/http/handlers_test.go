package ledgerhttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/contaflow-erp/contaflow/internal/inventory"
	"github.com/contaflow-erp/contaflow/internal/ledger"
	"github.com/contaflow-erp/contaflow/internal/platform/kv"
)

type testEnv struct {
	router    chi.Router
	journal   *ledger.JournalStore
	inventory *inventory.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := kv.NewMemory()
	journal := ledger.NewJournalStore(store, nil)
	inventoryService := inventory.NewService(store, nil)
	generator := ledger.NewGenerator(journal, ledger.NewValidator(nil),
		inventory.NewLedgerAdapter(inventoryService), ledger.NewSequence(), nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	NewHandler(logger, generator).MountRoutes(router)
	return &testEnv{router: router, journal: journal, inventory: inventoryService}
}

func seed(t *testing.T, env *testEnv, product inventory.Product) {
	t.Helper()
	require.NoError(t, env.inventory.SaveProduct(context.Background(), product))
}

func (e *testEnv) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateSaleReturnsEntry(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/sales", `{"number":"F-001","subtotal":100,"tax":13,"total":113}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry ledger.JournalEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
	require.True(t, strings.HasPrefix(entry.Number, "VTA-"))
	require.Len(t, entry.Lines, 3)

	entries, err := env.journal.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestCreateSaleRejectsMissingNumber(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/sales", `{"subtotal":100,"tax":13,"total":113}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSaleRejectsImbalancedTotals(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/sales", `{"number":"F-002","subtotal":100,"tax":13,"total":150}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateInventoryMovementInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	seed(t, env, inventory.Product{ID: "p1", Name: "Laptop", UnitCost: 10, Stock: 1})

	rec := env.post(t, "/inventory-movements",
		`{"type":"EXIT","product_id":"p1","product":"Laptop","quantity":5,"value":50}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateInventoryMovementUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	rec := env.post(t, "/inventory-movements",
		`{"type":"ENTRY","product_id":"ghost","product":"Laptop","quantity":5,"value":50}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateInventoryMovementAdjustsStock(t *testing.T) {
	env := newTestEnv(t)
	seed(t, env, inventory.Product{ID: "p1", Name: "Laptop", UnitCost: 10, Stock: 5})

	rec := env.post(t, "/inventory-movements",
		`{"type":"ENTRY","product_id":"p1","product":"Laptop","quantity":3,"value":30}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	p, err := env.inventory.FindProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.InDelta(t, 8, p.Stock, 1e-9)
}

func TestCancelInvoiceCascade(t *testing.T) {
	env := newTestEnv(t)
	seed(t, env, inventory.Product{ID: "p1", Name: "Laptop", UnitCost: 10, Stock: 0})

	rec := env.post(t, "/invoice-cancellations",
		`{"number":"F-001","subtotal":100,"tax":13,"total":113,"items":[{"product_id":"p1","description":"Laptop","quantity":2}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Entries []ledger.JournalEntry `json:"entries"`
		Partial bool                  `json:"partial"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Partial)
	require.Len(t, resp.Entries, 2)

	p, err := env.inventory.FindProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.InDelta(t, 2, p.Stock, 1e-9)
}
