package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/contaflow-erp/contaflow/internal/backup"
	"github.com/contaflow-erp/contaflow/internal/inventory"
	ledgerhttp "github.com/contaflow-erp/contaflow/internal/ledger/http"
	reportshttp "github.com/contaflow-erp/contaflow/internal/reports/http"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	LedgerHandler    *ledgerhttp.Handler
	ReportsHandler   *reportshttp.Handler
	InventoryHandler *inventory.Handler
	BackupHandler    *backup.Handler
}

// NewRouter constructs the chi.Router with contaflow defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/events", params.LedgerHandler.MountRoutes)
		api.Route("/reports", params.ReportsHandler.MountRoutes)
		api.Route("/products", params.InventoryHandler.MountRoutes)
		params.BackupHandler.MountRoutes(api)
	})

	return r
}
