// Package reportshttp serves the derived financial reports as JSON plus a
// CSV export of the trial balance.
package reportshttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/contaflow-erp/contaflow/internal/ledger/reports"
	"github.com/contaflow-erp/contaflow/internal/platform/httpx"
)

// Handler wires report endpoints to the report service.
type Handler struct {
	logger  *slog.Logger
	service *reports.Service
}

// NewHandler constructs the reports handler.
func NewHandler(logger *slog.Logger, service *reports.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report endpoints on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/journal", h.Journal)
	r.Get("/ledger", h.Ledger)
	r.Get("/trial-balance", h.TrialBalance)
	r.Get("/trial-balance.csv", h.TrialBalanceCSV)
	r.Get("/balance-sheet", h.BalanceSheet)
	r.Get("/income-statement", h.IncomeStatement)
	r.Get("/vat", h.VATDeclaration)
}

// Journal lists the raw journal, newest entry first.
func (h *Handler) Journal(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Journal(r.Context())
	if err != nil {
		h.fail(w, "list journal", err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

// Ledger returns the per-account general ledger.
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	result, err, _ := singleflightBuild(r.Context(), "ledger", func() (any, error) {
		return h.service.Ledger(r.Context())
	})
	if err != nil {
		h.fail(w, "build ledger", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// TrialBalance returns the trial balance report.
func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	result, err, _ := singleflightBuild(r.Context(), "tb", func() (any, error) {
		return h.service.TrialBalance(r.Context())
	})
	if err != nil {
		h.fail(w, "build trial balance", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// TrialBalanceCSV streams the trial balance as CSV.
func (h *Handler) TrialBalanceCSV(w http.ResponseWriter, r *http.Request) {
	tb, err := h.service.TrialBalance(r.Context())
	if err != nil {
		h.fail(w, "build trial balance", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trial_balance.csv"`)
	if err := writeTrialBalanceCSV(w, tb); err != nil {
		h.logger.Error("stream trial balance csv", slog.Any("error", err))
	}
}

// BalanceSheet returns the classified balance sheet.
func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	result, err, _ := singleflightBuild(r.Context(), "bs", func() (any, error) {
		return h.service.BalanceSheet(r.Context())
	})
	if err != nil {
		h.fail(w, "build balance sheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// IncomeStatement returns the period result report.
func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	result, err, _ := singleflightBuild(r.Context(), "pl", func() (any, error) {
		return h.service.IncomeStatement(r.Context())
	})
	if err != nil {
		h.fail(w, "build income statement", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// VATDeclaration returns the VAT declaration for ?from=...&to=... dates.
func (h *Handler) VATDeclaration(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "to must be YYYY-MM-DD")
		return
	}
	if to.Before(from) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "to must not precede from")
		return
	}
	decl, err := h.service.VATDeclaration(r.Context(), from, to)
	if err != nil {
		h.fail(w, "build vat declaration", err)
		return
	}
	httpx.JSON(w, http.StatusOK, decl)
}

func (h *Handler) fail(w http.ResponseWriter, action string, err error) {
	h.logger.Error(action, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
