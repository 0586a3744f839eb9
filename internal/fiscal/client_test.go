package fiscal

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(logger, "https://pilotosiatservicios.impuestos.gob.bo", "demo-key", "123456789")
	return client.WithNow(func() time.Time {
		return time.Date(2026, 3, 10, 14, 30, 5, 0, time.UTC)
	})
}

func TestIssueCUFD(t *testing.T) {
	cufd, err := testClient().IssueCUFD(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, cufd.Code)
	require.NotEmpty(t, cufd.ControlCode)
	require.Equal(t, time.Date(2026, 3, 11, 14, 30, 5, 0, time.UTC), cufd.ValidUntil)
}

func TestGenerateCUFComposition(t *testing.T) {
	cuf := testClient().GenerateCUF(42, "CUFD1234ABCDEFGH")
	// NIT + yyyymmdd + hhmmss + six-digit number + CUFD tail.
	require.Equal(t, "12345678920260310143005000042ABCDEFGH", cuf)
}

func TestGenerateCUFShortCUFD(t *testing.T) {
	cuf := testClient().GenerateCUF(1, "ABC")
	require.Equal(t, "12345678920260310143005000001ABC", cuf)
}

func TestSubmitInvoiceAccepted(t *testing.T) {
	result, err := testClient().SubmitInvoice(context.Background(), InvoiceDocument{
		Number:    42,
		IssuerNIT: "123456789",
		Total:     113,
	})
	require.NoError(t, err)
	require.True(t, result.Accepted)
	require.Equal(t, StatusProcessed, result.StatusCode)
	require.Equal(t, "PROCESADA", result.Description)
	require.NotEmpty(t, result.ReceptionCode)
}

func TestSubmitInvoiceRejectsBadNIT(t *testing.T) {
	_, err := testClient().SubmitInvoice(context.Background(), InvoiceDocument{
		Number:    42,
		IssuerNIT: "12",
	})
	require.Error(t, err)
}

func TestQueryStatus(t *testing.T) {
	status, err := testClient().QueryStatus(context.Background(), "REC123")
	require.NoError(t, err)
	require.Equal(t, "REC123", status.ReceptionCode)
	require.Equal(t, StatusProcessed, status.StatusCode)
}

func TestValidateNIT(t *testing.T) {
	c := testClient()
	require.True(t, c.ValidateNIT("1234567"))
	require.True(t, c.ValidateNIT("123-456-789"))
	require.False(t, c.ValidateNIT("123456"))
	require.False(t, c.ValidateNIT(""))
	require.False(t, c.ValidateNIT("abcdefg"))
}

func TestCallsHonorContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := testClient()
	_, err := c.IssueCUFD(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, c.VerifyConnection(ctx), context.Canceled)
	_, err = c.SubmitInvoice(ctx, InvoiceDocument{IssuerNIT: "123456789"})
	require.ErrorIs(t, err, context.Canceled)
}
