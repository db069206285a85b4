package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrade/api/internal/config"
)

func newTestQuoteClient(t *testing.T, handler http.HandlerFunc) *QuoteClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewQuoteClient(&config.QuoteConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		APIKey:  "test-key",
	})
}

func TestQuoteClient_Lookup(t *testing.T) {
	client := newTestQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			assert.Equal(t, "ACME", r.URL.Query().Get("symbol"))
			assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			_, _ = w.Write([]byte(`{"Global Quote": {"01. symbol": "ACME", "05. price": "123.4500"}}`))
		case "SYMBOL_SEARCH":
			_, _ = w.Write([]byte(`{"bestMatches": [{"1. symbol": "ACME", "2. name": "Acme Corp"}]}`))
		default:
			t.Errorf("unexpected function %q", r.URL.Query().Get("function"))
		}
	})

	quote, err := client.Lookup(context.Background(), "acme")
	require.NoError(t, err)

	require.Equal(t, "ACME", quote.Symbol)
	require.Equal(t, "Acme Corp", quote.Name)
	require.Equal(t, "123.45", quote.Price.String())
}

func TestQuoteClient_Lookup_NameFallsBackToSymbol(t *testing.T) {
	client := newTestQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			_, _ = w.Write([]byte(`{"Global Quote": {"01. symbol": "ACME", "05. price": "50"}}`))
		case "SYMBOL_SEARCH":
			_, _ = w.Write([]byte(`{"bestMatches": []}`))
		}
	})

	quote, err := client.Lookup(context.Background(), "ACME")
	require.NoError(t, err)
	require.Equal(t, "ACME", quote.Name)
}

func TestQuoteClient_Lookup_SymbolNotFound(t *testing.T) {
	client := newTestQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Alpha Vantage answers an unknown symbol with an empty quote.
		_, _ = w.Write([]byte(`{"Global Quote": {}}`))
	})

	_, err := client.Lookup(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestQuoteClient_Lookup_EmptySymbol(t *testing.T) {
	client := newTestQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty symbol")
	})

	_, err := client.Lookup(context.Background(), "   ")
	require.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestQuoteClient_Lookup_RateLimited(t *testing.T) {
	client := newTestQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	})

	_, err := client.Lookup(context.Background(), "ACME")
	require.ErrorIs(t, err, ErrQuoteUnavailable)
}

func TestQuoteService_GetQuote(t *testing.T) {
	svc := NewQuoteService(&stubQuotes{
		prices: map[string]decimal.Decimal{"ACME": dec("123.45")},
		names:  map[string]string{"ACME": "Acme Corp"},
	})

	quote, err := svc.GetQuote(context.Background(), "ACME")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", quote.Name)
	require.True(t, quote.Price.Equal(dec("123.45")), "price %v", quote.Price)

	_, err = svc.GetQuote(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrSymbolNotFound)
}
