package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/papertrade/api/internal/config"
	"github.com/papertrade/api/internal/domain"
)

var (
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrQuoteUnavailable = errors.New("quote service unavailable")
)

// QuoteProvider returns the current quote for a ticker symbol.
type QuoteProvider interface {
	Lookup(ctx context.Context, symbol string) (domain.Quote, error)
}

// QuoteClient talks to the Alpha Vantage HTTP API.
type QuoteClient struct {
	client *resty.Client
	apiKey string
}

func NewQuoteClient(conf *config.QuoteConfig) *QuoteClient {
	client := resty.New().
		SetBaseURL(conf.BaseURL).
		SetTimeout(conf.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &QuoteClient{
		client: client,
		apiKey: conf.APIKey,
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`

	// Alpha Vantage reports throttling as a 200 with one of these set.
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

type symbolSearchResponse struct {
	BestMatches []struct {
		Symbol string `json:"1. symbol"`
		Name   string `json:"2. name"`
	} `json:"bestMatches"`
}

func (c *QuoteClient) Lookup(ctx context.Context, symbol string) (domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.Quote{}, ErrSymbolNotFound
	}

	var quoted globalQuoteResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		SetResult(&quoted).
		Get("/query")
	if err != nil {
		return domain.Quote{}, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return domain.Quote{}, fmt.Errorf("%w: http %v", ErrQuoteUnavailable, resp.StatusCode())
	}
	if quoted.Note != "" || quoted.Information != "" {
		return domain.Quote{}, fmt.Errorf("%w: rate limited", ErrQuoteUnavailable)
	}

	price, err := decimal.NewFromString(quoted.GlobalQuote.Price)
	if err != nil || !price.IsPositive() {
		return domain.Quote{}, ErrSymbolNotFound
	}

	return domain.Quote{
		Name:   c.lookupName(ctx, symbol),
		Symbol: symbol,
		Price:  price,
	}, nil
}

// lookupName resolves the company name behind a symbol. Best effort:
// the quote still works when the search endpoint has nothing.
func (c *QuoteClient) lookupName(ctx context.Context, symbol string) string {
	var found symbolSearchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "SYMBOL_SEARCH",
			"keywords": symbol,
			"apikey":   c.apiKey,
		}).
		SetResult(&found).
		Get("/query")
	if err != nil || resp.StatusCode() != http.StatusOK {
		return symbol
	}

	for _, match := range found.BestMatches {
		if strings.EqualFold(match.Symbol, symbol) && match.Name != "" {
			return match.Name
		}
	}

	return symbol
}

type QuoteService struct {
	provider QuoteProvider
}

func NewQuoteService(provider QuoteProvider) *QuoteService {
	return &QuoteService{
		provider: provider,
	}
}

func (s *QuoteService) GetQuote(ctx context.Context, symbol string) (domain.Quote, error) {
	quote, err := s.provider.Lookup(ctx, symbol)
	if err != nil {
		if errors.Is(err, ErrSymbolNotFound) || errors.Is(err, ErrQuoteUnavailable) {
			return domain.Quote{}, err
		}

		return domain.Quote{}, fmt.Errorf("s.provider.Lookup -> %w", err)
	}

	return quote, nil
}
