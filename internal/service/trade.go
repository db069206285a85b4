package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/repository"
)

var (
	ErrInvalidInput       = errors.New("invalid trade input")
	ErrInsufficientFunds  = repository.ErrInsufficientFunds
	ErrInsufficientShares = repository.ErrInsufficientShares
)

type TradeLedgerRepository interface {
	ExecuteBuy(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (domain.User, error)
	ExecuteSell(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (domain.User, error)
}

// TradeService validates and applies buy/sell requests:
// Validate -> Price -> Authorize -> Apply. Authorization (solvency,
// share availability) happens inside the ledger transaction so a
// concurrent trade cannot invalidate it.
type TradeService struct {
	repo   TradeLedgerRepository
	quotes QuoteProvider
}

func NewTradeService(repo TradeLedgerRepository, quotes QuoteProvider) *TradeService {
	return &TradeService{
		repo:   repo,
		quotes: quotes,
	}
}

func (s *TradeService) Buy(ctx context.Context, userID uint, symbol string, shares int64) (domain.TradeReceipt, error) {
	if strings.TrimSpace(symbol) == "" || shares <= 0 {
		return domain.TradeReceipt{}, ErrInvalidInput
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return domain.TradeReceipt{}, err
	}

	updated, err := s.repo.ExecuteBuy(ctx, userID, quote.Name, quote.Symbol, shares, quote.Price)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return domain.TradeReceipt{}, ErrInsufficientFunds
		}

		return domain.TradeReceipt{}, fmt.Errorf("s.repo.ExecuteBuy -> %w", err)
	}

	return domain.TradeReceipt{
		Stock:  quote.Name,
		Symbol: quote.Symbol,
		Shares: shares,
		Price:  quote.Price,
		Total:  quote.Price.Mul(decimal.NewFromInt(shares)),
		Cash:   updated.Cash,
	}, nil
}

// Sell prices the shares at the current quote, not the purchase price.
func (s *TradeService) Sell(ctx context.Context, userID uint, symbol string, shares int64) (domain.TradeReceipt, error) {
	if strings.TrimSpace(symbol) == "" || shares <= 0 {
		return domain.TradeReceipt{}, ErrInvalidInput
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return domain.TradeReceipt{}, err
	}

	updated, err := s.repo.ExecuteSell(ctx, userID, quote.Name, quote.Symbol, shares, quote.Price)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientShares) {
			return domain.TradeReceipt{}, ErrInsufficientShares
		}

		return domain.TradeReceipt{}, fmt.Errorf("s.repo.ExecuteSell -> %w", err)
	}

	return domain.TradeReceipt{
		Stock:  quote.Name,
		Symbol: quote.Symbol,
		Shares: -shares,
		Price:  quote.Price,
		Total:  quote.Price.Mul(decimal.NewFromInt(shares)),
		Cash:   updated.Cash,
	}, nil
}
