package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/papertrade/api/internal/domain"
)

type PortfolioLedgerRepository interface {
	HoldingSums(ctx context.Context, username string) ([]domain.Holding, error)
	Positions(ctx context.Context, username string) ([]domain.Position, error)
	FindArchive(ctx context.Context, username string) ([]domain.ArchiveEntry, error)
}

// PortfolioService derives current holdings and valuation from the
// ledger and the quote provider.
type PortfolioService struct {
	repo     PortfolioLedgerRepository
	userRepo UserRepository
	quotes   QuoteProvider
}

func NewPortfolioService(repo PortfolioLedgerRepository, userRepo UserRepository, quotes QuoteProvider) *PortfolioService {
	return &PortfolioService{
		repo:     repo,
		userRepo: userRepo,
		quotes:   quotes,
	}
}

// GetPortfolio groups the user's lots per (stock, symbol), values each
// group at the current quote and totals everything including cash:
//
//	grand_total        = Σ market_value + cash
//	bought_grand_total = Σ bought_total + cash
//	gain_total         = grand_total − bought_grand_total
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID uint) (domain.Portfolio, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	holdings, err := s.repo.HoldingSums(ctx, user.Username)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("s.repo.HoldingSums -> %w", err)
	}

	grandTotal := decimal.Zero
	boughtGrandTotal := decimal.Zero
	for i := range holdings {
		quote, err := s.quotes.Lookup(ctx, holdings[i].Symbol)
		if err != nil {
			return domain.Portfolio{}, fmt.Errorf("s.quotes.Lookup(%v) -> %w", holdings[i].Symbol, err)
		}

		holdings[i].Price = quote.Price
		holdings[i].MarketValue = quote.Price.Mul(decimal.NewFromInt(holdings[i].Shares))
		holdings[i].Gain = holdings[i].MarketValue.Sub(holdings[i].BoughtTotal)

		grandTotal = grandTotal.Add(holdings[i].MarketValue)
		boughtGrandTotal = boughtGrandTotal.Add(holdings[i].BoughtTotal)
	}

	grandTotal = grandTotal.Add(user.Cash)
	boughtGrandTotal = boughtGrandTotal.Add(user.Cash)

	return domain.Portfolio{
		Holdings:         holdings,
		Cash:             user.Cash,
		GrandTotal:       grandTotal,
		BoughtGrandTotal: boughtGrandTotal,
		GainTotal:        grandTotal.Sub(boughtGrandTotal),
	}, nil
}

func (s *PortfolioService) GetHistory(ctx context.Context, userID uint) ([]domain.ArchiveEntry, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	archive, err := s.repo.FindArchive(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindArchive -> %w", err)
	}

	return archive, nil
}

// GetPositions lists the symbols the user can sell and how many shares
// of each are owned.
func (s *PortfolioService) GetPositions(ctx context.Context, userID uint) ([]domain.Position, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	positions, err := s.repo.Positions(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Positions -> %w", err)
	}

	return positions, nil
}
