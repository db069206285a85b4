package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/repository/dao"
)

var (
	ErrInsufficientFunds  = dao.ErrInsufficientFunds
	ErrInsufficientShares = dao.ErrInsufficientShares
)

type LedgerDAO interface {
	HoldingSums(ctx context.Context, username string) ([]dao.HoldingSum, error)
	Positions(ctx context.Context, username string) ([]dao.PositionSum, error)
	FindArchive(ctx context.Context, username string) ([]dao.ArchiveEntry, error)
	ExecuteBuy(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (dao.User, error)
	ExecuteSell(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (dao.User, error)
}

type LedgerRepository struct {
	dao LedgerDAO
}

func NewLedgerRepository(dao LedgerDAO) *LedgerRepository {
	return &LedgerRepository{
		dao: dao,
	}
}

// HoldingSums returns a user's grouped positions with their cost basis.
// Prices and gains are filled in by the portfolio service.
func (r *LedgerRepository) HoldingSums(ctx context.Context, username string) ([]domain.Holding, error) {
	sums, err := r.dao.HoldingSums(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("r.dao.HoldingSums -> %w", err)
	}

	holdings := make([]domain.Holding, 0, len(sums))
	for _, s := range sums {
		holdings = append(holdings, domain.Holding{
			Stock:       s.Stock,
			Symbol:      s.Symbol,
			Shares:      s.Shares,
			BoughtTotal: s.BoughtTotal,
		})
	}

	return holdings, nil
}

func (r *LedgerRepository) Positions(ctx context.Context, username string) ([]domain.Position, error) {
	sums, err := r.dao.Positions(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Positions -> %w", err)
	}

	positions := make([]domain.Position, 0, len(sums))
	for _, s := range sums {
		positions = append(positions, domain.Position{
			Symbol: s.Symbol,
			Shares: s.Shares,
		})
	}

	return positions, nil
}

func (r *LedgerRepository) FindArchive(ctx context.Context, username string) ([]domain.ArchiveEntry, error) {
	entries, err := r.dao.FindArchive(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindArchive -> %w", err)
	}

	archive := make([]domain.ArchiveEntry, 0, len(entries))
	for _, e := range entries {
		archive = append(archive, domain.ArchiveEntry{
			ID:       e.ID,
			Username: e.Username,
			Stock:    e.Stock,
			Symbol:   e.Symbol,
			Shares:   e.Shares,
			Price:    e.Price,
			Date:     e.Date,
		})
	}

	return archive, nil
}

func (r *LedgerRepository) ExecuteBuy(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (domain.User, error) {
	updated, err := r.dao.ExecuteBuy(ctx, userID, stock, symbol, shares, price)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.ExecuteBuy -> %w", err)
	}

	return userDaoToDomain(updated), nil
}

func (r *LedgerRepository) ExecuteSell(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (domain.User, error) {
	updated, err := r.dao.ExecuteSell(ctx, userID, stock, symbol, shares, price)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.ExecuteSell -> %w", err)
	}

	return userDaoToDomain(updated), nil
}
