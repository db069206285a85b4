package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientFunds  = errors.New("not enough cash")
	ErrInsufficientShares = errors.New("not enough shares")
)

// Lot is one open-position row. The table keeps its historical name
// "buy": positive rows are purchases, negative rows are partial-sell
// adjustments, and a position is the per-(username, symbol) share sum.
type Lot struct {
	ID uint `gorm:"primaryKey"`

	Username string          `gorm:"index;not null"`
	Stock    string          `gorm:"not null"`
	Symbol   string          `gorm:"index;not null"`
	Shares   int64           `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:numeric(20,2);not null"`

	CreatedAt time.Time `gorm:"not null"`
}

func (Lot) TableName() string {
	return "buy"
}

// ArchiveEntry rows are write-once. Nothing in this package updates or
// deletes them.
type ArchiveEntry struct {
	ID uint `gorm:"primaryKey"`

	Username string          `gorm:"index;not null"`
	Stock    string          `gorm:"not null"`
	Symbol   string          `gorm:"not null"`
	Shares   int64           `gorm:"not null"`
	Price    decimal.Decimal `gorm:"type:numeric(20,2);not null"`

	Date time.Time `gorm:"not null;autoCreateTime"`
}

func (ArchiveEntry) TableName() string {
	return "archive"
}

// HoldingSum is one row of the grouped holdings query.
type HoldingSum struct {
	Stock       string
	Symbol      string
	Shares      int64
	BoughtTotal decimal.Decimal
}

// PositionSum is one symbol's aggregate share count.
type PositionSum struct {
	Symbol string
	Shares int64
}

type LedgerDAO struct {
	db *gorm.DB
}

func NewLedgerDAO(db *gorm.DB) *LedgerDAO {
	return &LedgerDAO{
		db: db,
	}
}

func (d *LedgerDAO) HoldingSums(ctx context.Context, username string) ([]HoldingSum, error) {
	var sums []HoldingSum

	result := d.db.WithContext(ctx).
		Model(&Lot{}).
		Select("stock, symbol, SUM(shares) AS shares, SUM(price * shares) AS bought_total").
		Where("username = ?", username).
		Group("stock, symbol").
		Order("symbol").
		Scan(&sums)
	if result.Error != nil {
		return nil, result.Error
	}

	return sums, nil
}

func (d *LedgerDAO) Positions(ctx context.Context, username string) ([]PositionSum, error) {
	var sums []PositionSum

	result := d.db.WithContext(ctx).
		Model(&Lot{}).
		Select("symbol, SUM(shares) AS shares").
		Where("username = ?", username).
		Group("symbol").
		Having("SUM(shares) > 0").
		Order("symbol").
		Scan(&sums)
	if result.Error != nil {
		return nil, result.Error
	}

	return sums, nil
}

func (d *LedgerDAO) FindArchive(ctx context.Context, username string) ([]ArchiveEntry, error) {
	var entries []ArchiveEntry

	result := d.db.WithContext(ctx).
		Where("username = ?", username).
		Order("date").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// ExecuteBuy debits the user's cash and records the lot and archive rows
// in one transaction. The user row is locked for the duration, so
// concurrent trades by the same user serialize on the store.
func (d *LedgerDAO) ExecuteBuy(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (User, error) {
	var user User

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		cost := price.Mul(decimal.NewFromInt(shares))
		balance := user.Cash.Sub(cost)
		if balance.IsNegative() {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&user).Update("cash", balance).Error; err != nil {
			return err
		}
		user.Cash = balance

		lot := Lot{
			Username: user.Username,
			Stock:    stock,
			Symbol:   symbol,
			Shares:   shares,
			Price:    price,
		}
		if err := tx.Create(&lot).Error; err != nil {
			return err
		}

		entry := ArchiveEntry{
			Username: user.Username,
			Stock:    stock,
			Symbol:   symbol,
			Shares:   shares,
			Price:    price,
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// ExecuteSell credits the user's cash at the given price and reduces the
// position, all in one transaction. Owned shares are recomputed under
// the user-row lock, so a sell that empties the position always deletes
// its lots; zero-share holdings cannot persist.
func (d *LedgerDAO) ExecuteSell(ctx context.Context, userID uint, stock, symbol string, shares int64, price decimal.Decimal) (User, error) {
	var user User

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return err
		}

		var owned int64
		err := tx.Model(&Lot{}).
			Select("COALESCE(SUM(shares), 0)").
			Where("username = ? AND symbol = ?", user.Username, symbol).
			Scan(&owned).Error
		if err != nil {
			return err
		}

		if shares > owned {
			return ErrInsufficientShares
		}

		if shares == owned {
			err = tx.Where("username = ? AND symbol = ?", user.Username, symbol).Delete(&Lot{}).Error
		} else {
			err = tx.Create(&Lot{
				Username: user.Username,
				Stock:    stock,
				Symbol:   symbol,
				Shares:   -shares,
				Price:    price,
			}).Error
		}
		if err != nil {
			return err
		}

		proceeds := price.Mul(decimal.NewFromInt(shares))
		balance := user.Cash.Add(proceeds)
		if err = tx.Model(&user).Update("cash", balance).Error; err != nil {
			return err
		}
		user.Cash = balance

		entry := ArchiveEntry{
			Username: user.Username,
			Stock:    stock,
			Symbol:   symbol,
			Shares:   -shares,
			Price:    price,
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		return User{}, err
	}

	return user, nil
}
