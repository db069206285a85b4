package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArchiveEntry is one row of the append-only trade audit log.
// Shares are signed: positive for buys, negative for sells.
type ArchiveEntry struct {
	ID       uint            `json:"id"`
	Username string          `json:"username"`
	Stock    string          `json:"stock"`
	Symbol   string          `json:"symbol"`
	Shares   int64           `json:"shares"`
	Price    decimal.Decimal `json:"price"`
	Date     time.Time       `json:"date"`
}
