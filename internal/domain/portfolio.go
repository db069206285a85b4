package domain

import (
	"github.com/shopspring/decimal"
)

// Holding is a user's aggregate position in one symbol, valued at the
// current quote.
type Holding struct {
	Stock       string          `json:"stock"`
	Symbol      string          `json:"symbol"`
	Shares      int64           `json:"shares"`
	Price       decimal.Decimal `json:"price"`
	BoughtTotal decimal.Decimal `json:"bought_total"`
	MarketValue decimal.Decimal `json:"market_value"`
	Gain        decimal.Decimal `json:"gain"`
}

type Portfolio struct {
	Holdings         []Holding       `json:"holdings"`
	Cash             decimal.Decimal `json:"cash"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	BoughtGrandTotal decimal.Decimal `json:"bought_grand_total"`
	GainTotal        decimal.Decimal `json:"gain_total"`
}

// Position is a symbol with the number of shares currently owned,
// as offered on the sell form.
type Position struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

// TradeReceipt reports an applied trade back to the caller.
// Shares are signed the same way as ArchiveEntry rows.
type TradeReceipt struct {
	Stock  string          `json:"stock"`
	Symbol string          `json:"symbol"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Total  decimal.Decimal `json:"total"`
	Cash   decimal.Decimal `json:"cash"`
}
