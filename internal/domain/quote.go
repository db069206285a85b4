package domain

import (
	"github.com/shopspring/decimal"
)

// Quote is the fixed-shape result of a price lookup.
type Quote struct {
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}
