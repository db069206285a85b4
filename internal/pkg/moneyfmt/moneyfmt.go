package moneyfmt

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// USD renders a decimal dollar amount as "$1,234.56".
func USD(amount decimal.Decimal) string {
	cents := amount.Mul(hundred).Round(0).IntPart()

	return money.New(cents, money.USD).Display()
}
