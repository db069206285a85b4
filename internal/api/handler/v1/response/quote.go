package response

import (
	"github.com/shopspring/decimal"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/pkg/moneyfmt"
)

type Quote struct {
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
}

func NewQuote(q domain.Quote) Quote {
	return Quote{
		Name:         q.Name,
		Symbol:       q.Symbol,
		Price:        q.Price,
		PriceDisplay: moneyfmt.USD(q.Price),
	}
}
