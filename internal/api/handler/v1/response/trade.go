package response

import (
	"github.com/shopspring/decimal"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/pkg/moneyfmt"
)

type TradeReceipt struct {
	Stock        string          `json:"stock"`
	Symbol       string          `json:"symbol"`
	Shares       int64           `json:"shares"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	Cash         decimal.Decimal `json:"cash"`
	CashDisplay  string          `json:"cash_display"`
}

func NewTradeReceipt(r domain.TradeReceipt) TradeReceipt {
	return TradeReceipt{
		Stock:        r.Stock,
		Symbol:       r.Symbol,
		Shares:       r.Shares,
		Price:        r.Price,
		PriceDisplay: moneyfmt.USD(r.Price),
		Total:        r.Total,
		TotalDisplay: moneyfmt.USD(r.Total),
		Cash:         r.Cash,
		CashDisplay:  moneyfmt.USD(r.Cash),
	}
}
