package response

import (
	"github.com/shopspring/decimal"

	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/pkg/moneyfmt"
)

type Holding struct {
	Stock        string          `json:"stock"`
	Symbol       string          `json:"symbol"`
	Shares       int64           `json:"shares"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"price_display"`
	BoughtTotal  decimal.Decimal `json:"bought_total"`
	MarketValue  decimal.Decimal `json:"market_value"`
	Gain         decimal.Decimal `json:"gain"`
	GainDisplay  string          `json:"gain_display"`
}

type Portfolio struct {
	Holdings          []Holding       `json:"holdings"`
	Cash              decimal.Decimal `json:"cash"`
	CashDisplay       string          `json:"cash_display"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	GrandTotalDisplay string          `json:"grand_total_display"`
	BoughtGrandTotal  decimal.Decimal `json:"bought_grand_total"`
	GainTotal         decimal.Decimal `json:"gain_total"`
	GainTotalDisplay  string          `json:"gain_total_display"`
}

func NewPortfolio(p domain.Portfolio) Portfolio {
	holdings := make([]Holding, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		holdings = append(holdings, Holding{
			Stock:        h.Stock,
			Symbol:       h.Symbol,
			Shares:       h.Shares,
			Price:        h.Price,
			PriceDisplay: moneyfmt.USD(h.Price),
			BoughtTotal:  h.BoughtTotal,
			MarketValue:  h.MarketValue,
			Gain:         h.Gain,
			GainDisplay:  moneyfmt.USD(h.Gain),
		})
	}

	return Portfolio{
		Holdings:          holdings,
		Cash:              p.Cash,
		CashDisplay:       moneyfmt.USD(p.Cash),
		GrandTotal:        p.GrandTotal,
		GrandTotalDisplay: moneyfmt.USD(p.GrandTotal),
		BoughtGrandTotal:  p.BoughtGrandTotal,
		GainTotal:         p.GainTotal,
		GainTotalDisplay:  moneyfmt.USD(p.GainTotal),
	}
}
