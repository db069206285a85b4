package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// TradeRequest is shared by /buy and /sell. Shares must be a positive
// integer; fractional shares are not a thing here.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

func (req *TradeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Symbol, validation.Required, validation.Length(1, 10)),
		validation.Field(&req.Shares, validation.Required, validation.Min(int64(1))),
	)
}
