package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type QuoteRequest struct {
	Symbol string `json:"symbol" form:"symbol"`
}

func (req *QuoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Symbol, validation.Required, validation.Length(1, 10)),
	)
}
