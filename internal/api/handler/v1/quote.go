package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papertrade/api/internal/api/handler/v1/request"
	"github.com/papertrade/api/internal/api/handler/v1/response"
	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/service"
)

type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (domain.Quote, error)
}

type QuoteHandler struct {
	svc QuoteService
}

func NewQuoteHandler(svc QuoteService) *QuoteHandler {
	return &QuoteHandler{
		svc: svc,
	}
}

// HandleGetQuote godoc
// @Summary      Get a stock quote
// @Tags         quotes
// @Produce      json
// @Param        symbol  query     string  true  "ticker symbol"
// @Success      200     {object}  response.Quote
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      503     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /quote [get]
// @Security BearerAuth
func (h *QuoteHandler) HandleGetQuote(ctx *gin.Context) {
	var req request.QuoteRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	h.renderQuote(ctx, req)
}

// HandleQuote godoc
// @Summary      Get a stock quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request  body      request.QuoteRequest  true  "symbol"
// @Success      200      {object}  response.Quote
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /quote [post]
// @Security BearerAuth
func (h *QuoteHandler) HandleQuote(ctx *gin.Context) {
	var req request.QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	h.renderQuote(ctx, req)
}

func (h *QuoteHandler) renderQuote(ctx *gin.Context, req request.QuoteRequest) {
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	quote, err := h.svc.GetQuote(ctx.Request.Context(), req.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSymbolNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSymbolNotFound))
		case errors.Is(err, service.ErrQuoteUnavailable):
			response.RenderErr(ctx, response.ErrServiceUnavailable(service.ErrQuoteUnavailable))
		default:
			err = fmt.Errorf("v1.renderQuote -> h.svc.GetQuote -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewQuote(quote))
}
