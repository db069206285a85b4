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

type TradeService interface {
	Buy(ctx context.Context, userID uint, symbol string, shares int64) (domain.TradeReceipt, error)
	Sell(ctx context.Context, userID uint, symbol string, shares int64) (domain.TradeReceipt, error)
}

type TradeHandler struct {
	svc  TradeService
	pSvc PortfolioService
}

func NewTradeHandler(svc TradeService, pSvc PortfolioService) *TradeHandler {
	return &TradeHandler{
		svc:  svc,
		pSvc: pSvc,
	}
}

// HandleBuy godoc
// @Summary      Buy shares
// @Description  Buys shares at the current quote. Fails with 403 when the cost exceeds available cash.
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        request  body      request.TradeRequest  true  "trade"
// @Success      200      {object}  response.TradeReceipt
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /buy [post]
// @Security BearerAuth
func (h *TradeHandler) HandleBuy(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.TradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	receipt, err := h.svc.Buy(ctx.Request.Context(), userID, req.Symbol, req.Shares)
	if err != nil {
		renderTradeErr(ctx, "v1.HandleBuy", err)

		return
	}

	ctx.JSON(http.StatusOK, response.NewTradeReceipt(receipt))
}

// HandleSell godoc
// @Summary      Sell shares
// @Description  Sells shares at the current quote. Fails with 403 when more shares are requested than owned.
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        request  body      request.TradeRequest  true  "trade"
// @Success      200      {object}  response.TradeReceipt
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      503      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sell [post]
// @Security BearerAuth
func (h *TradeHandler) HandleSell(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.TradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	receipt, err := h.svc.Sell(ctx.Request.Context(), userID, req.Symbol, req.Shares)
	if err != nil {
		renderTradeErr(ctx, "v1.HandleSell", err)

		return
	}

	ctx.JSON(http.StatusOK, response.NewTradeReceipt(receipt))
}

// HandleGetPositions godoc
// @Summary      List sellable positions
// @Description  Symbols with a positive aggregate share count, as offered on the sell form.
// @Tags         trades
// @Produce      json
// @Success      200  {array}   domain.Position
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sell [get]
// @Security BearerAuth
func (h *TradeHandler) HandleGetPositions(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	positions, err := h.pSvc.GetPositions(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPositions -> h.pSvc.GetPositions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, positions)
}

// renderTradeErr maps trade failures onto the error taxonomy: bad input
// and unknown symbols are 400s, solvency and share-availability
// failures are 403s.
func renderTradeErr(ctx *gin.Context, caller string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidInput))
	case errors.Is(err, service.ErrSymbolNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrSymbolNotFound))
	case errors.Is(err, service.ErrInsufficientFunds):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrInsufficientFunds))
	case errors.Is(err, service.ErrInsufficientShares):
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrInsufficientShares))
	case errors.Is(err, service.ErrQuoteUnavailable):
		response.RenderErr(ctx, response.ErrServiceUnavailable(service.ErrQuoteUnavailable))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", caller, err)))
	}
}
