package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papertrade/api/internal/api/handler/v1/response"
	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/service"
)

type PortfolioService interface {
	GetPortfolio(ctx context.Context, userID uint) (domain.Portfolio, error)
	GetHistory(ctx context.Context, userID uint) ([]domain.ArchiveEntry, error)
	GetPositions(ctx context.Context, userID uint) ([]domain.Position, error)
}

type PortfolioHandler struct {
	svc PortfolioService
}

func NewPortfolioHandler(svc PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		svc: svc,
	}
}

// HandleGetPortfolio godoc
// @Summary      Get the authenticated user's portfolio
// @Description  Holdings grouped per symbol, valued at current quotes, plus cash and grand totals.
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  response.Portfolio
// @Failure      401  {object}  response.Err
// @Failure      503  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /portfolio [get]
// @Security BearerAuth
func (h *PortfolioHandler) HandleGetPortfolio(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	portfolio, err := h.svc.GetPortfolio(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrQuoteUnavailable) {
			response.RenderErr(ctx, response.ErrServiceUnavailable(service.ErrQuoteUnavailable))

			return
		}

		err = fmt.Errorf("v1.HandleGetPortfolio -> h.svc.GetPortfolio -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewPortfolio(portfolio))
}

// HandleGetHistory godoc
// @Summary      Get the authenticated user's transaction history
// @Description  The append-only archive of signed share transactions.
// @Tags         portfolio
// @Produce      json
// @Success      200  {array}   domain.ArchiveEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /history [get]
// @Security BearerAuth
func (h *PortfolioHandler) HandleGetHistory(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	archive, err := h.svc.GetHistory(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHistory -> h.svc.GetHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, archive)
}
