package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/papertrade/api/internal/api/handler/v1/response"
	"github.com/papertrade/api/internal/domain"
	"github.com/papertrade/api/internal/service"
)

type stubPortfolioService struct {
	portfolio domain.Portfolio
	archive   []domain.ArchiveEntry
	positions []domain.Position
	err       error
}

func (s *stubPortfolioService) GetPortfolio(context.Context, uint) (domain.Portfolio, error) {
	return s.portfolio, s.err
}

func (s *stubPortfolioService) GetHistory(context.Context, uint) ([]domain.ArchiveEntry, error) {
	return s.archive, s.err
}

func (s *stubPortfolioService) GetPositions(context.Context, uint) ([]domain.Position, error) {
	return s.positions, s.err
}

func newPortfolioRouter(svc PortfolioService) *gin.Engine {
	h := NewPortfolioHandler(svc)

	router := gin.New()
	authed := router.Group("/", asUser(1))
	authed.GET("/portfolio", h.HandleGetPortfolio)
	authed.GET("/history", h.HandleGetHistory)

	return router
}

func TestPortfolioHandler_HandleGetPortfolio(t *testing.T) {
	router := newPortfolioRouter(&stubPortfolioService{
		portfolio: domain.Portfolio{
			Holdings: []domain.Holding{{
				Stock:       "Acme Corp",
				Symbol:      "ACME",
				Shares:      10,
				Price:       dec("60"),
				BoughtTotal: dec("500"),
				MarketValue: dec("600"),
				Gain:        dec("100"),
			}},
			Cash:             dec("9500"),
			GrandTotal:       dec("10100"),
			BoughtGrandTotal: dec("10000"),
			GainTotal:        dec("100"),
		},
	})

	rec := perform(t, router, http.MethodGet, "/portfolio", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var portfolio response.Portfolio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &portfolio))
	require.Len(t, portfolio.Holdings, 1)
	require.Equal(t, "$60.00", portfolio.Holdings[0].PriceDisplay)
	require.Equal(t, "$10,100.00", portfolio.GrandTotalDisplay)
	require.Equal(t, "$9,500.00", portfolio.CashDisplay)
}

func TestPortfolioHandler_HandleGetPortfolio_QuoteUnavailable(t *testing.T) {
	router := newPortfolioRouter(&stubPortfolioService{err: service.ErrQuoteUnavailable})

	rec := perform(t, router, http.MethodGet, "/portfolio", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPortfolioHandler_HandleGetHistory(t *testing.T) {
	router := newPortfolioRouter(&stubPortfolioService{
		archive: []domain.ArchiveEntry{
			{Username: "alice", Stock: "Acme Corp", Symbol: "ACME", Shares: 10, Price: dec("50")},
			{Username: "alice", Stock: "Acme Corp", Symbol: "ACME", Shares: -10, Price: dec("60")},
		},
	})

	rec := perform(t, router, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var archive []domain.ArchiveEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &archive))
	require.Len(t, archive, 2)
	require.EqualValues(t, -10, archive[1].Shares)
}

func TestPortfolioHandler_Unauthenticated(t *testing.T) {
	h := NewPortfolioHandler(&stubPortfolioService{})

	router := gin.New()
	router.GET("/portfolio", h.HandleGetPortfolio)

	rec := perform(t, router, http.MethodGet, "/portfolio", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
