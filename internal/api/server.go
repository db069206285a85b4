package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/papertrade/api/docs"
	v1 "github.com/papertrade/api/internal/api/handler/v1"
	"github.com/papertrade/api/internal/api/middleware"
	"github.com/papertrade/api/internal/config"
	"github.com/papertrade/api/internal/repository"
	"github.com/papertrade/api/internal/repository/dao"
	"github.com/papertrade/api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	quotes := service.NewQuoteClient(conf.Quote)

	authHandler := s.initAuthHandler(db)
	portfolioHandler := s.initPortfolioHandler(db, quotes)
	tradeHandler := s.initTradeHandler(db, quotes)
	quoteHandler := v1.NewQuoteHandler(service.NewQuoteService(quotes))
	s.MountHandlers(authHandler, portfolioHandler, tradeHandler, quoteHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo, s.startingCash())
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initPortfolioHandler(db *gorm.DB, quotes service.QuoteProvider) *v1.PortfolioHandler {
	ledgerRepo := repository.NewLedgerRepository(dao.NewLedgerDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewPortfolioService(ledgerRepo, userRepo, quotes)
	handler := v1.NewPortfolioHandler(svc)

	return handler
}

func (s *Server) initTradeHandler(db *gorm.DB, quotes service.QuoteProvider) *v1.TradeHandler {
	ledgerRepo := repository.NewLedgerRepository(dao.NewLedgerDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewTradeService(ledgerRepo, quotes)
	pSvc := service.NewPortfolioService(ledgerRepo, userRepo, quotes)
	handler := v1.NewTradeHandler(svc, pSvc)

	return handler
}

func (s *Server) startingCash() decimal.Decimal {
	cash, err := decimal.NewFromString(s.Config.Trading.StartingCash)
	if err != nil {
		zap.L().Warn("invalid trading.starting_cash, falling back to 10000",
			zap.String("starting_cash", s.Config.Trading.StartingCash))

		return decimal.NewFromInt(10000)
	}

	return cash
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, portfolioHandler *v1.PortfolioHandler, tradeHandler *v1.TradeHandler, quoteHandler *v1.QuoteHandler) {
	const basePath = "/api/v1"

	open := s.Router.Group(basePath)
	{
		open.POST("/register", authHandler.HandleRegister)
		open.POST("/login", authHandler.HandleLogin)
		open.GET("/logout", authHandler.HandleLogout)
		open.GET("/check", authHandler.HandleCheckUsername)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/portfolio", portfolioHandler.HandleGetPortfolio)
		authed.GET("/history", portfolioHandler.HandleGetHistory)
		authed.POST("/buy", tradeHandler.HandleBuy)
		authed.GET("/sell", tradeHandler.HandleGetPositions)
		authed.POST("/sell", tradeHandler.HandleSell)
		authed.GET("/quote", quoteHandler.HandleGetQuote)
		authed.POST("/quote", quoteHandler.HandleQuote)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "papertrade API"
	docs.SwaggerInfo.Description = "A stock-trading simulator API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
