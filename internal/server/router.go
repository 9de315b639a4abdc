package server

import (
	"github.com/gin-gonic/gin"

	"github.com/garelabs/gare-backend/internal/http/handlers"
	"github.com/garelabs/gare-backend/internal/http/middleware"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                 *logger.Logger
	AuthMiddleware      *middleware.AuthMiddleware
	HealthHandler       *handlers.HealthHandler
	AuthHandler         *handlers.AuthHandler
	UserHandler         *handlers.UserHandler
	PersonHandler       *handlers.PersonHandler
	OrganizationHandler *handlers.OrganizationHandler
	RelationshipHandler *handlers.RelationshipHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
		auth.POST("/logout", cfg.AuthHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	individuals := protected.Group("/pessoas-fisicas")
	{
		individuals.GET("", cfg.PersonHandler.List)
		individuals.POST("", cfg.PersonHandler.Create)
		individuals.GET("/count", cfg.PersonHandler.Count)
		individuals.GET("/validate-goa", cfg.PersonHandler.ValidateCaseCode)
		individuals.GET("/validate-name", cfg.PersonHandler.ValidateName)
		individuals.GET("/:id", cfg.PersonHandler.Get)
		individuals.PATCH("/:id", cfg.PersonHandler.Update)
		individuals.DELETE("/:id", cfg.PersonHandler.Delete)
		individuals.GET("/:id/sugestoes", cfg.PersonHandler.Suggestions)
		individuals.GET("/:id/relacionamentos", cfg.RelationshipHandler.ByPersonParam)
		individuals.POST("/:id/analisar-relacionamentos", cfg.PersonHandler.Suggestions)
	}

	companies := protected.Group("/pessoas-juridicas")
	{
		companies.GET("", cfg.OrganizationHandler.List)
		companies.POST("", cfg.OrganizationHandler.Create)
		companies.GET("/count", cfg.OrganizationHandler.Count)
		companies.GET("/validate-goa", cfg.OrganizationHandler.ValidateCaseCode)
		companies.GET("/:id", cfg.OrganizationHandler.Get)
		companies.PATCH("/:id", cfg.OrganizationHandler.Update)
		companies.DELETE("/:id", cfg.OrganizationHandler.Delete)
		companies.GET("/:id/socios", cfg.OrganizationHandler.ListPartners)
		companies.POST("/:id/socios/importar", cfg.OrganizationHandler.ImportPartners)
	}

	relationships := protected.Group("/relacionamentos")
	{
		relationships.GET("", cfg.RelationshipHandler.List)
		relationships.POST("", cfg.RelationshipHandler.Create)
		relationships.GET("/por-pessoa", cfg.RelationshipHandler.ByPerson)
		relationships.POST("/analisar-rede", cfg.RelationshipHandler.AnalyzeNetwork)
		relationships.GET("/:id", cfg.RelationshipHandler.Get)
		relationships.PATCH("/:id", cfg.RelationshipHandler.Update)
		relationships.DELETE("/:id", cfg.RelationshipHandler.Delete)
	}

	protected.GET("/contagens", cfg.PersonHandler.Counts)

	users := protected.Group("/usuarios")
	{
		users.GET("/me", cfg.UserHandler.Me)
		users.GET("", cfg.AuthMiddleware.RequireAdmin(), cfg.UserHandler.List)
		users.PATCH("/:id/aprovacao", cfg.AuthMiddleware.RequireAdmin(), cfg.UserHandler.SetActive)
	}

	return router
}
