package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/garelabs/gare-backend/internal/data/db"
	"github.com/garelabs/gare-backend/internal/data/repos"
	"github.com/garelabs/gare-backend/internal/http/handlers"
	"github.com/garelabs/gare-backend/internal/http/middleware"
	"github.com/garelabs/gare-backend/internal/pkg/envutil"
	"github.com/garelabs/gare-backend/internal/pkg/logger"
	"github.com/garelabs/gare-backend/internal/server"
	"github.com/garelabs/gare-backend/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Loading environment variables...")
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	httpPort := envutil.GetEnv("HTTP_PORT", "8080", log)

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	personRepo := repos.NewPersonRepo(thePG, log)
	addressRepo := repos.NewAddressRepo(thePG, log)
	contactRepo := repos.NewContactRepo(thePG, log)
	partnerRepo := repos.NewPartnerRepo(thePG, log)
	relationshipRepo := repos.NewRelationshipRepo(thePG, log)
	photoRepo := repos.NewPhotoRepo(thePG, log)

	log.Info("Setting up services...")
	authService := services.NewAuthService(
		thePG,
		log,
		userRepo,
		userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(thePG, log, userRepo, userTokenRepo)
	personService := services.NewPersonService(thePG, log, personRepo, addressRepo, contactRepo, partnerRepo, relationshipRepo, photoRepo)
	partnerService := services.NewPartnerService(thePG, log, personRepo, partnerRepo, relationshipRepo)
	relationshipService := services.NewRelationshipService(thePG, log, personRepo, relationshipRepo)
	networkService := services.NewNetworkService(thePG, log, personRepo, relationshipRepo)
	suggestionService := services.NewSuggestionService(thePG, log, personRepo, partnerRepo)

	log.Info("Setting up handlers...")
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		AuthMiddleware:      middleware.NewAuthMiddleware(log, authService),
		HealthHandler:       handlers.NewHealthHandler(),
		AuthHandler:         handlers.NewAuthHandler(authService),
		UserHandler:         handlers.NewUserHandler(userService),
		PersonHandler:       handlers.NewPersonHandler(personService, suggestionService),
		OrganizationHandler: handlers.NewOrganizationHandler(personService, partnerService),
		RelationshipHandler: handlers.NewRelationshipHandler(relationshipService, networkService),
	})

	log.Info("Starting HTTP server...", "port", httpPort)
	if err := router.Run(":" + httpPort); err != nil {
		log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
