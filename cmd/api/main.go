package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mikiasgoitom/airhost/internal/domain/contract"
	handlerHttp "github.com/mikiasgoitom/airhost/internal/handler/http"
	redisclient "github.com/mikiasgoitom/airhost/internal/infrastructure/cache"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/config"
	database "github.com/mikiasgoitom/airhost/internal/infrastructure/database"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/geocoder"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/jwt"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/logger"
	passwordservice "github.com/mikiasgoitom/airhost/internal/infrastructure/password_service"
	randomgenerator "github.com/mikiasgoitom/airhost/internal/infrastructure/random_generator"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/repository/memory"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/repository/mongodb"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/store"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/uuidgen"
	"github.com/mikiasgoitom/airhost/internal/infrastructure/validator"
	"github.com/mikiasgoitom/airhost/internal/usecase"
)

type repositories struct {
	users        contract.IUserRepository
	listings     contract.IListingRepository
	reviews      contract.IReviewRepository
	reservations contract.IReservationRepository
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewLogger(appConfig.LogLevel, appConfig.LogFormat)
	if err := appConfig.Validate(); err != nil {
		appLogger.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dependency Injection: Repositories
	var repos repositories
	switch appConfig.StorageDriver {
	case config.StorageMemory:
		appLogger.Warnf("using in-memory storage, data is lost on restart")
		s := memory.NewStore()
		repos = repositories{
			users:        memory.NewUserRepository(s),
			listings:     memory.NewListingRepository(s),
			reviews:      memory.NewReviewRepository(s),
			reservations: memory.NewReservationRepository(s),
		}
	default:
		mongoClient, err := database.NewMongoDBClient(appConfig.MongoURI)
		if err != nil {
			appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				appLogger.Errorf("failed to disconnect from MongoDB: %v", err)
			}
		}()
		db := mongoClient.Database(appConfig.MongoDBName)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			appLogger.Fatalf("Failed to create indexes: %v", err)
		}
		repos = repositories{
			users:        mongodb.NewMongoUserRepository(db.Collection(database.ColUsers)),
			listings:     mongodb.NewListingRepository(db),
			reviews:      mongodb.NewReviewRepository(db),
			reservations: mongodb.NewReservationRepository(db),
		}
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	jwtService := jwt.NewJWTService(jwt.NewJWTManager(appConfig.SessionSecret, appConfig.GetSessionTTL()))
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Dependency Injection: Usecases
	cascadeUsecase := usecase.NewCascadeUsecase(repos.users, repos.listings, repos.reviews, repos.reservations)
	userUsecase := usecase.NewUserUsecase(repos.users, repos.listings, repos.reservations, hasher, jwtService, appLogger, appValidator, uuidGenerator, randomGenerator)
	listingUsecase := usecase.NewListingUsecase(repos.listings, repos.reviews, cascadeUsecase, uuidGenerator, appLogger)
	reviewUsecase := usecase.NewReviewUsecase(repos.reviews, repos.listings, cascadeUsecase, uuidGenerator, appLogger)
	reservationUsecase := usecase.NewReservationUsecase(repos.reservations, repos.listings, cascadeUsecase, uuidGenerator, appLogger)
	adminUsecase := usecase.NewAdminUsecase(repos.users, repos.listings, repos.reviews, repos.reservations, cascadeUsecase, appLogger)

	// Optional Dependency Injection: Redis cache
	if appConfig.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		if err != nil {
			appLogger.Warnf("listing cache disabled: %v", err)
		} else {
			defer redisclient.Close(rdb)
			listingCache := store.NewListingCacheStore(rdb, appConfig.GetListingCacheTTL())
			listingUsecase.SetListingCache(listingCache)
			reviewUsecase.SetListingCache(listingCache)
			adminUsecase.SetListingCache(listingCache)
			cascadeUsecase.SetListingCache(listingCache)
			appLogger.Infof("listing cache enabled")
		}
	}

	// Optional Dependency Injection: geocoding of new listings
	if key := appConfig.GetGoogleMapsAPIKey(); key != "" {
		gc, err := geocoder.NewGoogleMapsGeocoder(key)
		if err != nil {
			appLogger.Warnf("geocoding disabled: %v", err)
		} else {
			listingUsecase.SetGeocoder(gc)
		}
	}

	// Setup API routes
	router := gin.New()
	appRouter := handlerHttp.NewRouter(
		userUsecase, listingUsecase, reviewUsecase, reservationUsecase, adminUsecase,
		handlerHttp.RouterConfig{
			BaseURL:        appConfig.GetAppBaseURL(),
			AllowedOrigins: appConfig.CORSOrigins,
			RateLimit:      appConfig.RateLimitPerSecond,
			CookieSecure:   appConfig.CookieSecure,
			SessionTTL:     appConfig.GetSessionTTL(),
			Google: handlerHttp.GoogleOAuthConfig{
				ClientID:     appConfig.GoogleClientID,
				ClientSecret: appConfig.GoogleClientSecret,
			},
		},
		appLogger,
	)
	appRouter.SetupRoutes(router)

	// Start the server
	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	go func() {
		appLogger.Infof("Server running on port %s (storage=%s)", appConfig.Port, appConfig.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("graceful shutdown failed: %v", err)
	}
}
