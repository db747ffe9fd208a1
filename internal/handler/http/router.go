package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikiasgoitom/airhost/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/airhost/internal/usecase/contract"
)

// RouterConfig carries the transport settings of the API.
type RouterConfig struct {
	BaseURL        string
	AllowedOrigins []string
	// RateLimit is requests per second per client. Zero disables limiting.
	RateLimit    float64
	CookieSecure bool
	SessionTTL   time.Duration
	Google       GoogleOAuthConfig
}

type Router struct {
	userHandler        *UserHandler
	authHandler        *AuthHandler
	listingHandler     *ListingHandler
	reviewHandler      *ReviewHandler
	reservationHandler *ReservationHandler
	adminHandler       *AdminHandler
	userUsecase        usecasecontract.IUserUseCase
	logger             usecasecontract.IAppLogger
	config             RouterConfig
}

func NewRouter(
	userUsecase usecasecontract.IUserUseCase,
	listingUsecase usecasecontract.IListingUseCase,
	reviewUsecase usecasecontract.IReviewUseCase,
	reservationUsecase usecasecontract.IReservationUseCase,
	adminUsecase usecasecontract.IAdminUseCase,
	config RouterConfig,
	logger usecasecontract.IAppLogger,
) *Router {
	cookie := middleware.CookieOptions{TTL: config.SessionTTL, Secure: config.CookieSecure}
	return &Router{
		userHandler:        NewUserHandler(userUsecase, cookie),
		authHandler:        NewAuthHandler(userUsecase, config.BaseURL, config.Google, cookie),
		listingHandler:     NewListingHandler(listingUsecase),
		reviewHandler:      NewReviewHandler(reviewUsecase),
		reservationHandler: NewReservationHandler(reservationUsecase),
		adminHandler:       NewAdminHandler(adminUsecase),
		userUsecase:        userUsecase,
		logger:             logger,
		config:             config,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if r.config.RateLimit > 0 {
		router.Use(middleware.RateLimiter(middleware.NewLimiter(r.config.RateLimit)))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { MessageHandler(c, http.StatusOK, "ok") })

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.LoadSession(r.userUsecase, r.config.CookieSecure))

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.Register)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/logout", r.userHandler.Logout)

		if r.config.Google.Enabled() {
			auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
			auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
		}
	}

	v1.GET("/users/profile/:id", r.userHandler.GetUser)
	v1.GET("/users/:id/listings", r.listingHandler.ListOwnerListings)

	listings := v1.Group("/listings")
	{
		listings.GET("", r.listingHandler.ListListings)
		listings.GET("/search", r.listingHandler.SearchListings)
		listings.GET("/:id", r.listingHandler.GetListing)
		listings.GET("/:id/reviews", r.reviewHandler.ListReviews)
		listings.POST("/:id/quote", r.reservationHandler.QuoteReservation)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.PUT("/me", r.userHandler.UpdateCurrentUser)

		protected.POST("/listings", r.listingHandler.CreateListing)
		protected.PUT("/listings/:id", r.listingHandler.UpdateListing)
		protected.DELETE("/listings/:id", r.listingHandler.DeleteListing)

		protected.POST("/listings/:id/reviews", r.reviewHandler.CreateReview)
		protected.DELETE("/listings/:id/reviews/:reviewID", r.reviewHandler.DeleteReview)

		protected.POST("/reservations", r.reservationHandler.CreateReservation)
		protected.GET("/reservations", r.reservationHandler.ListMyReservations)
		protected.GET("/reservations/:id", r.reservationHandler.GetReservation)
		protected.PUT("/reservations/:id", r.reservationHandler.UpdateReservation)
		protected.POST("/reservations/:id/cancel", r.reservationHandler.CancelReservation)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.GET("/stats", r.adminHandler.Stats)
		admin.GET("/users", r.adminHandler.ListUsers)
		admin.PUT("/users/:id/status", r.adminHandler.SetUserStatus)
		admin.PUT("/users/:id/role", r.adminHandler.SetUserRole)
		admin.DELETE("/users/:id", r.adminHandler.DeleteUser)
		admin.GET("/listings/pending", r.adminHandler.ListPendingListings)
		admin.PUT("/listings/:id/verification", r.adminHandler.SetListingVerification)
		admin.GET("/reservations", r.adminHandler.ListReservations)
		admin.PUT("/reservations/:id/status", r.adminHandler.SetReservationStatus)
		admin.DELETE("/reservations/:id", r.adminHandler.DeleteReservation)
		admin.POST("/reconcile", r.adminHandler.Reconcile)
	}
}
