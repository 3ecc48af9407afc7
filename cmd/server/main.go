package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/quizforge/mocktest/config"
	"github.com/quizforge/mocktest/database"
	_ "github.com/quizforge/mocktest/docs" // Swagger docs - auto-generated
	adminctrl "github.com/quizforge/mocktest/internal/controller/admin"
	userctrl "github.com/quizforge/mocktest/internal/controller/user"
	"github.com/quizforge/mocktest/internal/events"
	"github.com/quizforge/mocktest/internal/logger"
	"github.com/quizforge/mocktest/internal/middleware"
	"github.com/quizforge/mocktest/internal/model"
	"github.com/quizforge/mocktest/internal/repository"
	"github.com/quizforge/mocktest/internal/service"
	"github.com/quizforge/mocktest/pkg/cache"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Mock Test Platform API
// @version 1.0
// @description API for timed mock tests: catalog, attempts with saved progress, scoring, purchases and leaderboard.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@quizforge.dev
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:5000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			NewOptionalRedis,
			NewEventPublisher,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewAttemptRepository,
			repository.NewPurchaseRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewTestService,
			service.NewAdminTestService,
			service.NewAttemptService,
			service.NewPurchaseService,
			service.NewPerformanceService,
			service.NewLeaderboardService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewTestController,
			userctrl.NewAttemptController,
			userctrl.NewPurchaseController,
			adminctrl.NewAdminTestController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewOptionalRedis connects to Redis when REDIS_HOST is set. A nil client is
// valid everywhere it is consumed; caching is simply skipped.
func NewOptionalRedis(cfg *config.Config) *cache.RedisClient {
	if cfg.Redis.Host == "" {
		log.Info().Msg("REDIS_HOST not set, leaderboard caching disabled")
		return nil
	}
	client, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		return nil
	}
	return client
}

// NewEventPublisher connects to RabbitMQ when RABBITMQ_HOST is set. A nil
// *RabbitPublisher satisfies events.Publisher as a no-op.
func NewEventPublisher(cfg *config.Config) events.Publisher {
	if cfg.RabbitMQ.Host == "" {
		log.Info().Msg("RABBITMQ_HOST not set, event publishing disabled")
		return (*events.RabbitPublisher)(nil)
	}
	pub, err := events.NewRabbitPublisher(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, continuing without event publishing")
		return (*events.RabbitPublisher)(nil)
	}
	return pub
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	// Custom logger using Zerolog for Gin
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	testCtrl *userctrl.TestController,
	attemptCtrl *userctrl.AttemptController,
	purchaseCtrl *userctrl.PurchaseController,
	adminTestCtrl *adminctrl.AdminTestController,
) {
	api := router.Group("/api")
	{
		// Public routes
		api.POST("/auth/register", authCtrl.Register)
		api.POST("/auth/login", authCtrl.Login)
		api.GET("/tests", testCtrl.GetAllTests)
		api.GET("/tests/:id", testCtrl.GetTestDetails)

		// Authenticated routes
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(cfg))
		{
			authed.GET("/auth/me", authCtrl.GetMe)

			authed.POST("/attempts", attemptCtrl.CreateAttempt)
			authed.GET("/attempts", attemptCtrl.ListAttempts)
			authed.GET("/attempts/leaderboard", attemptCtrl.GetLeaderboard)
			authed.GET("/attempts/:id", attemptCtrl.GetAttempt)
			authed.PUT("/attempts/:id", attemptCtrl.UpdateProgress)
			authed.POST("/attempts/:id/start", attemptCtrl.StartAttempt)
			authed.POST("/attempts/:id/submit", attemptCtrl.SubmitAttempt)

			authed.GET("/purchases", purchaseCtrl.GetPurchasedTests)
			authed.POST("/purchases", purchaseCtrl.PurchaseTests)
			authed.GET("/purchases/check/:testId", purchaseCtrl.CheckPurchase)

			authed.GET("/performance", purchaseCtrl.GetPerformance)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAuth(cfg), middleware.RequireAdmin())
		{
			admin.POST("/tests", adminTestCtrl.CreateTest)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Mock test API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.Attempt{},
		&model.Purchase{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
