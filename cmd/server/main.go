package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sharklink/internal/auth"
	"sharklink/internal/config"
	"sharklink/internal/drive"
	"sharklink/internal/geo"
	"sharklink/internal/handler"
	"sharklink/internal/model"
	"sharklink/internal/mq"
	"sharklink/internal/repository"
	"sharklink/internal/service"
	"sharklink/pkg/middleware"

	"github.com/gin-contrib/sessions"
	sessionredis "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Sharklink API
// @version 1.0
// @description Tracked share links for Google Drive files with view analytics
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.example.com/support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Server.Mode)

	// Initialize repositories
	redisRepo := repository.NewRedisRepository(&cfg.Database.Redis)
	defer redisRepo.Close()

	// The view-event archive is optional
	var mysqlRepo *repository.MySQLRepository
	if cfg.Database.MySQL.DSN != "" {
		mysqlRepo = repository.NewMySQLRepository(&cfg.Database.MySQL)
		defer mysqlRepo.Close()
	}

	// Initialize collaborators
	geoResolver := geo.NewResolver(&cfg.Geo)
	driveClient := drive.NewClient()
	authenticator := auth.NewGoogleAuthenticator(&cfg.Google)

	// Initialize services
	bloomSvc := service.NewBloomService(redisRepo.GetClient(), &cfg.Bloom)
	linkSvc := service.NewLinkService(redisRepo, bloomSvc, cfg.Server.BaseURL)
	viewSvc := service.NewViewService(redisRepo, geoResolver, bloomSvc)
	analyticsSvc := service.NewAnalyticsService(redisRepo)

	// Initialize MQ (optional, can be nil)
	var mqProducer *mq.Producer
	if cfg.RocketMQ.NameServer != "" {
		mqProducer, err = mq.NewProducer(&cfg.RocketMQ)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ producer, running without MQ")
		}
	}

	// Setup Gin
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(corsMiddleware())

	// Session store backed by Redis
	sessionStore, err := sessionredis.NewStore(
		10, "tcp",
		cfg.Database.Redis.Addr, "",
		cfg.Database.Redis.Password,
		[]byte(cfg.Session.Secret),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session store")
	}
	router.Use(sessions.Sessions(auth.SessionName, sessionStore))

	// Templates for the viewer and not-found pages
	router.LoadHTMLGlob("templates/*")

	// Handlers
	linksHandler := handler.NewLinksHandler(linkSvc)
	viewHandler := handler.NewViewHandler(viewSvc, linkSvc, mqProducer)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	filesHandler := handler.NewFilesHandler(driveClient)
	authHandler := handler.NewAuthHandler(authenticator)

	// OAuth flow
	router.GET("/auth/login", authHandler.Login)
	router.GET("/auth/callback", authHandler.Callback)
	router.POST("/auth/logout", authHandler.Logout)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public tracking surface
		v1.POST("/view/track", viewHandler.Track)
		v1.POST("/view/duration", viewHandler.Duration)
		v1.GET("/view/:linkId", viewHandler.Target)

		// Owner surface
		authed := v1.Group("", auth.RequireAuth())
		authed.POST("/links", linksHandler.Create)
		authed.GET("/links", linksHandler.List)
		authed.GET("/drive/files", filesHandler.List)
		authed.GET("/analytics/:linkId", analyticsHandler.Get)
	}

	// Viewer page (redirect controller)
	router.GET("/v/:linkId", viewHandler.ViewerPage)

	// Swagger documentation
	setupSwagger(router)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Start MQ consumer if both MQ and the archive are configured
	var mqConsumer *mq.Consumer
	if cfg.RocketMQ.NameServer != "" && mysqlRepo != nil {
		mqConsumer, err = mq.NewConsumer(&cfg.RocketMQ, func(ctx context.Context, msg *mq.ViewEventMessage) error {
			event := &model.ViewEvent{
				ViewID:    msg.ViewID,
				LinkID:    msg.LinkID,
				IPAddress: msg.IPAddress,
				UserAgent: msg.UserAgent,
				Referrer:  msg.Referrer,
				Device:    msg.Device,
				Browser:   msg.Browser,
				ViewedAt:  msg.ViewedAt,
			}
			return mysqlRepo.SaveViewEvent(ctx, event)
		})

		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize RocketMQ consumer")
		} else {
			go func() {
				if err := mqConsumer.Subscribe(); err != nil {
					log.Error().Err(err).Msg("Failed to subscribe to RocketMQ")
				}
			}()
			defer mqConsumer.Close()
		}
	}

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("Starting server on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Close producer
	if mqProducer != nil {
		mqProducer.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures the logger
func setupLogger(mode string) {
	if mode == "release" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Use console writer for pretty output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// setupSwagger sets up Swagger UI
func setupSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
