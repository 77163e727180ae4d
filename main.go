package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/handler"
	"main/middleware"
	"main/pkg/logger"
	"main/repository"
	"main/socket"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"main/model"
	"main/services"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	logger.Init()
	utils.InitValidator()
	utils.InitJWT()

	if os.Getenv("GO_ENV") != "test" {
		utils.InitMongoClient()
		initRedis()
	}
}

// initRedis wires the optional Redis-backed session cache and token
// blacklist. The service degrades gracefully without them.
func initRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set; session cache and token blacklist disabled")
		return
	}

	cache, err := services.NewSessionCache(redisURL)
	if err != nil {
		log.Printf("Warning: session cache unavailable: %v", err)
	} else {
		services.GlobalSessionCache = cache
	}

	blacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		log.Printf("Warning: token blacklist unavailable: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}
}

func setupRouter() (*gin.Engine, *socket.Hub) {
	if utils.GetEnvAsBool("GIN_RELEASE", false) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Initialize repositories
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)
	promptsRepo := repository.GetPromptsRepo(utils.MongoClient)

	// The hub re-queries the full owner snapshot on every change ping.
	hub := socket.NewHub(func(ctx context.Context, ownerID string) ([]*model.Prompt, error) {
		return promptsRepo.FindByOwner(ctx, ownerID)
	})

	// Initialize services
	userService := &usecase.UserService{
		UsersRepo: userRepo,
	}
	promptsService := &usecase.PromptsService{
		PromptsRepo: promptsRepo,
		Notifier:    hub,
	}
	statsHandler := handler.NewStatsHandler(userService, promptsService)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(int64(utils.GetEnvAsInt("MAX_REQUEST_BYTES", 1<<20))))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService, sessionRepo)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshHandler)
		}

		// Websockets carry the token as a query parameter, so the
		// subscription endpoint does its own auth.
		public.GET("/prompts/subscribe", func(c *gin.Context) {
			handler.SubscribeHandler(c, hub)
		})
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, userService)
			})
			user.GET("/stats", statsHandler.GetUserStats)
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
			sessions.POST("/:id/logout", func(c *gin.Context) {
				handler.LogoutSession(c, sessionRepo)
			})
			sessions.POST("/:id/extend", func(c *gin.Context) {
				handler.ExtendSession(c, sessionRepo)
			})
		}

		prompts := protected.Group("/prompts")
		{
			prompts.GET("", func(c *gin.Context) {
				handler.GetUserPromptsHandler(c, promptsService)
			})
			prompts.POST("", func(c *gin.Context) {
				handler.CreatePromptHandler(c, promptsService)
			})
			prompts.PUT("/:id", func(c *gin.Context) {
				handler.UpdatePromptHandler(c, promptsService)
			})
			prompts.DELETE("/:id", func(c *gin.Context) {
				handler.DeletePromptHandler(c, promptsService)
			})
		}
	}

	return router, hub
}

func main() {
	router, hub := setupRouter()
	go hub.Run()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	sig := <-signalChan
	log.Printf("Caught signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server shutdown complete")
}
