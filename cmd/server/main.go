package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Allevandrose/realEstate/internal/config"
	"github.com/Allevandrose/realEstate/internal/handler"
	"github.com/Allevandrose/realEstate/internal/logger"
	"github.com/Allevandrose/realEstate/internal/middleware"
	"github.com/Allevandrose/realEstate/internal/repository"
	"github.com/Allevandrose/realEstate/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync() //nolint:errcheck

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	var ai service.AIClient
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI, log)
	if openaiClient.IsEnabled() {
		ai = openaiClient
		log.Info("LLM refinement enabled", zap.String("model", cfg.OpenAI.ChatModel))
	} else {
		log.Info("LLM refinement disabled, using heuristic filters only")
	}

	ranker := service.NewRanker(
		cfg.Ranking.WeightPrice,
		cfg.Ranking.WeightRecency,
		cfg.Ranking.WeightMatch,
	)
	chatService := service.NewChatService(
		repo,
		ai,
		ranker,
		cfg.Chat.MaxResults,
		cfg.Chat.CacheSize,
		time.Duration(cfg.Chat.CacheTTLSec)*time.Second,
		log,
	)
	listingService := service.NewListingService(repo, ai, log)

	router := setupRouter(cfg, log, repo, chatService, listingService)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}

func setupRouter(
	cfg *config.Config,
	log *zap.Logger,
	repo *repository.PostgresRepository,
	chatService *service.ChatService,
	listingService *service.ListingService,
) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	chatHandler := handler.NewChatHandler(chatService, log)
	listingHandler := handler.NewListingHandler(listingService, log)
	feedbackHandler := handler.NewFeedbackHandler(repo, log)
	embeddingHandler := handler.NewEmbeddingHandler(listingService, log)

	chatLimiter := middleware.NewRateLimiter(cfg.Chat.RateLimitRPS, cfg.Chat.RateLimitBurst)

	api := router.Group("/api/v1")
	{
		api.POST("/chat", chatLimiter.Middleware(), chatHandler.Chat)
		api.POST("/feedback", feedbackHandler.Submit)

		api.GET("/listings", listingHandler.List)
		api.GET("/listings/:id", listingHandler.Get)
		api.POST("/listings", listingHandler.Create)
		api.PUT("/listings/:id", listingHandler.Update)
		api.DELETE("/listings/:id", listingHandler.Delete)

		api.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
	}

	return router
}
