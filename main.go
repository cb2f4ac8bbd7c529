// File: adeonabot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adeonabot/config"
	"adeonabot/cron"
	"adeonabot/database"
	customerRepoPkg "adeonabot/database/repository/customer"
	"adeonabot/handlers"
	"adeonabot/routes"
	"adeonabot/services/chat"
	"adeonabot/services/generation"
	"adeonabot/services/intent"
	"adeonabot/services/retrieval"
	"adeonabot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()

	// Company knowledge.
	companyInfo := chat.DefaultCompanyInfo()

	// Generation and retrieval services.
	cfg := config.AppConfig
	gemini, err := generation.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiEmbeddingModel)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
	}

	pinecone := retrieval.NewPineconeIndex(cfg.PineconeAPIKey, cfg.PineconeIndexHost)
	serp := retrieval.NewSerpAPIClient(cfg.SerpAPIKey, companyInfo.Domain)
	resultCache := retrieval.NewResultCache(
		utils.GetCacheClient(),
		time.Duration(cfg.RetrievalCacheTTLMin)*time.Minute,
	)

	orchestrator := &retrieval.Orchestrator{
		Embedder:    gemini,
		Index:       pinecone,
		Web:         serp,
		Cache:       resultCache,
		CompanyName: companyInfo.Name,
		AnchorTerms: companyInfo.Name + " " + companyInfo.Domain,
	}
	indexer := &retrieval.Indexer{Embedder: gemini, Index: pinecone}

	// Conversational core.
	sessions := chat.NewSessionStore()
	cancellationWindow := time.Duration(cfg.CancellationHours) * time.Hour
	chatService := chat.NewChatService(
		sessions,
		intent.NewRouter(),
		orchestrator,
		gemini,
		chat.NewBookingFlow(customerRepo, companyInfo),
		chat.NewCancellationFlow(customerRepo, cancellationWindow, companyInfo),
		companyInfo,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ChatHandler: handlers.ChatHandler(chatService),
		STTHandler:  handlers.STTHandler,

		AdminLoginHandler:      handlers.AdminLoginHandler(),
		SessionStatsHandler:    handlers.SessionStatsHandler(chatService),
		CustomerStatsHandler:   handlers.CustomerStatsHandler(customerRepo),
		ReloadKnowledgeHandler: handlers.ReloadKnowledgeHandler(indexer),
		HealthDetailHandler:    handlers.HealthDetailHandler(),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitSessionSweeper(sessions)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
