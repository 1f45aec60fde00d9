// File: matero/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matero/config"
	cronjobs "matero/cron"
	"matero/database"
	catalogRepo "matero/database/repository/catalog"
	chatlogRepo "matero/database/repository/chatlog"
	requestRepo "matero/database/repository/request"
	"matero/handlers"
	"matero/middleware"
	"matero/routes"
	"matero/services/ai"
	"matero/services/assistant"
	"matero/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	catRepo := catalogRepo.NewMongoCatalogRepo()
	reqRepo := requestRepo.NewMongoRequestRepo()
	sessionRepo := chatlogRepo.NewMongoSessionRepo()

	// Catalog snapshot: load once at boot, then refresh on a schedule. A
	// failed load leaves the empty snapshot in place (zero matches) and the
	// scheduled refresh heals it; the server still comes up.
	catalogHolder := assistant.NewCatalogHolder(catRepo)
	if err := catalogHolder.Refresh(context.Background()); err != nil {
		logger.Sugar().Warnf("main: initial catalog load failed, starting with an empty catalog: %v", err)
	}

	var chatClient ai.ChatClient
	if config.AppConfig.AIProvider == "gemini" {
		gemini, err := ai.NewGeminiChatClient()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
		}
		chatClient = gemini
	} else {
		chatClient = ai.NewHTTPChatClient()
	}

	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	stateStore := assistant.NewRedisStateStore(utils.GetStateClient(), 30*time.Minute)

	assistantService := &assistant.DefaultAssistantService{
		States:     stateStore,
		Catalog:    catalogHolder,
		Chat:       chatClient,
		Sessions:   sessionRepo,
		Requests:   reqRepo,
		Queue:      queueClient,
		ResetDelay: time.Duration(config.AppConfig.SubmitResetSecs) * time.Second,
	}

	cronjobs.InitWorker(stateStore, sessionRepo)
	catalogCron := cronjobs.InitCatalogRefresh(catalogHolder)
	defer catalogCron.Stop()

	assistantHandler := handlers.NewAssistantHandler(assistantService)
	catalogHandler := handlers.NewCatalogHandler(catalogHolder)
	requestHandler := handlers.NewRequestHandler(reqRepo, sessionRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Assistant endpoints.
		StartSessionHandler:  assistantHandler.StartSessionHandler,
		EndSessionHandler:    assistantHandler.EndSessionHandler,
		MessageHandler:       assistantHandler.MessageHandler,
		StreamMessageHandler: assistantHandler.StreamMessageHandler,

		// Catalog endpoints.
		ListMaterialsHandler: catalogHandler.ListMaterialsHandler,
		ListSitesHandler:     catalogHandler.ListSitesHandler,

		// Request endpoints.
		GetRequestHandler:      requestHandler.GetRequestHandler,
		ListMyRequestsHandler:  requestHandler.ListMyRequestsHandler,
		SessionMessagesHandler: requestHandler.SessionMessagesHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
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
