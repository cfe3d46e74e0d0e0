package main

import (
	"net/http"
	"os"

	"github.com/rs/cors"

	"grux/cmd/gateway/router"
	"grux/cmd/gateway/services"
	"grux/cmd/internal/logger"
	"grux/config"
)

// @title           Grux Completion Gateway
// @version         1.0
// @description     Stateless proxy translating one chat turn into one upstream model call
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	provider, err := services.NewProviderFromConfig(cfg.Completer)
	if err != nil {
		logger.Log.Errorf("failed to build completion provider: %v", err)
		os.Exit(1)
	}
	completionSvc := services.NewCompletionService(provider)

	r := router.New(completionSvc)

	// The browser client is served from a different origin, so the gateway
	// answers preflight requests itself.
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
	})

	logger.Log.Infof("completion gateway listening on %s", cfg.Gateway.Addr)
	if err := http.ListenAndServe(cfg.Gateway.Addr, corsMiddleware.Handler(r)); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("gateway server stopped: %v", err)
		os.Exit(1)
	}
}
