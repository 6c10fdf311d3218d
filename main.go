package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "tripplanbuddy/internal/config"
	router "tripplanbuddy/internal/http"
	"tripplanbuddy/internal/observability"
	"tripplanbuddy/internal/services"
	"tripplanbuddy/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	dotenvErr := intconfig.LoadDotEnv()
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	log, err := utils.InitLogger(env.LogMode)
	if err != nil {
		panic(err)
	}
	defer utils.SyncLogger()
	if dotenvErr != nil {
		log.Warnw("failed to load .env", "error", dotenvErr)
	}

	shutdownTracing := observability.InitOTel(context.Background(), observability.OtelConfig{
		Enabled:     env.OtelEnabled,
		ServiceName: env.ServiceName,
		Endpoint:    env.OtelEndpoint,
	})

	if intconfig.OpenAIKey() == "" {
		log.Warnw("OPENAI_API_KEY is not set; itinerary requests will fail until it is")
	}

	itinerary := services.ItineraryService{
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
		BaseURL:    env.OpenAIBaseURL,
		APIKey:     intconfig.OpenAIKey,
	}

	r := router.NewRouter(env, itinerary)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infow("server listening", "addr", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Warnw("tracer shutdown failed", "error", err)
	}

	log.Infow("server stopped")
}
