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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kumardhruv88/result-analytics/internal/config"
	"github.com/kumardhruv88/result-analytics/internal/logger"
	"github.com/kumardhruv88/result-analytics/internal/server"
)

func init() {
	if _, err := os.Stat("/.dockerenv"); os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	} else {
		log.Println("Running in Docker container, skipping .env file loading")
	}
}

func gracefulShutdown(apiServer *http.Server, zlog *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	zlog.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The context informs the server it has 5 seconds to finish the
	// request it is currently handling.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exiting")

	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}
	defer zlog.Sync()

	apiServer := server.New(cfg, zlog)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, zlog, done)

	zlog.Info("result analytics API listening", zap.String("addr", apiServer.Addr))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	zlog.Info("graceful shutdown complete")
}
