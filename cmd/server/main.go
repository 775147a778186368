// cmd/server/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "forum-ingestion/docs"
	"forum-ingestion/internal/app"
)

// @title Forum Ingestion API
// @version 1.0
// @description This API crawls index.hu forum threads and returns their complete comment history.
//
// @BasePath /

func main() {
	application, err := app.Initialize()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	logger := application.Pipeline.Log

	go func() {
		if err := application.Start(); err != nil {
			logger.WithError(err).Info("server stopped listening")
		}
	}()

	logger.WithField("port", application.Config.ServerPort).Info("server started")
	logger.Info("swagger documentation available at /swagger/index.html")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Echo.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown error")
	}

	logger.Info("server stopped")
}
