package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/mockupstream"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	server := mockupstream.New(mockupstream.Options{
		Token: os.Getenv("MOCK_WEATHERKIT_TOKEN"),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	slog.Info("Mock backend starting", "port", port, "accounts", len(mockupstream.DefaultAccounts))
	if err := server.Router().Run(":" + port); err != nil {
		slog.Error("Failed to start mock backend", "error", err)
		os.Exit(1)
	}
}
