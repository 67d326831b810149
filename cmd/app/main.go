package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found or error loading it")
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
