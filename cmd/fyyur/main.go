package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/farellandr/fyyur-trivia/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if err := server.StartFyyur(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
