package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(os.Args[2:]); err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		return
	}

	if err := server.StartTrivia(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// issueToken prints a bearer token for the write routes, signed with JWT_SECRET.
func issueToken(args []string) error {
	flags := flag.NewFlagSet("token", flag.ContinueOnError)
	subject := flags.String("sub", "admin", "token subject")
	ttl := flags.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return err
	}

	token, err := helpers.GenerateToken(os.Getenv("JWT_SECRET"), *subject, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
