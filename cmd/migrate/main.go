package main

import (
	"flag"
	"fmt"
	"log"

	"media-feed/pkg/config"
	"media-feed/pkg/database"
)

func main() {
	command := flag.String("command", "up", "migration command (up, down, status, reset)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Migrate(cfg, *command); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fmt.Printf("Migration command %q completed\n", *command)
}
