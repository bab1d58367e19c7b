package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/docqa-labs/docqa-cli/internal/adapters/driving/cli"
)

func main() {
	// Best effort; a missing .env file is fine
	_ = godotenv.Load()

	if err := cli.InitServices(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "docqa: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
