package main

import (
	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"github.com/polishai/polish/internal/cmd"
)

func main() {
	// A local .env is optional.
	_ = godotenv.Load()

	cmd.Execute()
}
