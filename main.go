package main

import (
	"github.com/joho/godotenv"

	"github.com/slidecast/slidecast/cmd"
)

func main() {
	// Optional .env for OPENAI_API_KEY and friends.
	_ = godotenv.Load()

	cmd.Execute()
}
