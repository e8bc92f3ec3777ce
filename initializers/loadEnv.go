package initializers

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv loads .env into the process environment. Variables that are
// already set win over the file.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}
