package initializers

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Msg("no .env file found, using process environment")
			return
		}
		log.Warn().Err(err).Msg("failed to load .env file")
	}
}
