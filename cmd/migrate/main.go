package main

import (
	"flag"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/yuqianw/smart-wardrobe/internal/config"
	"github.com/yuqianw/smart-wardrobe/internal/repository/postgres"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := postgres.RunMigrations(cfg.Database.DSN(), *source); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
