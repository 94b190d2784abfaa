package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nagare-games/wordstrike/internal/httpserver"
	"github.com/nagare-games/wordstrike/internal/store"
	"github.com/nagare-games/wordstrike/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word pairs")
	}
	dict := words.Default()
	log.Info().Int("pairs", dict.Stats()).Msg("dictionary loaded")

	db, err := openDB(getEnv("DATABASE_PATH", "./data/wordstrike.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, db, dict)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting wordstrike server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
