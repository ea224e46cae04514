package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fortune/internal/httpserver"
	"github.com/robalobadob/fortune/internal/phrases"
	"github.com/robalobadob/fortune/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := phrases.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load phrase corpus")
	}
	log.Info().Int("phrases", phrases.Count()).Msg("phrase corpus loaded")

	db, err := openDB(getEnv("DB_DSN", defaultDSN))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	ttl := 24 * time.Hour
	if n, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "")); err == nil && n > 0 {
		ttl = time.Duration(n) * time.Hour
	}
	mem := store.NewMemoryStore(ttl)
	srv := httpserver.New(mem, db, phrases.All())
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting go-server")
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
