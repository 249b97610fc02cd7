package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	v1 "github.com/budgetfold/backend/internal/controllers/v1"
	"github.com/budgetfold/backend/internal/ledger"
	"github.com/budgetfold/backend/internal/router"
	"github.com/budgetfold/backend/internal/storage"
	"github.com/budgetfold/backend/internal/storage/memory"
	"github.com/budgetfold/backend/internal/storage/sqlite"
)

func main() {
	// A .env file is optional, variables already set take precedence
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	store, err := openStore()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Msg(err.Error())
		}
	}()

	r, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	controller := v1.NewController(store, ledger.New(store), func(password string) (string, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return string(hash), err
	})

	verify := func(password, hash string) error {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}

	router.AttachRoutes(controller, store, verify, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// openStore connects the configured database backend. The in-memory store
// is intended for local development only, its data is lost on exit.
func openStore() (storage.Store, error) {
	if os.Getenv("DB_BACKEND") == "memory" {
		return memory.New(), nil
	}

	path, ok := os.LookupEnv("DB_PATH")
	if !ok {
		dataDir := filepath.Join(".", "data")
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			return nil, err
		}
		path = filepath.Join(dataDir, "budgetfold.db?_pragma=foreign_keys(1)")
	}

	return sqlite.Open(path)
}
