package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/ibeloyar/backoffice/internal/app"
	"github.com/ibeloyar/backoffice/internal/config"
	"github.com/ibeloyar/backoffice/pgk/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env необязателен, переменные окружения могут прийти снаружи
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal(err)
	}

	lg, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	cfg, err := config.Read()
	if err != nil {
		lg.Fatal(err)
	}

	if err := app.RunAdmin(cfg, lg); err != nil {
		lg.Fatal(err)
	}
}
