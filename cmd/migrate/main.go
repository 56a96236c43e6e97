// Command migrate aplica las migraciones SQL embebidas con goose.
//
// Uso:
//
//	go run ./cmd/migrate            # up
//	go run ./cmd/migrate -command=status
//	go run ./cmd/migrate -command=down
package main

import (
	"context"
	"flag"
	"os"

	"github.com/Marton-art/proyecto-integrado.ignore/internal/infrastructure/postgres"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/config"
	"github.com/Marton-art/proyecto-integrado.ignore/pkg/logger"
)

func main() {
	command := flag.String("command", postgres.MigrateUp, "up | down | status")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := postgres.Migrate(context.Background(), postgres.ResolveDSN(cfg.DB), *command, log); err != nil {
		log.Error().Err(err).Str("command", *command).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("command", *command).Msg("migración completada")
}
