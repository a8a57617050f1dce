// migrate aplica o revierte las migraciones embebidas.
//
// Uso: go run ./cmd/migrate [up|down|version]
package main

import (
	"fmt"
	"os"

	"github.com/esferaordo/ordo-api/internal/infrastructure/postgres"
	"github.com/esferaordo/ordo-api/pkg/config"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

func main() {
	cmd := postgres.MigrateUp
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	dsn := cfg.DB.ConnectionString()

	switch cmd {
	case "version":
		v, dirty, err := postgres.MigrationVersion(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("versión del esquema")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión del esquema")
	case postgres.MigrateUp, postgres.MigrateDown:
		if cmd == postgres.MigrateDown && cfg.App.IsProduction() {
			log.Fatal().Msg("migrate down no está permitido en producción")
		}
		if err := postgres.RunMigrations(dsn, cmd); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Str("direction", cmd).Msg("migraciones aplicadas")
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido %q; use up, down o version\n", cmd)
		os.Exit(2)
	}
}
