// import_members carga la planilla de membros de una loja (CSV exportado del sistema anterior).
//
// Uso: go run ./cmd/import_members -tenant <uuid> -loja <uuid> [-encoding latin1] [-sep ';'] membros.csv
// Usa la misma configuración (DATABASE_URL, DB_*) que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/esferaordo/ordo-api/internal/application/member"
	"github.com/esferaordo/ordo-api/internal/infrastructure/postgres"
	"github.com/esferaordo/ordo-api/pkg/config"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

func main() {
	tenantID := flag.String("tenant", "", "ID del tenant")
	lojaID := flag.String("loja", "", "ID de la loja destino")
	encoding := flag.String("encoding", "latin1", "codificación de la planilla: latin1, cp1252 o utf8")
	sep := flag.String("sep", ";", "separador de columnas")
	dryRun := flag.Bool("dry-run", false, "solo valida la planilla, no escribe en la base")
	flag.Parse()

	if flag.NArg() != 1 || *tenantID == "" || *lojaID == "" {
		fmt.Fprintln(os.Stderr, "uso: import_members -tenant <id> -loja <id> [flags] membros.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}
	comma, n := utf8.DecodeRuneInString(*sep)
	if n == 0 || n != len(*sep) {
		fmt.Fprintf(os.Stderr, "separador inválido: %q\n", *sep)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir planilla")
	}
	defer f.Close()

	rows, err := parseMembers(f, *encoding, comma)
	if err != nil {
		log.Fatal().Err(err).Msg("leer planilla")
	}
	log.Info().Int("rows", len(rows)).Str("file", flag.Arg(0)).Msg("planilla leída")
	if *dryRun {
		for _, r := range rows {
			fmt.Printf("%s\t%s\t%s\t%s\n", r.NomeCompleto, r.Email, r.Situacao, r.CondicaoMensalidade)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := member.NewMemberUseCase(postgres.NewMemberRepository(pool), postgres.NewLojaRepository(pool), log)
	res, err := uc.Import(ctx, *tenantID, *lojaID, rows)
	if err != nil {
		log.Error().Err(err).Msg("importación interrumpida")
	}
	if res != nil {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		fmt.Printf("Criados: %d, omitidos: %d, com erro: %d\n", res.Created, res.Skipped, len(res.Errors))
	}
	if err != nil {
		os.Exit(1)
	}
}
