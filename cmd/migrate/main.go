// Command migrate aplica o revierte el esquema de la base de datos.
//
//	migrate up | down | version | force <n>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: migrate up|down|version|force <n>")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		return err
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", v, dirty)
		return nil
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requiere la versión")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("versión inválida %q: %w", args[1], err)
		}
		return m.Force(n)
	default:
		return fmt.Errorf("comando desconocido %q", args[0])
	}
}
