package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vncsmyrnk/polls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/polls/internal/config"
)

func main() {
	var envFile string
	flag.StringVar(&envFile, "env", ".env", "Path to an optional .env file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-env file] up|down\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	conf, err := config.Load(envFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	dbURL := conf.Postgres.URL()

	switch direction := flag.Arg(0); direction {
	case "up":
		err = postgres.Migrate(dbURL)
	case "down":
		err = postgres.Rollback(dbURL)
	default:
		slog.Error("unknown direction", "direction", direction)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("migration finished", "direction", flag.Arg(0))
}
