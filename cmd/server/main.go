package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vncsmyrnk/polls/internal/adapters/handler/http"
	"github.com/vncsmyrnk/polls/internal/app"
	"github.com/vncsmyrnk/polls/internal/config"
)

func main() {
	var envFile string
	var migrate bool
	flag.StringVar(&envFile, "env", ".env", "Path to an optional .env file")
	flag.BoolVar(&migrate, "migrate", false, "Apply pending Postgres migrations before serving")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(envFile, migrate); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(envFile string, migrate bool) error {
	conf, err := config.Load(envFile)
	if err != nil {
		return err
	}

	repos, closer, err := app.OpenRepositories(conf, migrate)
	if err != nil {
		return err
	}
	defer closer.Close()

	handler := http.NewHandler(
		http.NewPollHandler(repos.PollService()),
		http.NewChoiceHandler(repos.ChoiceService()),
	)
	server := &stdhttp.Server{
		Addr:         conf.HTTPServer.Addr(),
		Handler:      handler,
		ReadTimeout:  conf.HTTPServer.ReadTimeout,
		WriteTimeout: conf.HTTPServer.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", server.Addr, "storage", conf.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.HTTPServer.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
