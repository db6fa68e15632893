package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/polls/internal/app"
	"github.com/vncsmyrnk/polls/internal/config"
	"github.com/vncsmyrnk/polls/internal/core/ports"
	"github.com/vncsmyrnk/polls/internal/core/services"
)

func main() {
	var envFile string
	var limit int
	flag.StringVar(&envFile, "env", ".env", "Path to an optional .env file")
	flag.IntVar(&limit, "n", services.DefaultRecentLimit, "Number of recent questions to report")
	flag.Parse()

	conf, err := config.Load(envFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repos, closer, err := app.OpenRepositories(conf, false)
	if err != nil {
		slog.Error("failed to connect", "error", err, "storage", conf.Storage.Driver)
		os.Exit(1)
	}
	defer closer.Close()

	// a stuck database should not hang the job forever
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := report(ctx, os.Stdout, repos.PollService(), limit); err != nil {
		slog.Error("failed to build report", "error", err)
		os.Exit(1)
	}
}

func report(ctx context.Context, w io.Writer, polls ports.PollService, limit int) error {
	questions, err := polls.RecentQuestions(ctx, limit)
	if err != nil {
		return err
	}

	for _, q := range questions {
		results, err := polls.Results(ctx, q.ID)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "#%d %s (%s) - %d votes\n", q.ID, q.QuestionText, q.PubDate.Format(time.DateTime), results.TotalVotes)
		for _, c := range results.Choices {
			fmt.Fprintf(w, "  %-20s %5d  %5.1f%%\n", c.Text, c.Votes, c.Percentage)
		}
	}
	return nil
}
