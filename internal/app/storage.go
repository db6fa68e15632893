// Package app binds the core ports to the backend chosen in configuration.
package app

import (
	"fmt"
	"io"

	"github.com/vncsmyrnk/polls/internal/adapters/repository/gormrepo"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/polls/internal/config"
	"github.com/vncsmyrnk/polls/internal/core/ports"
	"github.com/vncsmyrnk/polls/internal/core/services"
)

type Repositories struct {
	Questions ports.QuestionRepository
	Choices   ports.ChoiceRepository
}

// OpenRepositories connects to the configured backend. The returned closer
// releases the underlying connection pool. With migrate set, pending
// Postgres migrations are applied first; SQLite always bootstraps its own
// schema.
func OpenRepositories(conf *config.Config, migrate bool) (Repositories, io.Closer, error) {
	switch conf.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(conf.SQLite.Path)
		if err != nil {
			return Repositories{}, nil, err
		}
		return Repositories{
			Questions: sqlite.NewQuestionRepository(db),
			Choices:   sqlite.NewChoiceRepository(db),
		}, db, nil

	case config.DriverPostgres, config.DriverGorm:
		dbURL := conf.Postgres.URL()
		if migrate {
			if err := postgres.Migrate(dbURL); err != nil {
				return Repositories{}, nil, err
			}
		}

		if conf.Storage.Driver == config.DriverGorm {
			db, err := gormrepo.Open(dbURL)
			if err != nil {
				return Repositories{}, nil, err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return Repositories{}, nil, fmt.Errorf("failed to get connection pool: %w", err)
			}
			return Repositories{
				Questions: gormrepo.NewQuestionRepository(db),
				Choices:   gormrepo.NewChoiceRepository(db),
			}, sqlDB, nil
		}

		db, err := postgres.Open(dbURL)
		if err != nil {
			return Repositories{}, nil, err
		}
		return Repositories{
			Questions: postgres.NewQuestionRepository(db),
			Choices:   postgres.NewChoiceRepository(db),
		}, db, nil
	}

	return Repositories{}, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
}

// PollService wires the use cases over the repositories.
func (r Repositories) PollService() ports.PollService {
	return services.NewPollService(
		r.Questions,
		r.Choices,
		services.NewCreateQuestion(r.Questions),
		services.NewCreateChoice(r.Choices),
		services.NewVote(r.Choices),
	)
}

func (r Repositories) ChoiceService() ports.ChoiceService {
	return services.NewChoiceService(r.Choices)
}
