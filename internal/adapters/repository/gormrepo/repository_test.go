package gormrepo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/polls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/repotest"
	"github.com/vncsmyrnk/polls/internal/testutil"
)

func TestRepositories(t *testing.T) {
	dbURL := testutil.StartPostgres(t)
	require.NoError(t, postgres.Migrate(dbURL))

	db, err := Open(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	repotest.Run(t, func(t *testing.T) repotest.Repositories {
		require.NoError(t, db.Exec(`TRUNCATE questions, choices RESTART IDENTITY CASCADE`).Error)

		return repotest.Repositories{
			Questions: NewQuestionRepository(db),
			Choices:   NewChoiceRepository(db),
		}
	})
}
