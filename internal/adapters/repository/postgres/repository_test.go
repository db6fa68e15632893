package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/polls/internal/adapters/repository/repotest"
	"github.com/vncsmyrnk/polls/internal/testutil"
)

func setupDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	dbURL := testutil.StartPostgres(t)
	require.NoError(t, Migrate(dbURL))

	db, err := Open(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, dbURL
}

func TestRepositories(t *testing.T) {
	db, _ := setupDB(t)

	repotest.Run(t, func(t *testing.T) repotest.Repositories {
		_, err := db.Exec(`TRUNCATE questions, choices RESTART IDENTITY CASCADE`)
		require.NoError(t, err)

		return repotest.Repositories{
			Questions: NewQuestionRepository(db),
			Choices:   NewChoiceRepository(db),
		}
	})
}

func TestMigrate_Idempotent(t *testing.T) {
	_, dbURL := setupDB(t)

	assert.NoError(t, Migrate(dbURL))
}

func TestRollback(t *testing.T) {
	db, dbURL := setupDB(t)

	require.NoError(t, Rollback(dbURL))

	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'choices')`).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists, "choices table should be dropped")

	err = db.QueryRow(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'questions')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "questions table should survive a single step back")
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.False(t, isForeignKeyViolation(sql.ErrNoRows))
	assert.False(t, isForeignKeyViolation(nil))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23503"})))
}
