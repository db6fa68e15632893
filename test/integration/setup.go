package integration

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	handler "github.com/vncsmyrnk/polls/internal/adapters/handler/http"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/gormrepo"
	"github.com/vncsmyrnk/polls/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/polls/internal/core/ports"
	"github.com/vncsmyrnk/polls/internal/core/services"
	"github.com/vncsmyrnk/polls/internal/testutil"
)

type TestApp struct {
	DB     *sql.DB
	Server *httptest.Server
}

type backend func(t *testing.T, dbURL string) (ports.QuestionRepository, ports.ChoiceRepository)

func sqlBackend(t *testing.T, dbURL string) (ports.QuestionRepository, ports.ChoiceRepository) {
	db, err := postgres.Open(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewQuestionRepository(db), postgres.NewChoiceRepository(db)
}

func gormBackend(t *testing.T, dbURL string) (ports.QuestionRepository, ports.ChoiceRepository) {
	db, err := gormrepo.Open(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { closeGorm(db) })
	return gormrepo.NewQuestionRepository(db), gormrepo.NewChoiceRepository(db)
}

func closeGorm(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func setupTestApp(t *testing.T, open backend) *TestApp {
	t.Helper()

	dbURL := testutil.StartPostgres(t)
	require.NoError(t, postgres.Migrate(dbURL))

	db, err := postgres.Open(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	questionRepo, choiceRepo := open(t, dbURL)

	pollService := services.NewPollService(
		questionRepo,
		choiceRepo,
		services.NewCreateQuestion(questionRepo),
		services.NewCreateChoice(choiceRepo),
		services.NewVote(choiceRepo),
	)
	choiceService := services.NewChoiceService(choiceRepo)

	server := httptest.NewServer(handler.NewHandler(
		handler.NewPollHandler(pollService),
		handler.NewChoiceHandler(choiceService),
	))
	t.Cleanup(server.Close)

	return &TestApp{DB: db, Server: server}
}
