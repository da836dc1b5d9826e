package queue

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresQueue creates a PostgresQueue backed by pgxmock for unit testing.
func newMockPostgresQueue(t *testing.T) (*PostgresQueue, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	q := &PostgresQueue{pool: mock}
	return q, mock
}

func TestPostgresQueue_Enqueue(t *testing.T) {
	q, mock := newMockPostgresQueue(t)

	mock.ExpectExec(`INSERT INTO commands`).
		WithArgs(pgxmock.AnyArg(), "leko-1", "say", "merhaba", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	cmd, err := q.Enqueue(context.Background(), Command{RobotID: "leko-1", Type: "say", Text: "merhaba"})
	require.NoError(t, err)
	assert.NotEmpty(t, cmd.ID)
	assert.False(t, cmd.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresQueue_DequeueNext(t *testing.T) {
	q, mock := newMockPostgresQueue(t)
	createdAt := time.Now().UTC()

	mock.ExpectQuery(`DELETE FROM commands`).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "robot_id", "type", "text", "created_at"},
		).AddRow("cmd-1", "leko-1", "say", "merhaba", createdAt))

	got, err := q.DequeueNext(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "cmd-1", got.ID)
	assert.Equal(t, "say", got.Type)
	assert.Equal(t, "merhaba", got.Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresQueue_DequeueNext_Empty(t *testing.T) {
	q, mock := newMockPostgresQueue(t)

	mock.ExpectQuery(`DELETE FROM commands`).
		WillReturnError(pgx.ErrNoRows)

	got, err := q.DequeueNext(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresQueue_Migrate(t *testing.T) {
	q, mock := newMockPostgresQueue(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS commands`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, q.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresQueue_EnqueueError(t *testing.T) {
	q, mock := newMockPostgresQueue(t)

	mock.ExpectExec(`INSERT INTO commands`).
		WithArgs(pgxmock.AnyArg(), "", "say", "", pgxmock.AnyArg()).
		WillReturnError(eris.New("connection refused"))

	_, err := q.Enqueue(context.Background(), Command{Type: "say"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert command")
	assert.NoError(t, mock.ExpectationsWereMet())
}
