package queue

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteQueue implements Queue using modernc.org/sqlite. This is the
// default driver: a single file next to the binary, no external service.
type SQLiteQueue struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteQueue, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteQueue{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS commands (
	id         TEXT PRIMARY KEY,
	robot_id   TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL,
	text       TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_commands_created_at ON commands(created_at);
`

func (q *SQLiteQueue) Migrate(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (q *SQLiteQueue) Enqueue(ctx context.Context, cmd Command) (*Command, error) {
	cmd.ID = uuid.New().String()
	cmd.CreatedAt = time.Now().UTC()

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO commands (id, robot_id, type, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		cmd.ID, cmd.RobotID, cmd.Type, cmd.Text, cmd.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert command")
	}
	return &cmd, nil
}

// DequeueNext pops the oldest command in a single DELETE ... RETURNING
// statement, so concurrent pollers never receive the same command.
func (q *SQLiteQueue) DequeueNext(ctx context.Context) (*Command, error) {
	row := q.db.QueryRowContext(ctx,
		`DELETE FROM commands
		 WHERE id = (SELECT id FROM commands ORDER BY created_at, id LIMIT 1)
		 RETURNING id, robot_id, type, text, created_at`,
	)

	var cmd Command
	err := row.Scan(&cmd.ID, &cmd.RobotID, &cmd.Type, &cmd.Text, &cmd.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: dequeue command")
	}
	return &cmd, nil
}

func (q *SQLiteQueue) Ping(ctx context.Context) error {
	return eris.Wrap(q.db.PingContext(ctx), "sqlite: ping")
}

func (q *SQLiteQueue) Close() error {
	return q.db.Close()
}
