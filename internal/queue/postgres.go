package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/leko-robotics/leko-server/internal/db"
)

// PostgresQueue implements Queue using pgxpool, for deployments where
// several server instances share one queue.
type PostgresQueue struct {
	pool db.Pool
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"enqueue_command": `INSERT INTO commands (id, robot_id, type, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
	"dequeue_command": `DELETE FROM commands
		 WHERE id = (SELECT id FROM commands ORDER BY created_at, id LIMIT 1 FOR UPDATE SKIP LOCKED)
		 RETURNING id, robot_id, type, text, created_at`,
}

// NewPostgres creates a PostgresQueue with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresQueue, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresQueue{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS commands (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	robot_id   TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL,
	text       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_commands_created_at ON commands(created_at);
`

func (q *PostgresQueue) Migrate(ctx context.Context) error {
	_, err := q.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (q *PostgresQueue) Enqueue(ctx context.Context, cmd Command) (*Command, error) {
	cmd.ID = uuid.New().String()
	cmd.CreatedAt = time.Now().UTC()

	_, err := q.pool.Exec(ctx,
		`INSERT INTO commands (id, robot_id, type, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
		cmd.ID, cmd.RobotID, cmd.Type, cmd.Text, cmd.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert command")
	}
	return &cmd, nil
}

// DequeueNext pops the oldest command atomically. SKIP LOCKED keeps
// concurrent pollers from blocking on each other.
func (q *PostgresQueue) DequeueNext(ctx context.Context) (*Command, error) {
	var cmd Command
	err := q.pool.QueryRow(ctx,
		`DELETE FROM commands
		 WHERE id = (SELECT id FROM commands ORDER BY created_at, id LIMIT 1 FOR UPDATE SKIP LOCKED)
		 RETURNING id, robot_id, type, text, created_at`,
	).Scan(&cmd.ID, &cmd.RobotID, &cmd.Type, &cmd.Text, &cmd.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: dequeue command")
	}
	return &cmd, nil
}

func (q *PostgresQueue) Ping(ctx context.Context) error {
	return eris.Wrap(q.pool.Ping(ctx), "postgres: ping")
}

func (q *PostgresQueue) Close() error {
	q.pool.Close()
	return nil
}
