// Package queue holds robot commands durably between the moment a parent
// submits one and the moment the robot polls for it. Commands survive a
// process restart with the sqlite and postgres drivers; the memory driver
// is for tests and local development.
package queue

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// Command is a single instruction queued for a robot.
type Command struct {
	ID        string    `json:"id"`
	RobotID   string    `json:"robot_id,omitempty"`
	Type      string    `json:"type"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Queue is a FIFO command store. DequeueNext removes and returns the
// oldest command, or (nil, nil) when the queue is empty.
type Queue interface {
	Enqueue(ctx context.Context, cmd Command) (*Command, error)
	DequeueNext(ctx context.Context) (*Command, error)
	Ping(ctx context.Context) error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open creates the queue named by driver and runs its migration.
func Open(ctx context.Context, driver, dsn string) (Queue, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverSQLite:
		q, err := NewSQLite(dsn)
		if err != nil {
			return nil, err
		}
		if err := q.Migrate(ctx); err != nil {
			q.Close()
			return nil, err
		}
		return q, nil
	case DriverPostgres:
		q, err := NewPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := q.Migrate(ctx); err != nil {
			q.Close()
			return nil, err
		}
		return q, nil
	default:
		return nil, eris.Errorf("queue: unknown driver %q", driver)
	}
}
