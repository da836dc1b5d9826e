package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is a mutex-guarded in-process FIFO. Contents are lost on
// restart.
type MemoryQueue struct {
	mu   sync.Mutex
	cmds []Command
}

func NewMemory() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Enqueue(_ context.Context, cmd Command) (*Command, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	cmd.ID = uuid.New().String()
	cmd.CreatedAt = time.Now().UTC()
	q.cmds = append(q.cmds, cmd)
	return &cmd, nil
}

func (q *MemoryQueue) DequeueNext(_ context.Context) (*Command, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.cmds) == 0 {
		return nil, nil
	}
	cmd := q.cmds[0]
	q.cmds = q.cmds[1:]
	return &cmd, nil
}

func (q *MemoryQueue) Ping(context.Context) error { return nil }

func (q *MemoryQueue) Close() error { return nil }
