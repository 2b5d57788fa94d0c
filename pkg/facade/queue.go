package facade

import (
	"slices"
	"sync"

	"github.com/dmitrymomot/userflow-bootstrap/pkg/async"
)

// Command is one call recorded before the real client was attached.
type Command struct {
	Method string
	// Handle is nil for fire-and-forget methods.
	Handle *async.Deferred[struct{}]
	Args   []any
}

// Queue holds commands in call order until the consumer drains them.
type Queue struct {
	mu   sync.Mutex
	cmds []Command
}

// Append records cmd after every command appended before it.
func (q *Queue) Append(cmd Command) {
	q.mu.Lock()
	q.cmds = append(q.cmds, cmd)
	q.mu.Unlock()
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.cmds)
}

// Snapshot returns a copy of the queued commands without removing them.
func (q *Queue) Snapshot() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.cmds)
}

// Drain removes and returns every queued command.
func (q *Queue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.cmds
	q.cmds = nil
	return cmds
}
