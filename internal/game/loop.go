package game

import (
	"context"

	"github.com/charmbracelet/log"
)

// Loop serializes every interaction with a Table onto one goroutine. Player
// actions and timer callbacks are queued and run to completion one at a
// time, so table state is never touched concurrently.
type Loop struct {
	table   *Table
	actions chan func()
	stopped chan struct{}
	logger  *log.Logger
}

// NewLoop takes ownership of table. After this call the table must only be
// used through Do.
func NewLoop(table *Table, logger *log.Logger) *Loop {
	l := &Loop{
		table:   table,
		actions: make(chan func(), 64),
		stopped: make(chan struct{}),
		logger:  logger.WithPrefix("loop"),
	}
	table.enqueue = l.post
	return l
}

// Run processes queued actions until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)
	defer l.table.Close()

	l.logger.Debug("Table loop started")
	for {
		select {
		case fn := <-l.actions:
			fn()
		case <-ctx.Done():
			l.logger.Debug("Table loop stopped")
			return ctx.Err()
		}
	}
}

// Do runs fn against the table on the loop goroutine and returns its error
func (l *Loop) Do(ctx context.Context, fn func(*Table) error) error {
	result := make(chan error, 1)
	action := func() { result <- fn(l.table) }

	select {
	case l.actions <- action:
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post queues an internal action, dropping it if the loop has exited
func (l *Loop) post(fn func()) {
	select {
	case l.actions <- fn:
	case <-l.stopped:
	}
}
