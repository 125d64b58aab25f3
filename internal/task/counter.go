// Package task holds background jobs the application spawns at startup.
package task

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Counter logs "============i" for i in [0, Iterations).
// It runs once, off the request path, and stops early when its context ends.
type Counter struct {
	Iterations int
	log        logrus.FieldLogger
}

// NewCounter returns a Counter. A non-positive iterations value defaults to 10.
func NewCounter(iterations int, log logrus.FieldLogger) *Counter {
	if iterations <= 0 {
		iterations = 10
	}
	return &Counter{
		Iterations: iterations,
		log:        log.WithField("component", "startup_task"),
	}
}

// Name identifies the task in logs and in the component registry.
func (c *Counter) Name() string { return "userRunnable" }

// Run executes the task. It returns ctx.Err() if cancelled before finishing.
func (c *Counter) Run(ctx context.Context) error {
	for i := 0; i < c.Iterations; i++ {
		select {
		case <-ctx.Done():
			c.log.WithField("completed", i).Warn("startup_task_cancelled")
			return ctx.Err()
		default:
		}
		c.log.WithField("iteration", i).Info(fmt.Sprintf("============%d", i))
	}
	return nil
}
