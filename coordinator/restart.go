// Package coordinator implements the restart broadcast: a level-triggered
// flag on the global_configs singleton that every worker polls. The flag is
// the sole required signal; setting it is idempotent, and clearing it after
// a reload is the workers' job, not ours.
package coordinator

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/streammon/control/errors"
	"github.com/streammon/control/store"
)

// WakeupChannel carries the optional best-effort pub/sub nudge emitted
// after the durable flag is raised, so idle workers can shorten their poll
// latency. Missing the message costs nothing: the flag stays up until a
// worker acts on it.
const WakeupChannel = "streammon:restart"

// Publisher is the optional wakeup side-channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, content string) error
}

type Coordinator struct {
	globals store.Globals
	pub     Publisher
}

// New builds a Coordinator. pub may be nil, which disables the wakeup
// side-channel entirely.
func New(globals store.Globals, pub Publisher) *Coordinator {
	return &Coordinator{globals: globals, pub: pub}
}

// SignalRestart raises restart_due on the singleton via upsert, creating it
// on first use. Repeated calls collapse to one pending flag; a worker that
// polls slowly still observes the request once it next checks.
func (c *Coordinator) SignalRestart(ctx context.Context) error {
	if err := c.globals.SetRestartDue(ctx, true); err != nil {
		return err
	}

	if c.pub != nil {
		if err := c.pub.Publish(ctx, WakeupChannel, "restart"); err != nil {
			// the durable flag already carries the signal
			logrus.WithError(err).Warn("restart wakeup publish failed")
		}
	}

	return nil
}

// RestartDue reads the current flag. This is the worker-side poll; it also
// backs ops tooling and tests. A missing singleton reads as no restart
// pending.
func (c *Coordinator) RestartDue(ctx context.Context) (bool, error) {
	g, err := c.globals.Get(ctx)
	if err == errors.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return g.RestartDue, nil
}
