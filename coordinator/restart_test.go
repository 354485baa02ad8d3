package coordinator

import (
	"context"
	"fmt"
	"testing"

	"github.com/streammon/control/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	channels []string
	fail     bool
}

func (p *recordingPublisher) Publish(_ context.Context, channel, _ string) error {
	if p.fail {
		return fmt.Errorf("redis down")
	}
	p.channels = append(p.channels, channel)
	return nil
}

func TestSignalRestartIdempotent(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemory().Stores()
	c := New(stores.Globals, nil)

	due, err := c.RestartDue(ctx)
	require.NoError(t, err)
	assert.False(t, due, "missing singleton reads as no restart pending")

	for i := 0; i < 5; i++ {
		require.NoError(t, c.SignalRestart(ctx))
	}

	due, err = c.RestartDue(ctx)
	require.NoError(t, err)
	assert.True(t, due)

	g, err := stores.Globals.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", g.Key, "singleton created on first use with the worker-contract key")
}

func TestSignalRestartPublishesWakeup(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemory().Stores()
	pub := &recordingPublisher{}
	c := New(stores.Globals, pub)

	require.NoError(t, c.SignalRestart(ctx))
	assert.Equal(t, []string{WakeupChannel}, pub.channels)
}

func TestSignalRestartSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	stores := store.NewMemory().Stores()
	c := New(stores.Globals, &recordingPublisher{fail: true})

	require.NoError(t, c.SignalRestart(ctx), "the durable flag is authoritative; a wakeup failure is not an error")

	due, err := c.RestartDue(ctx)
	require.NoError(t, err)
	assert.True(t, due)
}

func TestWorkerClearsFlag(t *testing.T) {
	// the worker-side half of the contract: observe, reload, clear
	ctx := context.Background()
	stores := store.NewMemory().Stores()
	c := New(stores.Globals, nil)

	require.NoError(t, c.SignalRestart(ctx))
	require.NoError(t, stores.Globals.SetRestartDue(ctx, false))

	due, err := c.RestartDue(ctx)
	require.NoError(t, err)
	assert.False(t, due)
}
