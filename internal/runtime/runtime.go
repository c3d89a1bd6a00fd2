package runtime

import (
	"context"
	"errors"

	"github.com/juju/clock"

	cfgpkg "github.com/NeilDarach/msg-q/internal/config"
	"github.com/NeilDarach/msg-q/internal/queue"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Clock  clock.Clock
}

// Runtime wires the message store, clock, and config for a single-node
// instance. It is constructed once at startup and lives for the process
// lifetime.
type Runtime struct {
	store  *queue.Store
	clk    clock.Clock
	config cfgpkg.Config
}

// Open builds the store and returns a Runtime. A nil clock defaults to the
// system wall clock.
func Open(opts Options) (*Runtime, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.WallClock
	}
	return &Runtime{
		store:  queue.NewStore(clk),
		clk:    clk,
		config: opts.Config,
	}, nil
}

// Close releases runtime resources. The in-memory store has none, but the
// shutdown path keeps the same shape as a persistent deployment.
func (r *Runtime) Close() error { return nil }

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.store == nil {
		return errors.New("store not open")
	}
	return nil
}

// Store exposes the message store.
func (r *Runtime) Store() *queue.Store { return r.store }

// Clock returns the runtime clock.
func (r *Runtime) Clock() clock.Clock { return r.clk }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
