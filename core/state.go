package core

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/jellydator/ttlcache/v3"
	"github.com/ravenmq/raven/state"
)

// Action is a queued unit of work. Producers construct actions and hand them
// to the queue; the core goroutine owns them from then on and executes each
// exactly once.
type Action func(c *Core) error

// Env can be read from any goroutine
type Env struct {
	DispatchChannel chan<- Action
	state.RouterCfg
	Context context.Context
	Cancel  context.CancelCauseFunc
	Log     *slog.Logger

	Started  atomic.Bool
	Stopping atomic.Bool
}

// Core access must be done only on the core goroutine. All routing-table
// state hangs off this struct; producers reach it exclusively through
// dispatched actions.
type Core struct {
	*Env

	addrHash map[string]*Address
	addrs    []*Address // insertion order, drives management listing and sweeps

	grace    *ttlcache.Cache[string, struct{}]
	deletion DeletionPolicy
	resolve  ForwarderResolver

	dispatch <-chan Action
	done     chan struct{}
}

// Option adjusts a Core before its goroutine starts.
type Option func(c *Core)

// WithDeletionPolicy injects the collaborator consulted before an empty,
// unprotected address is removed from the table.
func WithDeletionPolicy(p DeletionPolicy) Option {
	return func(c *Core) {
		c.deletion = p
	}
}

// WithForwarderResolver injects the collaborator that maps a semantics tag
// to a forwarder policy object.
func WithForwarderResolver(r ForwarderResolver) Option {
	return func(c *Core) {
		c.resolve = r
	}
}

// New builds the core process state in the CREATED stage. Nothing runs until
// Start.
func New(cfg state.RouterCfg, logger *slog.Logger, opts ...Option) *Core {
	ctx, cancel := context.WithCancelCause(context.Background())
	dispatch := make(chan Action, cfg.Depth())

	c := &Core{
		Env: &Env{
			Context:         ctx,
			Cancel:          cancel,
			DispatchChannel: dispatch,
			RouterCfg:       cfg,
			Log:             logger,
		},
		addrHash: make(map[string]*Address),
		dispatch: dispatch,
		done:     make(chan struct{}),
		deletion: DeleteWhenIdle{},
		resolve:  DefaultForwarders().Resolve,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.initSweeper()
	return c
}
