package core

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"reflect"
	"runtime"
	"syscall"
	"time"

	"github.com/encodeous/tint"
	"github.com/ravenmq/raven/perf"
	"github.com/ravenmq/raven/state"
	slogmulti "github.com/samber/slog-multi"
)

// NewLogger builds the process logger: colored stderr output, optionally
// fanned out to a log file.
func NewLogger(cfg state.RouterCfg, logLevel slog.Level) (*slog.Logger, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        logLevel,
			AddSource:    false,
			TimeFormat:   "15:04:05",
			CustomPrefix: string(cfg.Id),
		}))

	if cfg.LogPath != "" {
		err := os.MkdirAll(path.Dir(cfg.LogPath), 0700)
		if err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0700)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// Start runs a router core until it receives SIGINT or SIGTERM.
func Start(cfg state.RouterCfg, logLevel slog.Level) error {
	logger, err := NewLogger(cfg, logLevel)
	if err != nil {
		return err
	}

	c := New(cfg, logger)
	c.Start()
	c.ProvisionAddresses()

	c.Log.Info("raven has been initialized. To gracefully exit, send SIGINT or Ctrl+C.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			c.Cancel(errors.New("received shutdown signal"))
		case <-c.Context.Done():
		}
	}()

	<-c.Context.Done()
	c.Stop()
	return nil
}

// ProvisionAddresses creates every configured address through the action
// queue, same as an attach would.
func (c *Core) ProvisionAddresses() {
	for _, addr := range c.RouterCfg.Addresses {
		addr := addr
		c.Env.Dispatch(func(c *Core) error {
			_, err := c.CreateOrFetchAddress(addr.Scope, addr.Prefix, addr.Distribution)
			return err
		})
	}
}

// Start spawns the core goroutine, moving the engine from CREATED to
// RUNNING.
func (c *Core) Start() {
	c.Started.Store(true)
	go c.grace.Start()
	c.RepeatTask(sweepAddresses, state.SweeperDelay)
	go c.run()
}

// Done is closed once the core goroutine has exited.
func (c *Core) Done() <-chan struct{} {
	return c.done
}

// Stop moves the engine through STOPPING and joins the core goroutine.
// Actions already queued at this point are still executed before the
// goroutine exits; committed routing-table changes are never dropped.
// Safe to call more than once, and on a core that was never started.
func (c *Core) Stop() {
	if c.Stopping.Swap(true) {
		return // don't stop twice
	}
	c.Cancel(context.Canceled)
	close(c.Env.DispatchChannel)
	if c.Started.Load() {
		<-c.done
		c.grace.Stop()
	}
	c.Log.Info("stopped", "reason", context.Cause(c.Context).Error())
}

func (c *Core) run() {
	defer close(c.done)
	c.Log.Debug("started core loop")
	batch := make([]Action, 0, 64)
	for {
		select {
		case act, ok := <-c.dispatch:
			if !ok {
				return // queue closed and fully drained
			}
			batch = c.collect(batch[:0], act)
			c.execute(batch)
		case <-c.Context.Done():
			c.drain(batch[:0])
			return
		}
	}
}

// collect detaches the entire pending batch from the queue without
// blocking, so execution never holds the queue seam.
func (c *Core) collect(batch []Action, first Action) []Action {
	batch = append(batch, first)
	for {
		select {
		case act, ok := <-c.dispatch:
			if !ok {
				return batch
			}
			batch = append(batch, act)
		default:
			return batch
		}
	}
}

// drain executes whatever was enqueued before shutdown won the select.
func (c *Core) drain(batch []Action) {
	for {
		select {
		case act, ok := <-c.dispatch:
			if !ok {
				return
			}
			batch = c.collect(batch[:0], act)
			c.execute(batch)
		default:
			return
		}
	}
}

// execute applies a batch strictly in enqueue order. A failing action is
// absorbed and logged so that it cannot block the actions queued behind it.
func (c *Core) execute(batch []Action) {
	perf.BatchSize.Add(float64(len(batch)))
	for _, act := range batch {
		start := time.Now()
		err := act(c)
		perf.ActionsPerSecond.Add(1)
		if err != nil {
			perf.ActionErrors.Add(1)
			c.Log.Warn("action failed", "fun", funcName(act), "error", err)
		}
		elapsed := time.Since(start)
		perf.DispatchLatency.Add(float64(elapsed.Microseconds()))
		if elapsed > state.SlowActionThreshold {
			c.Log.Warn("action took a long time!", "fun", funcName(act), "elapsed", elapsed, "len", len(c.dispatch))
		}
	}
}

func funcName(act Action) string {
	return runtime.FuncForPC(reflect.ValueOf(act).Pointer()).Name()
}
