package core

import (
	"fmt"
	"time"

	"github.com/ravenmq/raven/state"
)

// Dispatch queues the action to run on the core goroutine without waiting
// for it to complete. This is the only sanctioned way to touch routing
// state from outside the core goroutine. Actions submitted after shutdown
// has begun are dropped; actions that made it into the queue before are
// still executed.
func (e *Env) Dispatch(act Action) {
	defer func() {
		if r := recover(); r != nil {
			e.Cancel(fmt.Errorf("panic: %v", r))
		}
	}()
	select {
	case e.DispatchChannel <- act:
	case <-e.Context.Done():
	}
}

// DispatchWait queues the action and waits for its result. Producers that
// need completion status get it through the response channel; nothing is
// reported back synchronously otherwise.
func (e *Env) DispatchWait(act func(c *Core) (any, error)) (any, error) {
	ret := make(chan state.Pair[any, error], 1)
	e.Dispatch(func(c *Core) error {
		res, err := act(c)
		ret <- state.Pair[any, error]{V1: res, V2: err}
		return err
	})
	select {
	case res := <-ret:
		return res.V1, res.V2
	case <-e.Context.Done():
		return nil, e.Context.Err()
	}
}

func (e *Env) ScheduleTask(act Action, delay time.Duration) {
	time.AfterFunc(delay, func() {
		if e.Context.Err() == nil {
			e.Dispatch(act)
		}
	})
}

func (e *Env) repeatedTask(act Action, delay time.Duration) {
	for e.Context.Err() == nil {
		e.Dispatch(act)
		time.Sleep(delay)
	}
}

func (e *Env) RepeatTask(act Action, delay time.Duration) {
	go e.repeatedTask(act, delay)
}
