package state

import "time"

const (
	// DefaultQueueDepth is the action queue capacity when the config does
	// not override it.
	DefaultQueueDepth = 128
)

var (
	// SweeperDelay is how often the core scans for deletable addresses.
	SweeperDelay = time.Second * 1
	// AddrGraceTTL is how long an address must stay empty and unprotected
	// before the deletion policy is consulted. Resubscribing within the
	// grace window cancels the sweep.
	AddrGraceTTL = time.Second * 5
	// SlowActionThreshold flags actions that stall the core goroutine.
	SlowActionThreshold = time.Millisecond * 4

	DBG_log_core    = false
	DBG_log_sweeper = false
)
