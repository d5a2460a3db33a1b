package core

import (
	"context"

	"github.com/jellydator/ttlcache/v3"
	"github.com/ravenmq/raven/state"
)

// DeletionPolicy is consulted before the sweeper removes an address whose
// reference sets have stayed empty past the grace window. The policy is a
// collaborator: the core never decides deletion on its own.
type DeletionPolicy interface {
	// OfferAddress runs on the core goroutine; returning true deletes the
	// address.
	OfferAddress(c *Core, addr *Address) bool
}

// DeleteWhenIdle is the default policy: idle, unprotected addresses go.
type DeleteWhenIdle struct{}

func (DeleteWhenIdle) OfferAddress(c *Core, addr *Address) bool { return true }

func (c *Core) initSweeper() {
	c.grace = ttlcache.New[string, struct{}](
		ttlcache.WithTTL[string, struct{}](state.AddrGraceTTL),
		ttlcache.WithDisableTouchOnHit[string, struct{}](),
	)
	c.grace.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, struct{}]) {
		if reason != ttlcache.EvictionReasonExpired {
			return
		}
		// runs on the cache goroutine, so go back through the queue
		key := item.Key()
		c.Env.Dispatch(func(c *Core) error {
			return c.reapAddress(key)
		})
	})
}

// sweepAddresses scans the table for addresses with no forwarding targets
// left. An idle address first sits out the grace window in the TTL cache;
// only if it is still idle when the entry expires is the deletion policy
// consulted. Addresses that pick up a target again are pulled back out.
func sweepAddresses(c *Core) error {
	for _, addr := range c.addrs {
		if addr.Protected() || !addr.Idle() {
			c.grace.Delete(addr.key)
			continue
		}
		if !c.grace.Has(addr.key) {
			if state.DBG_log_sweeper {
				c.Log.Debug("address entered deletion grace", "key", addr.key)
			}
			c.grace.Set(addr.key, struct{}{}, ttlcache.DefaultTTL)
		}
	}
	return nil
}

func (c *Core) reapAddress(key string) error {
	addr, ok := c.addrHash[key]
	if !ok || addr.Protected() || !addr.Idle() {
		return nil // stale offer, absorbed
	}
	if c.deletion.OfferAddress(c, addr) {
		c.removeAddress(addr)
	}
	return nil
}
