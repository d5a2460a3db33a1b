package core

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/ravenmq/raven/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPolicy struct {
	mu      sync.Mutex
	offered []string
	allow   bool
}

func (p *recordingPolicy) OfferAddress(c *Core, addr *Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.offered = append(p.offered, addr.Key())
	return p.allow
}

func (p *recordingPolicy) Offered() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.offered)
}

func shrinkSweeperDelays(t *testing.T, grace time.Duration) {
	t.Helper()
	oldGrace := state.AddrGraceTTL
	state.AddrGraceTTL = grace
	t.Cleanup(func() {
		state.AddrGraceTTL = oldGrace
	})
}

func (c *Core) hasAddress(t *testing.T, scope state.Scope, text string) bool {
	t.Helper()
	res, err := c.Env.DispatchWait(func(c *Core) (any, error) {
		return c.Address(scope, text) != nil, nil
	})
	require.NoError(t, err)
	return res.(bool)
}

func TestSweeper_RemovesIdleUnprotected(t *testing.T) {
	shrinkSweeperDelays(t, 30*time.Millisecond)
	policy := &recordingPolicy{allow: true}
	c := newTestCore(t, state.RouterCfg{}, WithDeletionPolicy(policy))
	c.Start()
	defer c.Stop()

	_, err := c.Env.DispatchWait(func(c *Core) (any, error) {
		addr, err := c.CreateOrFetchAddress(state.ScopeLocal, "/ephemeral", state.Closest)
		if err != nil {
			return nil, err
		}
		addr.SetProtected(false)
		return nil, nil
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return !c.hasAddress(t, state.ScopeLocal, "/ephemeral")
	}, 2*time.Second, 20*time.Millisecond, "idle unprotected address was never reaped")

	assert.Contains(t, policy.Offered(), "L/ephemeral")
}

func TestSweeper_SparesProtectedAndBusy(t *testing.T) {
	shrinkSweeperDelays(t, 30*time.Millisecond)
	policy := &recordingPolicy{allow: true}
	c := newTestCore(t, state.RouterCfg{}, WithDeletionPolicy(policy))
	c.Start()
	defer c.Stop()

	_, err := c.Env.DispatchWait(func(c *Core) (any, error) {
		// stays protected
		if _, err := c.CreateOrFetchAddress(state.ScopeLocal, "/pinned", state.Multicast); err != nil {
			return nil, err
		}
		// unprotected but has a forwarding target
		busy, err := c.CreateOrFetchAddress(state.ScopeLocal, "/busy", state.Multicast)
		if err != nil {
			return nil, err
		}
		busy.SetProtected(false)
		busy.Links().Add(&Link{Name: "consumer-1"})
		return nil, nil
	})
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)
	assert.True(t, c.hasAddress(t, state.ScopeLocal, "/pinned"))
	assert.True(t, c.hasAddress(t, state.ScopeLocal, "/busy"))
	assert.Empty(t, policy.Offered())
}

func TestSweeper_ResubscribeCancelsGrace(t *testing.T) {
	shrinkSweeperDelays(t, 500*time.Millisecond)
	policy := &recordingPolicy{allow: true}
	c := newTestCore(t, state.RouterCfg{}, WithDeletionPolicy(policy))
	c.Start()
	defer c.Stop()

	link := &Link{Name: "returning-consumer"}
	_, err := c.Env.DispatchWait(func(c *Core) (any, error) {
		addr, err := c.CreateOrFetchAddress(state.ScopeLocal, "/flappy", state.Balanced)
		if err != nil {
			return nil, err
		}
		addr.SetProtected(false)
		return nil, nil
	})
	require.NoError(t, err)

	// let the address enter the grace window, then resubscribe before it
	// expires
	time.Sleep(100 * time.Millisecond)
	_, err = c.Env.DispatchWait(func(c *Core) (any, error) {
		c.Address(state.ScopeLocal, "/flappy").Links().Add(link)
		return nil, nil
	})
	require.NoError(t, err)

	time.Sleep(time.Second)
	assert.True(t, c.hasAddress(t, state.ScopeLocal, "/flappy"))
	assert.Empty(t, policy.Offered())
}

func TestSweeper_PolicyCanVeto(t *testing.T) {
	shrinkSweeperDelays(t, 30*time.Millisecond)
	policy := &recordingPolicy{allow: false}
	c := newTestCore(t, state.RouterCfg{}, WithDeletionPolicy(policy))
	c.Start()
	defer c.Stop()

	_, err := c.Env.DispatchWait(func(c *Core) (any, error) {
		addr, err := c.CreateOrFetchAddress(state.ScopeLocal, "/kept", state.Closest)
		if err != nil {
			return nil, err
		}
		addr.SetProtected(false)
		return nil, nil
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(policy.Offered()) > 0
	}, 2*time.Second, 20*time.Millisecond, "policy was never consulted")
	assert.True(t, c.hasAddress(t, state.ScopeLocal, "/kept"))
}
