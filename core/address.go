package core

import (
	"github.com/ravenmq/raven/perf"
	"github.com/ravenmq/raven/state"
)

// Address represents one routable address in the table. It is created on
// first reference to its key and owned by the core goroutine from then on.
type Address struct {
	key       string
	text      string
	scope     state.Scope
	semantics state.Semantics
	forwarder Forwarder

	// protected addresses are never removed by the sweeper
	protected bool

	links LinkRefList
	nodes NodeRefList

	// turn is iteration state owned by the balanced forwarder
	turn int
}

func (a *Address) Key() string                { return a.key }
func (a *Address) Text() string               { return a.text }
func (a *Address) Scope() state.Scope         { return a.scope }
func (a *Address) Semantics() state.Semantics { return a.semantics }
func (a *Address) Forwarder() Forwarder       { return a.forwarder }
func (a *Address) Links() *LinkRefList        { return &a.links }
func (a *Address) Nodes() *NodeRefList        { return &a.nodes }
func (a *Address) Protected() bool            { return a.protected }

// SetProtected is the seam the attach/management layer uses to release a
// provisioned address for automatic deletion, or pin a dynamic one.
func (a *Address) SetProtected(v bool) { a.protected = v }

// Idle reports whether the address has no forwarding targets left.
func (a *Address) Idle() bool {
	return a.links.Len() == 0 && a.nodes.Len() == 0
}

// AddressKey builds the table key: one scope marker byte prepended to the
// literal text, so identical text in different scopes never aliases.
func AddressKey(scope state.Scope, text string) (string, error) {
	marker, err := scope.Marker()
	if err != nil {
		return "", err
	}
	return string(marker) + text, nil
}

// CreateOrFetchAddress looks the address up by its scoped key, creating it
// on first reference. On a hit the passed-in semantics is ignored: the
// first writer wins. Must only be called on the core goroutine; everyone
// else submits an action.
func (c *Core) CreateOrFetchAddress(scope state.Scope, text string, semantics state.Semantics) (*Address, error) {
	key, err := AddressKey(scope, text)
	if err != nil {
		return nil, err
	}
	if addr, ok := c.addrHash[key]; ok {
		return addr, nil
	}
	addr := &Address{
		key:       key,
		text:      text,
		scope:     scope,
		semantics: semantics,
		forwarder: c.resolve(semantics),
		protected: true,
	}
	c.addrHash[key] = addr
	c.addrs = append(c.addrs, addr)
	perf.AddressCount.Add(1)
	if state.DBG_log_core {
		c.Log.Debug("created address", "key", key, "semantics", semantics)
	}
	return addr, nil
}

// Address fetches without creating. Returns nil when the key is absent or
// the scope is unknown.
func (c *Core) Address(scope state.Scope, text string) *Address {
	key, err := AddressKey(scope, text)
	if err != nil {
		return nil
	}
	return c.addrHash[key]
}

// Addresses yields the table in insertion order.
func (c *Core) Addresses() []*Address {
	return c.addrs
}

// removeAddress drops the address from the hash and the ordered list. Core
// goroutine only; reached through the sweeper.
func (c *Core) removeAddress(addr *Address) {
	if _, ok := c.addrHash[addr.key]; !ok {
		return
	}
	delete(c.addrHash, addr.key)
	for i, a := range c.addrs {
		if a == addr {
			c.addrs = append(c.addrs[:i], c.addrs[i+1:]...)
			break
		}
	}
	perf.AddressCount.Add(-1)
	if state.DBG_log_core {
		c.Log.Debug("removed address", "key", addr.key)
	}
}
