package core

import (
	"github.com/ravenmq/raven/buffer"
	"github.com/ravenmq/raven/state"
)

// Forwarder decides how a message addressed to an address reaches its
// targets. The core stores the policy on the address and invokes it; the
// pattern-matching and distribution machinery behind richer policies lives
// in a collaborator.
type Forwarder interface {
	// Forward runs on the core goroutine and reports how many deliveries
	// it made.
	Forward(addr *Address, msg *buffer.Field) int
}

// ForwarderResolver maps a semantics tag to its policy object. Resolution
// happens once, when the address is created.
type ForwarderResolver func(m state.Semantics) Forwarder

// ForwarderRegistry is the default resolver: a fixed semantics→forwarder
// table with multicast as the fallback for tags it does not know.
type ForwarderRegistry struct {
	table    map[state.Semantics]Forwarder
	fallback Forwarder
}

func DefaultForwarders() *ForwarderRegistry {
	fanout := multicastForwarder{}
	return &ForwarderRegistry{
		table: map[state.Semantics]Forwarder{
			state.Multicast: fanout,
			state.Closest:   closestForwarder{},
			state.Balanced:  balancedForwarder{},
		},
		fallback: fanout,
	}
}

func (r *ForwarderRegistry) Register(m state.Semantics, f Forwarder) {
	r.table[m] = f
}

func (r *ForwarderRegistry) Resolve(m state.Semantics) Forwarder {
	if f, ok := r.table[m]; ok {
		return f
	}
	return r.fallback
}

// multicastForwarder delivers a copy to every local target, in insertion
// order.
type multicastForwarder struct{}

func (multicastForwarder) Forward(addr *Address, msg *buffer.Field) int {
	n := 0
	for ref := addr.links.First(); ref != nil; ref = ref.Next() {
		if ref.Link().Deliver != nil {
			ref.Link().Deliver(msg)
			n++
		}
	}
	return n
}

// closestForwarder delivers to the first target only.
type closestForwarder struct{}

func (closestForwarder) Forward(addr *Address, msg *buffer.Field) int {
	ref := addr.links.First()
	if ref == nil || ref.Link().Deliver == nil {
		return 0
	}
	ref.Link().Deliver(msg)
	return 1
}

// balancedForwarder rotates through the targets, one per message.
type balancedForwarder struct{}

func (balancedForwarder) Forward(addr *Address, msg *buffer.Field) int {
	size := addr.links.Len()
	if size == 0 {
		return 0
	}
	skip := addr.turn % size
	addr.turn++
	ref := addr.links.First()
	for ; skip > 0; skip-- {
		ref = ref.Next()
	}
	if ref.Link().Deliver == nil {
		return 0
	}
	ref.Link().Deliver(msg)
	return 1
}
