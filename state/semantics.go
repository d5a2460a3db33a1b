package state

import "fmt"

// Semantics selects the distribution policy resolved for an address when it
// is first created. Later creators of the same address do not get to change
// it (first writer wins).
type Semantics string

const (
	// Multicast delivers a copy of each message to every forwarding target.
	Multicast Semantics = "multicast"
	// Closest delivers each message to the first reachable target, in
	// insertion order.
	Closest Semantics = "closest"
	// Balanced spreads messages across targets, one target per message.
	Balanced Semantics = "balanced"
)

func (m Semantics) Valid() error {
	switch m {
	case Multicast, Closest, Balanced:
		return nil
	}
	return fmt.Errorf("unknown distribution semantics %q", string(m))
}

// Scope partitions the address key space. Two addresses with identical
// literal text but different scopes never alias, because the scope marker
// byte is prepended to the text before it is hashed.
type Scope string

const (
	ScopeLocal       Scope = "local"
	ScopeTopological Scope = "topological"
	ScopeArea        Scope = "area"
	ScopeRouter      Scope = "router"
)

// Marker returns the single byte prepended to the address text to form its
// table key. The empty scope defaults to local.
func (sc Scope) Marker() (byte, error) {
	switch sc {
	case ScopeLocal, "":
		return 'L', nil
	case ScopeTopological:
		return 'T', nil
	case ScopeArea:
		return 'A', nil
	case ScopeRouter:
		return 'R', nil
	}
	return 0, fmt.Errorf("unknown address scope %q", string(sc))
}
