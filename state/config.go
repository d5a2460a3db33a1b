package state

type RouterId string

// AddressCfg provisions one address in the routing table before any attach
// arrives. Provisioned addresses are protected from automatic deletion.
type AddressCfg struct {
	Prefix       string
	Scope        Scope     `yaml:",omitempty"`
	Distribution Semantics `yaml:",omitempty"`
}

// RouterCfg represents the local router configuration
type RouterCfg struct {
	Id RouterId
	// LogPath appends structured logs to a file in addition to stderr
	LogPath string `yaml:",omitempty"`
	// QueueDepth is the capacity of the core action queue. Zero selects
	// DefaultQueueDepth.
	QueueDepth int          `yaml:",omitempty"`
	Addresses  []AddressCfg `yaml:",omitempty"`
}

func (cfg *RouterCfg) Depth() int {
	if cfg.QueueDepth <= 0 {
		return DefaultQueueDepth
	}
	return cfg.QueueDepth
}
