package nodeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"lumenlab.io/lumen/transport"
	"lumenlab.io/lumen/transport/noderegistry"
)

// Config describes how to open one or more node backends via noderegistry.
//
// This provides config-driven runtime backend selection. Callers still need
// to link desired backend plugins via blank imports.
//
// SubmitPolicy values:
// - "first" (default): submit only to the first node; reads fall back in order
// - "all": submit to all nodes and require hash equality (see transport.Broadcast)
//
// Example:
//
//	{
//	  "submit_policy": "all",
//	  "nodes": [
//	    {"name":"jsonrpc", "id":"primary", "config":{"jsonrpc-endpoint":"http://localhost:8000"}},
//	    {"name":"grpc", "config":{"grpc-target":"localhost:9000"}}
//	  ]
//	}
//
// Note: Config values are backend-specific; keys mirror the backend's CLI
// flag names.
type Config struct {
	SubmitPolicy string          `json:"submit_policy,omitempty"`
	Nodes        []BackendConfig `json:"nodes"`
}

type BackendConfig struct {
	// Name is the noderegistry backend name to open (e.g. "jsonrpc", "grpc").
	Name string `json:"name"`
	// ID is an optional stable alias used for per-endpoint reporting.
	// If empty, Name is used.
	ID     string            `json:"id,omitempty"`
	Config map[string]string `json:"config,omitempty"`
}

func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, errors.New("nodeconfig: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if len(c.Nodes) == 0 {
		return errors.New("nodeconfig: at least one node is required")
	}
	seen := make(map[string]struct{}, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.Name == "" {
			return errors.New("nodeconfig: node name is required")
		}
		id := n.Name
		if n.ID != "" {
			id = n.ID
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("nodeconfig: duplicate node id %q", id)
		}
		seen[id] = struct{}{}
	}
	switch c.SubmitPolicy {
	case "", "first", "all":
		return nil
	default:
		return fmt.Errorf("nodeconfig: invalid submit_policy %q", c.SubmitPolicy)
	}
}

// Open opens a transport.Node per config.
//
// If preferred is non-empty, nodes are reordered so that node comes first
// (and thus receives submissions when SubmitPolicy=="first").
func (c Config) Open(usage noderegistry.Usage, preferred string) (transport.Node, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	ordered := append([]BackendConfig(nil), c.Nodes...)
	if preferred != "" {
		idx := -1
		for i := range ordered {
			if ordered[i].Name == preferred || ordered[i].ID == preferred {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, fmt.Errorf("nodeconfig: preferred node %q not found in config", preferred)
		}
		if idx != 0 {
			n := ordered[idx]
			copy(ordered[1:idx+1], ordered[0:idx])
			ordered[0] = n
		}
	}

	named := make([]transport.NamedNode, 0, len(ordered))
	closers := make([]func() error, 0, len(ordered))
	for _, n := range ordered {
		node, closeFn, err := noderegistry.OpenWithConfig(n.Name, usage, n.Config)
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				_ = closers[i]()
			}
			return nil, nil, err
		}
		name := n.Name
		if n.ID != "" {
			name = n.ID
		}
		named = append(named, transport.NamedNode{Name: name, Node: node})
		if closeFn != nil {
			closers = append(closers, closeFn)
		}
	}

	closeAll := func() error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	if len(named) == 1 {
		return named[0].Node, closeAll, nil
	}

	switch c.SubmitPolicy {
	case "", "first":
		nodes := make([]transport.Node, 0, len(named))
		for _, n := range named {
			nodes = append(nodes, n.Node)
		}
		return transport.Failover{Nodes: nodes}, closeAll, nil
	case "all":
		return transport.Broadcast{Nodes: named}, closeAll, nil
	default:
		return nil, nil, fmt.Errorf("nodeconfig: invalid submit_policy %q", c.SubmitPolicy)
	}
}
