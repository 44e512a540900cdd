package jsonrpc

import (
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lumenlab.io/lumen/transport"
	"lumenlab.io/lumen/transport/noderegistry"
)

var (
	flagEndpoint string
	flagTimeout  time.Duration
)

func init() {
	noderegistry.MustRegister(noderegistry.Backend{
		Name:        "jsonrpc",
		Description: "JSON-RPC 2.0 client (talks to a ledger RPC endpoint over HTTP)",
		Usage:       noderegistry.UsageCLI | noderegistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagEndpoint, "jsonrpc-endpoint", "", "RPC endpoint URL (for --node=jsonrpc)")
			fs.DurationVar(&flagTimeout, "jsonrpc-timeout", 30*time.Second, "Per-request timeout (for --node=jsonrpc)")
		},
		Open: func() (transport.Node, func() error, error) {
			endpoint := strings.TrimSpace(flagEndpoint)
			if endpoint == "" {
				return nil, nil, fmt.Errorf("missing --jsonrpc-endpoint")
			}
			client := NewClient(endpoint, Options{HTTPClient: &http.Client{Timeout: flagTimeout}})
			return client, nil, nil
		},
	})
}
