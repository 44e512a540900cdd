package grpcnode

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"lumenlab.io/lumen/transport"
	"lumenlab.io/lumen/transport/noderegistry"
)

var (
	flagTarget      string
	flagTimeout     time.Duration
	flagMaxMsgBytes int
)

func init() {
	noderegistry.MustRegister(noderegistry.Backend{
		Name:        "grpc",
		Description: "gRPC node client (talks to a Node gRPC daemon, e.g. lumen-mocknoded)",
		Usage:       noderegistry.UsageCLI | noderegistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagTarget, "grpc-target", "", "gRPC target host:port (for --node=grpc)")
			fs.DurationVar(&flagTimeout, "grpc-timeout", 0, "Per-RPC timeout (for --node=grpc)")
			fs.IntVar(&flagMaxMsgBytes, "grpc-max-msg-bytes", 0, "Max gRPC message size in bytes (send+recv); 0 uses grpc defaults")
		},
		Open: func() (transport.Node, func() error, error) {
			target := strings.TrimSpace(flagTarget)
			if target == "" {
				return nil, nil, fmt.Errorf("missing --grpc-target")
			}
			client, err := Dial(target, DialOptions{Timeout: flagTimeout, MaxMsgBytes: flagMaxMsgBytes})
			if err != nil {
				return nil, nil, err
			}
			return client, client.Close, nil
		},
	})
}
