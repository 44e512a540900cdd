// Command lumen-mocknoded serves the gRPC node protocol over an in-memory
// mock ledger. It exists for local SDK development: every submission is
// acknowledged and immediately reported as succeeded (or failed with --fail).
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"lumenlab.io/lumen/transport"
	"lumenlab.io/lumen/transport/grpcnode"
	"lumenlab.io/lumen/transport/testkit"
)

func main() {
	fs := flag.NewFlagSet("lumen-mocknoded", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7788", "listen address")
	minFee := fs.Uint64("min-fee", 100, "Minimum resource fee every simulation reports")
	ledger := fs.Uint("ledger", 1000, "Ledger sequence simulations and results report")
	fail := fs.Bool("fail", false, "Report every transaction as failed on-ledger")

	_ = fs.Parse(os.Args[1:])

	state := transport.TxSuccess
	if *fail {
		state = transport.TxFailed
	}
	node := &testkit.Node{
		Simulations: []*transport.SimulationResult{{
			MinResourceFee: *minFee,
			LatestLedger:   uint32(*ledger),
		}},
		DefaultStatus: &transport.TxStatus{State: state, Ledger: uint32(*ledger)},
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcnode.RegisterNodeServer(s, &grpcnode.Server{Node: node})

	fmt.Fprintf(os.Stderr, "lumen-mocknoded listening on %s\n", lis.Addr().String())
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
