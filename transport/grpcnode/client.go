// Package grpcnode implements transport.Node over a gRPC service, plus the
// server glue to expose any transport.Node on a gRPC listener.
package grpcnode

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"lumenlab.io/lumen/transport"
)

// Client implements transport.Node over the Node gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client NodeClient

	// Timeout applies per RPC when non-zero, on top of the caller's ctx.
	Timeout time.Duration
}

var _ transport.Node = (*Client)(nil)

type DialOptions struct {
	// Timeout applies per RPC when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}
	cc, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewNodeClient(cc), Timeout: opts.Timeout}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Simulate(ctx context.Context, operationXDR []byte) (*transport.SimulationResult, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Simulate(ctx, wrapperspb.Bytes(operationXDR))
	if err != nil {
		return nil, mapRPC(err)
	}
	return transport.DecodeSimulationResult(reply.GetValue())
}

func (c *Client) Submit(ctx context.Context, envelopeXDR []byte) ([]byte, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Submit(ctx, wrapperspb.Bytes(envelopeXDR))
	if err != nil {
		return nil, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) Status(ctx context.Context, txHash []byte) (*transport.TxStatus, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.Status(ctx, wrapperspb.Bytes(txHash))
	if err != nil {
		return nil, mapRPC(err)
	}
	return transport.DecodeTxStatus(reply.GetValue())
}

func (c *Client) RestoreFootprint(ctx context.Context, ledgerKeys [][]byte) ([]byte, error) {
	keys, err := transport.EncodeKeyList(ledgerKeys)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()
	reply, err := c.client.RestoreFootprint(ctx, wrapperspb.Bytes(keys))
	if err != nil {
		return nil, mapRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
