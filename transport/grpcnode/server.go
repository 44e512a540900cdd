package grpcnode

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"lumenlab.io/lumen/transport"
)

// Server exposes a transport.Node over the Node gRPC service.
type Server struct {
	UnimplementedNodeServer
	Node transport.Node
}

func (s *Server) Simulate(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	sim, err := s.Node.Simulate(ctx, in.GetValue())
	if err != nil {
		return nil, mapNodeError(err)
	}
	raw, err := transport.EncodeSimulationResult(sim)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(raw), nil
}

func (s *Server) Submit(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	hash, err := s.Node.Submit(ctx, in.GetValue())
	if err != nil {
		return nil, mapNodeError(err)
	}
	return wrapperspb.Bytes(hash), nil
}

func (s *Server) Status(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	st, err := s.Node.Status(ctx, in.GetValue())
	if err != nil {
		return nil, mapNodeError(err)
	}
	raw, err := transport.EncodeTxStatus(st)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(raw), nil
}

func (s *Server) RestoreFootprint(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Node == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing node")
	}
	keys, err := transport.DecodeKeyList(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	op, err := s.Node.RestoreFootprint(ctx, keys)
	if err != nil {
		return nil, mapNodeError(err)
	}
	return wrapperspb.Bytes(op), nil
}
