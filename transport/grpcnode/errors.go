package grpcnode

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"lumenlab.io/lumen/transport"
)

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return transport.ErrNotFound
	case codes.ResourceExhausted:
		return &transport.RPCError{Body: st.Message(), Err: transport.ErrTooManyRequests}
	case codes.DeadlineExceeded:
		return &transport.RPCError{Body: st.Message(), Err: transport.ErrRequestTimeout}
	case codes.Unavailable:
		return &transport.RPCError{Body: st.Message(), Err: transport.ErrRequestTimeout}
	default:
		return err
	}
}

func mapNodeError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case transport.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case transport.IsTooManyRequests(err):
		return status.Error(codes.ResourceExhausted, err.Error())
	case transport.IsTimeout(err):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
