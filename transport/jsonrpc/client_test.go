package jsonrpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumenlab.io/lumen/transport"
	"lumenlab.io/lumen/transport/testkit"
)

func TestClient_Conformance(t *testing.T) {
	testkit.RunNodeConformance(t, func(t *testing.T, backend *testkit.Node) transport.Node {
		srv := httptest.NewServer(NewHandler(backend))
		t.Cleanup(srv.Close)
		return NewClient(srv.URL, Options{})
	})
}

func TestClient_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, Options{})

	_, err := c.Simulate(context.Background(), []byte("op"))
	if !transport.IsTooManyRequests(err) {
		t.Fatalf("want too-many-requests, got %v", err)
	}
	var rpcErr *transport.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("diagnostics not carried: %v", err)
	}
	if rpcErr.Body == "" {
		t.Fatalf("raw body not carried")
	}
}

func TestClient_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, Options{})

	_, err := c.Status(context.Background(), []byte{1})
	if !transport.IsUnavailable(err) {
		t.Fatalf("5xx must count as unavailable, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() { close(block); srv.Close() })
	c := NewClient(srv.URL, Options{HTTPClient: &http.Client{Timeout: 50 * time.Millisecond}})

	_, err := c.Simulate(context.Background(), []byte("op"))
	if !transport.IsTimeout(err) {
		t.Fatalf("want request-timeout, got %v", err)
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() { close(block); srv.Close() })
	c := NewClient(srv.URL, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Simulate(ctx, []byte("op"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestClient_UnknownHashNotFound(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&testkit.Node{}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, Options{})

	_, err := c.Status(context.Background(), []byte{0xAA})
	if !transport.IsNotFound(err) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestClient_MalformedResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, Options{})

	_, err := c.Simulate(context.Background(), []byte("op"))
	var rpcErr *transport.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Body != "not json" {
		t.Fatalf("raw body not preserved for diagnostics: %v", err)
	}
}

func TestHandler_RejectsUnknownMethod(t *testing.T) {
	srv := httptest.NewServer(NewHandler(&testkit.Node{}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, Options{})

	err := c.call(context.Background(), "noSuchMethod", nil, nil)
	var rpcErr *transport.RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("want RPCError, got %v", err)
	}
	var jErr *Error
	if !errors.As(rpcErr.Err, &jErr) || jErr.Code != codeMethodNotFound {
		t.Fatalf("want method-not-found code, got %v", err)
	}
}
