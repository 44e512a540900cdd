// Package jsonrpc implements transport.Node over JSON-RPC 2.0 on HTTP.
//
// XDR payloads travel base64-encoded; transaction hashes travel hex-encoded.
// The client is safe for concurrent use: every in-flight invocation shares
// one pooled http.Client.
package jsonrpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"lumenlab.io/lumen/transport"
)

// RPC method names served by a ledger endpoint.
const (
	methodSimulate = "simulateTransaction"
	methodSend     = "sendTransaction"
	methodGetTx    = "getTransaction"
	methodRestore  = "restoreFootprint"
)

// JSON-RPC error codes with transport-level meaning.
const (
	codeTxNotFound = -31404
)

const defaultTimeout = 30 * time.Second

// Client is a JSON-RPC 2.0 ledger endpoint client.
type Client struct {
	endpoint   string
	httpClient *http.Client
	idCounter  atomic.Uint64
	log        zerolog.Logger
}

var _ transport.Node = (*Client)(nil)

// Options tunes a Client. The zero value is usable.
type Options struct {
	// HTTPClient overrides the default pooled client with a 30s timeout.
	HTTPClient *http.Client

	// Logger receives per-request events. The zero Logger discards them.
	Logger zerolog.Logger
}

// NewClient returns a client for the given endpoint URL.
func NewClient(endpoint string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{endpoint: endpoint, httpClient: hc, log: opts.Logger}
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      uint64 `json:"id"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      uint64          `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc: code %d: %s", e.Code, e.Message)
}

func (c *Client) Simulate(ctx context.Context, operationXDR []byte) (*transport.SimulationResult, error) {
	var res simulateResult
	params := simulateParams{OperationXDR: base64.StdEncoding.EncodeToString(operationXDR)}
	if err := c.call(ctx, methodSimulate, params, &res); err != nil {
		return nil, err
	}
	return res.toTransport()
}

func (c *Client) Submit(ctx context.Context, envelopeXDR []byte) ([]byte, error) {
	var res sendResult
	params := sendParams{TransactionXDR: base64.StdEncoding.EncodeToString(envelopeXDR)}
	if err := c.call(ctx, methodSend, params, &res); err != nil {
		return nil, err
	}
	hash, err := hex.DecodeString(res.Hash)
	if err != nil {
		return nil, &transport.RPCError{Body: res.Hash, Err: fmt.Errorf("jsonrpc: malformed transaction hash: %w", err)}
	}
	return hash, nil
}

func (c *Client) Status(ctx context.Context, txHash []byte) (*transport.TxStatus, error) {
	var res getTxResult
	params := getTxParams{Hash: hex.EncodeToString(txHash)}
	if err := c.call(ctx, methodGetTx, params, &res); err != nil {
		return nil, err
	}
	return res.toTransport()
}

func (c *Client) RestoreFootprint(ctx context.Context, ledgerKeys [][]byte) ([]byte, error) {
	params := restoreParams{Keys: encodeKeys(ledgerKeys)}
	var res restoreResult
	if err := c.call(ctx, methodRestore, params, &res); err != nil {
		return nil, err
	}
	op, err := base64.StdEncoding.DecodeString(res.OperationXDR)
	if err != nil {
		return nil, &transport.RPCError{Body: res.OperationXDR, Err: fmt.Errorf("jsonrpc: malformed restoration operation: %w", err)}
	}
	return op, nil
}

// call performs one JSON-RPC round trip and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	id := c.idCounter.Add(1)
	body, err := json.Marshal(request{JSONRPC: "2.0", Method: method, Params: params, ID: id})
	if err != nil {
		return fmt.Errorf("jsonrpc: marshal %s request: %w", method, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("jsonrpc: build %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransportFailure(method, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return classifyTransportFailure(method, err)
	}
	c.log.Debug().
		Str("method", method).
		Int("status", httpResp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("rpc call")

	if httpResp.StatusCode != http.StatusOK {
		return httpStatusError(method, httpResp.StatusCode, respBody)
	}
	var resp response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return &transport.RPCError{
			StatusCode: httpResp.StatusCode,
			Body:       string(respBody),
			Err:        fmt.Errorf("jsonrpc: unmarshal %s response: %w", method, err),
		}
	}
	if resp.Error != nil {
		return rpcError(method, resp.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return &transport.RPCError{
			StatusCode: httpResp.StatusCode,
			Body:       string(respBody),
			Err:        fmt.Errorf("jsonrpc: unmarshal %s result: %w", method, err),
		}
	}
	return nil
}

// classifyTransportFailure maps connection-level failures onto the
// transport error taxonomy so callers can branch without inspecting
// net internals.
func classifyTransportFailure(method string, err error) error {
	cause := fmt.Errorf("jsonrpc: %s: %w", method, err)
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &transport.RPCError{Err: fmt.Errorf("%w: %v", transport.ErrRequestTimeout, cause)}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return &transport.RPCError{Err: cause}
}

func httpStatusError(method string, status int, body []byte) error {
	switch status {
	case http.StatusTooManyRequests:
		return &transport.RPCError{
			StatusCode: status,
			Body:       string(body),
			Err:        fmt.Errorf("%w: jsonrpc: %s", transport.ErrTooManyRequests, method),
		}
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return &transport.RPCError{
			StatusCode: status,
			Body:       string(body),
			Err:        fmt.Errorf("%w: jsonrpc: %s", transport.ErrRequestTimeout, method),
		}
	}
	return &transport.RPCError{
		StatusCode: status,
		Body:       string(body),
		Err:        fmt.Errorf("jsonrpc: %s: unexpected HTTP status %d", method, status),
	}
}

func rpcError(method string, e *Error) error {
	if e.Code == codeTxNotFound {
		return &transport.RPCError{Body: e.Message, Err: fmt.Errorf("%w: jsonrpc: %s", transport.ErrNotFound, method)}
	}
	return &transport.RPCError{Body: e.Data, Err: fmt.Errorf("jsonrpc: %s: %w", method, e)}
}
