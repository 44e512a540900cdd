package jsonrpc

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"lumenlab.io/lumen/transport"
)

// Standard JSON-RPC 2.0 error codes used by the handler.
const (
	codeParse          = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
)

// Handler serves the JSON-RPC method set over any transport.Node, so a
// local or mock node can be exposed to clients of this package.
type Handler struct {
	node transport.Node
}

// NewHandler wraps node in an http.Handler.
func NewHandler(node transport.Node) *Handler {
	return &Handler{node: node}
}

var _ http.Handler = (*Handler)(nil)

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
		ID      uint64          `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, 0, nil, &Error{Code: codeParse, Message: err.Error()})
		return
	}
	if req.JSONRPC != "2.0" {
		writeResponse(w, req.ID, nil, &Error{Code: codeInvalidRequest, Message: "jsonrpc must be 2.0"})
		return
	}
	result, rpcErr := h.dispatch(r, req.Method, req.Params)
	writeResponse(w, req.ID, result, rpcErr)
}

func (h *Handler) dispatch(r *http.Request, method string, params json.RawMessage) (any, *Error) {
	switch method {
	case methodSimulate:
		return h.simulate(r, params)
	case methodSend:
		return h.send(r, params)
	case methodGetTx:
		return h.getTx(r, params)
	case methodRestore:
		return h.restore(r, params)
	}
	return nil, &Error{Code: codeMethodNotFound, Message: fmt.Sprintf("unknown method %q", method)}
}

func (h *Handler) simulate(r *http.Request, params json.RawMessage) (any, *Error) {
	var p simulateParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}
	op, err := base64.StdEncoding.DecodeString(p.OperationXDR)
	if err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: "operationXdr is not base64"}
	}
	sim, err := h.node.Simulate(r.Context(), op)
	if err != nil {
		return nil, nodeError(err)
	}
	return simulateResultFrom(sim), nil
}

func (h *Handler) send(r *http.Request, params json.RawMessage) (any, *Error) {
	var p sendParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}
	env, err := base64.StdEncoding.DecodeString(p.TransactionXDR)
	if err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: "transactionXdr is not base64"}
	}
	hash, err := h.node.Submit(r.Context(), env)
	if err != nil {
		return nil, nodeError(err)
	}
	return sendResult{Hash: hex.EncodeToString(hash)}, nil
}

func (h *Handler) getTx(r *http.Request, params json.RawMessage) (any, *Error) {
	var p getTxParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}
	hash, err := hex.DecodeString(p.Hash)
	if err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: "hash is not hex"}
	}
	status, err := h.node.Status(r.Context(), hash)
	if err != nil {
		return nil, nodeError(err)
	}
	return getTxResultFrom(status), nil
}

func (h *Handler) restore(r *http.Request, params json.RawMessage) (any, *Error) {
	var p restoreParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}
	keys, err := decodeKeys(p.Keys)
	if err != nil {
		return nil, &Error{Code: codeInvalidParams, Message: err.Error()}
	}
	op, err := h.node.RestoreFootprint(r.Context(), keys)
	if err != nil {
		return nil, nodeError(err)
	}
	return restoreResult{OperationXDR: base64.StdEncoding.EncodeToString(op)}, nil
}

func nodeError(err error) *Error {
	if transport.IsNotFound(err) {
		return &Error{Code: codeTxNotFound, Message: err.Error()}
	}
	return &Error{Code: codeInternal, Message: err.Error()}
}

func writeResponse(w http.ResponseWriter, id uint64, result any, rpcErr *Error) {
	resp := response{JSONRPC: "2.0", ID: id, Error: rpcErr}
	if rpcErr == nil {
		raw, err := json.Marshal(result)
		if err != nil {
			resp.Error = &Error{Code: codeInternal, Message: err.Error()}
		} else {
			resp.Result = raw
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		// Connection gone; nothing sensible left to do.
		return
	}
}
