// Package invoke drives a contract call through its full lifecycle: build,
// simulate, restore archived state, collect authorization signatures, sign,
// submit and await finality.
//
// Each Invocation owns all of its per-call state; nothing is shared between
// concurrent invocations except the transport, which must be safe for
// concurrent use. An Invocation itself is not safe for concurrent use.
package invoke

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"lumenlab.io/lumen/crypto"
	"lumenlab.io/lumen/keypair"
	"lumenlab.io/lumen/transport"
)

// State is the lifecycle position of an Invocation.
type State int32

const (
	StateBuilt State = iota
	StateSimulated
	StateRestorationRequired
	StateAwaitingAuthSignatures
	StateSigned
	StateSubmitted
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "Built"
	case StateSimulated:
		return "Simulated"
	case StateRestorationRequired:
		return "RestorationRequired"
	case StateAwaitingAuthSignatures:
		return "AwaitingAuthSignatures"
	case StateSigned:
		return "Signed"
	case StateSubmitted:
		return "Submitted"
	case StateComplete:
		return "Complete"
	case StateFailed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Invocation is a single contract call moving through the lifecycle.
type Invocation struct {
	node    transport.Node
	signer  crypto.Signer
	network Network
	source  *keypair.KeyPair
	opts    Options

	op    Operation
	opXDR []byte
	seq   uint64

	state    State
	sim      *transport.SimulationResult
	auth     []SignedAuthEntry
	envelope *Envelope
	txHash   []byte
	result   *transport.TxStatus
	restored bool
}

// New builds an Invocation in the Built state. No network traffic happens
// until Simulate. If op.Source is empty it is filled from source; if set, it
// must match source's address.
func New(node transport.Node, signer crypto.Signer, network Network, source *keypair.KeyPair, op Operation, opts Options) (*Invocation, error) {
	if node == nil {
		return nil, newError(KindState, CodeBadTransition, "invoke: nil transport node")
	}
	if signer == nil {
		return nil, newError(KindState, CodeBadTransition, "invoke: nil crypto signer")
	}
	if source == nil {
		return nil, newError(KindState, CodeBadTransition, "invoke: nil source key pair")
	}
	if op.Source == "" {
		op.Source = source.Address()
	} else if op.Source != source.Address() {
		return nil, newError(KindAddress, CodeBadAddress,
			fmt.Sprintf("invoke: operation source %q does not match key pair %q", op.Source, source.Address()))
	}
	opXDR, err := op.Encode()
	if err != nil {
		return nil, err
	}
	return &Invocation{
		node:    node,
		signer:  signer,
		network: network,
		source:  source,
		opts:    opts.withDefaults(),
		op:      op,
		opXDR:   opXDR,
		seq:     opts.SequenceNumber,
		state:   StateBuilt,
	}, nil
}

// State returns the current lifecycle state.
func (inv *Invocation) State() State { return inv.state }

// Hash returns the network-assigned transaction hash, or nil before
// submission. It stays retrievable after a polling timeout so the caller
// can check finality independently.
func (inv *Invocation) Hash() []byte { return inv.txHash }

// Result returns the terminal transaction status, or nil before finality.
func (inv *Invocation) Result() *transport.TxStatus { return inv.result }

// Simulation returns the last simulation result, or nil before Simulate.
func (inv *Invocation) Simulation() *transport.SimulationResult { return inv.sim }

// AuthEntries returns the authorization entries in their current signing
// state. The slice is live; callers must not mutate it.
func (inv *Invocation) AuthEntries() []SignedAuthEntry { return inv.auth }

// Simulate runs the operation against the network's simulation endpoint
// and moves to Simulated (or AwaitingAuthSignatures when non-invoker
// signatures are required).
//
// Calling Simulate again from any state discards all downstream state,
// signatures included: the footprint or fee may have changed, so signatures
// never silently survive a re-simulation.
//
// When the result names archived ledger keys and AutoRestore is set, one
// restoration round-trip runs to completion before the re-simulation; a
// second restoration requirement fails with a restoration-failure error.
// Without AutoRestore the call fails immediately, naming the archived keys.
func (inv *Invocation) Simulate(ctx context.Context) (*transport.SimulationResult, error) {
	inv.restored = false
	return inv.simulate(ctx)
}

func (inv *Invocation) simulate(ctx context.Context) (*transport.SimulationResult, error) {
	inv.resetDownstream()
	sim, err := inv.node.Simulate(ctx, inv.opXDR)
	if err != nil {
		return nil, wrapError(KindTransport, CodeTransport, "invoke: simulation failed", err)
	}
	inv.sim = sim

	if len(sim.RestorePreamble) > 0 {
		if !inv.opts.AutoRestore {
			inv.setState(StateRestorationRequired)
			return nil, &Error{
				Kind:    KindRestore,
				Code:    CodeExpiredState,
				Message: fmt.Sprintf("invoke: %d archived ledger entries must be restored before invocation", len(sim.RestorePreamble)),
				Keys:    sim.RestorePreamble,
			}
		}
		if inv.restored {
			inv.setState(StateFailed)
			return nil, &Error{
				Kind:    KindRestore,
				Code:    CodeRestorationFailure,
				Message: "invoke: footprint did not stabilize after restoration",
				Keys:    sim.RestorePreamble,
			}
		}
		inv.setState(StateRestorationRequired)
		if err := inv.runRestoration(ctx, sim.RestorePreamble); err != nil {
			inv.setState(StateFailed)
			return nil, err
		}
		inv.restored = true
		return inv.simulate(ctx)
	}

	inv.auth = make([]SignedAuthEntry, 0, len(sim.Auth))
	for _, a := range sim.Auth {
		inv.auth = append(inv.auth, SignedAuthEntry{
			Signer:           a.Signer,
			Nonce:            a.Nonce,
			ExpirationLedger: a.ExpirationLedger,
		})
	}
	if len(inv.NeedsNonInvokerSigningBy()) > 0 {
		inv.setState(StateAwaitingAuthSignatures)
	} else {
		inv.setState(StateSimulated)
	}
	return sim, nil
}

// NeedsNonInvokerSigningBy returns the sorted set of signer addresses whose
// authorization entries are still unsigned, excluding the invoking source
// account: self-authorization is satisfied by the envelope signature.
func (inv *Invocation) NeedsNonInvokerSigningBy() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range inv.auth {
		e := &inv.auth[i]
		if e.Signed() || e.Signer == inv.op.Source || seen[e.Signer] {
			continue
		}
		seen[e.Signer] = true
		out = append(out, e.Signer)
	}
	sort.Strings(out)
	return out
}

// SignAuthEntries signs every pending authorization entry addressed to kp,
// binding each signature to validUntilLedger. It returns the number of
// entries signed.
func (inv *Invocation) SignAuthEntries(kp *keypair.KeyPair, validUntilLedger uint32) (int, error) {
	if inv.state != StateSimulated && inv.state != StateAwaitingAuthSignatures {
		return 0, newError(KindState, CodeBadTransition,
			fmt.Sprintf("invoke: cannot sign auth entries in state %s", inv.state))
	}
	if !kp.CanSign() {
		return 0, wrapError(KindAuth, CodeCannotSign,
			fmt.Sprintf("invoke: key pair %s holds no private key", kp.Address()), keypair.ErrCannotSign)
	}
	networkID := inv.network.ID(inv.signer)
	signed := 0
	for i := range inv.auth {
		e := &inv.auth[i]
		if e.Signed() || e.Signer != kp.Address() {
			continue
		}
		base, err := authSignatureBase(inv.signer, networkID, inv.opXDR, e, validUntilLedger)
		if err != nil {
			return signed, err
		}
		sig, err := kp.Sign(base)
		if err != nil {
			return signed, wrapError(KindAuth, CodeCannotSign, "invoke: sign auth entry", err)
		}
		e.Signature = sig
		e.SignatureExpiration = validUntilLedger
		signed++
	}
	return signed, nil
}

// Sign assembles the envelope and signs it with the source key pair.
//
// It fails with a needs-more-signatures error naming the unmet addresses if
// any non-invoker authorization entry is still pending. An invocation with
// no external signers goes straight from Simulated to Signed.
func (inv *Invocation) Sign() (*Envelope, error) {
	if inv.state != StateSimulated && inv.state != StateAwaitingAuthSignatures {
		return nil, newError(KindState, CodeBadTransition,
			fmt.Sprintf("invoke: cannot sign in state %s", inv.state))
	}
	if missing := inv.NeedsNonInvokerSigningBy(); len(missing) > 0 {
		return nil, &Error{
			Kind:    KindAuth,
			Code:    CodeNeedsMoreSignatures,
			Message: fmt.Sprintf("invoke: missing authorization signatures from %v", missing),
			Missing: missing,
		}
	}
	env := &Envelope{
		OperationXDR:   inv.opXDR,
		Fee:            inv.opts.BaseFee + inv.sim.MinResourceFee,
		SequenceNumber: inv.nextSequence(),
		Auth:           inv.auth,
	}
	if err := inv.signEnvelope(env); err != nil {
		return nil, err
	}
	inv.envelope = env
	inv.setState(StateSigned)
	return env, nil
}

// Submit sends the signed envelope and records the network-assigned hash.
// From Simulated or AwaitingAuthSignatures it signs first, so an unmet
// signer set surfaces here as needs-more-signatures too.
func (inv *Invocation) Submit(ctx context.Context) ([]byte, error) {
	switch inv.state {
	case StateSimulated, StateAwaitingAuthSignatures:
		if _, err := inv.Sign(); err != nil {
			return nil, err
		}
	case StateSigned:
	default:
		return nil, newError(KindState, CodeBadTransition,
			fmt.Sprintf("invoke: cannot submit in state %s", inv.state))
	}
	raw, err := inv.envelope.Encode()
	if err != nil {
		return nil, err
	}
	hash, err := inv.node.Submit(ctx, raw)
	if err != nil {
		return nil, wrapError(KindSubmit, CodeTransport, "invoke: submission failed", err)
	}
	inv.txHash = hash
	inv.setState(StateSubmitted)
	return hash, nil
}

// Await polls for finality at a fixed interval, bounded by MaxPollAttempts
// and PollTimeout. A terminal status moves the invocation to Complete or
// Failed. Exhausting the bounds while the transaction is still pending
// yields a submission-timeout error: not proof of failure, the transaction
// may still land, and Hash stays retrievable for a later manual check.
// Cancelling ctx stops polling but cannot retract the submission.
func (inv *Invocation) Await(ctx context.Context) (*transport.TxStatus, error) {
	if inv.state != StateSubmitted {
		return nil, newError(KindState, CodeBadTransition,
			fmt.Sprintf("invoke: cannot await finality in state %s", inv.state))
	}
	status, err := inv.poll(ctx, inv.txHash)
	if err != nil {
		return nil, err
	}
	inv.result = status
	if status.State == transport.TxSuccess {
		inv.setState(StateComplete)
	} else {
		inv.setState(StateFailed)
	}
	return status, nil
}

// Execute runs the whole lifecycle: Simulate, Sign, Submit, Await. It is a
// convenience for invocations with no external signers.
func (inv *Invocation) Execute(ctx context.Context) (*transport.TxStatus, error) {
	if _, err := inv.Simulate(ctx); err != nil {
		return nil, err
	}
	if _, err := inv.Submit(ctx); err != nil {
		return nil, err
	}
	return inv.Await(ctx)
}

// runRestoration submits a restoration transaction for the archived keys
// and waits for its finality. It runs fully to completion before the parent
// invocation resumes; the two submissions never interleave.
func (inv *Invocation) runRestoration(ctx context.Context, keys [][]byte) error {
	if !inv.source.CanSign() {
		return &Error{
			Kind:    KindRestore,
			Code:    CodeRestorationFailure,
			Message: "invoke: auto-restoration needs a signing source key pair",
			Keys:    keys,
			Cause:   keypair.ErrCannotSign,
		}
	}
	restoreOp, err := inv.node.RestoreFootprint(ctx, keys)
	if err != nil {
		return inv.restorationFailure("invoke: restore footprint request failed", keys, err)
	}
	sim, err := inv.node.Simulate(ctx, restoreOp)
	if err != nil {
		return inv.restorationFailure("invoke: restoration simulation failed", keys, err)
	}
	if len(sim.RestorePreamble) > 0 || len(sim.Auth) > 0 {
		return inv.restorationFailure("invoke: restoration operation is not self-contained", keys, nil)
	}
	env := &Envelope{
		OperationXDR:   restoreOp,
		Fee:            inv.opts.BaseFee + sim.MinResourceFee,
		SequenceNumber: inv.nextSequence(),
	}
	if err := inv.signEnvelope(env); err != nil {
		return inv.restorationFailure("invoke: sign restoration envelope", keys, err)
	}
	raw, err := env.Encode()
	if err != nil {
		return inv.restorationFailure("invoke: encode restoration envelope", keys, err)
	}
	hash, err := inv.node.Submit(ctx, raw)
	if err != nil {
		return inv.restorationFailure("invoke: submit restoration", keys, err)
	}
	inv.opts.Logger.Debug().Str("tx", hex.EncodeToString(hash)).Msg("restoration submitted")
	status, err := inv.poll(ctx, hash)
	if err != nil {
		return inv.restorationFailure("invoke: restoration did not reach finality", keys, err)
	}
	if status.State != transport.TxSuccess {
		return inv.restorationFailure("invoke: restoration transaction failed on ledger", keys, nil)
	}
	return nil
}

func (inv *Invocation) restorationFailure(msg string, keys [][]byte, cause error) error {
	return &Error{
		Kind:    KindRestore,
		Code:    CodeRestorationFailure,
		Message: msg,
		Keys:    keys,
		Cause:   cause,
	}
}

func (inv *Invocation) signEnvelope(env *Envelope) error {
	if !inv.source.CanSign() {
		return wrapError(KindAuth, CodeCannotSign,
			fmt.Sprintf("invoke: source key pair %s holds no private key", inv.source.Address()),
			keypair.ErrCannotSign)
	}
	base, err := env.SignatureBase(inv.signer, inv.network.ID(inv.signer))
	if err != nil {
		return err
	}
	sig, err := inv.source.Sign(base)
	if err != nil {
		return wrapError(KindAuth, CodeCannotSign, "invoke: sign envelope", err)
	}
	env.Signatures = append(env.Signatures, DecoratedSignature{Hint: inv.source.Hint(), Signature: sig})
	return nil
}

// poll checks Status until a terminal state, an error, or the configured
// bounds run out.
func (inv *Invocation) poll(ctx context.Context, txHash []byte) (*transport.TxStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, inv.opts.PollTimeout)
	defer cancel()
	for attempt := 0; attempt < inv.opts.MaxPollAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, inv.pollAbort(ctx, txHash)
			case <-time.After(inv.opts.PollInterval):
			}
		}
		status, err := inv.node.Status(ctx, txHash)
		if err != nil {
			if transport.IsNotFound(err) {
				// Not yet visible to this endpoint.
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, inv.pollAbort(ctx, txHash)
			}
			return nil, wrapError(KindTransport, CodeTransport, "invoke: finality poll failed", err)
		}
		if status.Terminal() {
			return status, nil
		}
	}
	return nil, inv.timeoutError(txHash)
}

// pollAbort distinguishes caller cancellation from the poll deadline.
func (inv *Invocation) pollAbort(ctx context.Context, txHash []byte) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return inv.timeoutError(txHash)
}

func (inv *Invocation) timeoutError(txHash []byte) error {
	return newError(KindSubmit, CodeSubmissionTimeout,
		fmt.Sprintf("invoke: transaction %s still pending after polling bounds; it may yet land",
			hex.EncodeToString(txHash)))
}

func (inv *Invocation) nextSequence() uint64 {
	inv.seq++
	return inv.seq
}

func (inv *Invocation) resetDownstream() {
	inv.sim = nil
	inv.auth = nil
	inv.envelope = nil
	inv.txHash = nil
	inv.result = nil
}

func (inv *Invocation) setState(s State) {
	if s == inv.state {
		return
	}
	inv.opts.Logger.Debug().
		Stringer("from", inv.state).
		Stringer("to", s).
		Msg("invocation state")
	inv.state = s
}
