package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"lumenlab.io/lumen/contentid"
	"lumenlab.io/lumen/crypto"
	"lumenlab.io/lumen/crypto/circlsig"
	"lumenlab.io/lumen/invoke"
	"lumenlab.io/lumen/keypair"
	"lumenlab.io/lumen/keystore"
	"lumenlab.io/lumen/strkey"
	"lumenlab.io/lumen/transport"
	"lumenlab.io/lumen/transport/nodeconfig"
	"lumenlab.io/lumen/transport/noderegistry"

	_ "lumenlab.io/lumen/transport/grpcnode"
	_ "lumenlab.io/lumen/transport/jsonrpc"
)

var signer crypto.Signer = circlsig.Signer{}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "strkey":
		return cmdStrkey(args[1:], out, errOut)
	case "xdr":
		return cmdXDR(args[1:], out, errOut)
	case "invoke":
		return cmdInvoke(args[1:], out, errOut)
	case "vector":
		return cmdVector(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "lumen: ledger SDK CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lumen key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  lumen key derive --from <name> --label <label> [--force]")
	fmt.Fprintln(w, "  lumen key list")
	fmt.Fprintln(w, "  lumen key export --name <name> [--label <label>]")
	fmt.Fprintln(w, "  lumen key mnemonic [--from-phrase <words>] [--index <n>]")
	fmt.Fprintln(w, "  lumen strkey encode --version <kind> --payload-hex <hex>")
	fmt.Fprintln(w, "  lumen strkey decode <text>")
	fmt.Fprintln(w, "  lumen xdr inspect <file>")
	fmt.Fprintln(w, "  lumen invoke simulate --contract <C...> --function <f> [--arg-hex <hex> ...] <node flags>")
	fmt.Fprintln(w, "  lumen invoke submit --contract <C...> --function <f> --secret <S...> [--auto-restore] <node flags>")
	fmt.Fprintln(w, "  lumen invoke status --hash <hex> <node flags>")
	fmt.Fprintln(w, "  lumen vector cid <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Node flags (simulate/submit/status):")
	fmt.Fprintln(w, "  --node <name>          backend name (default jsonrpc)")
	fmt.Fprintln(w, "  --node-config <file>   JSON config composing several backends")
	for _, b := range noderegistry.List(noderegistry.UsageCLI) {
		fmt.Fprintf(w, "  %s\t%s\n", b.Name, b.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars) of raw seed material")
	fmt.Fprintln(w, "  - keys live under ~/.lumen/keys/<name> (0600 seed files); set")
	fmt.Fprintln(w, "    --keys-passphrase to seal them at rest")
	fmt.Fprintln(w, "  - invoke submit runs the full lifecycle: simulate, sign, submit, await")
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "export":
		return cmdKeyExport(args[1:], out, errOut)
	case "mnemonic":
		return cmdKeyMnemonic(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "lumen key: minimal local key management")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lumen key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  lumen key derive --from <name> --label <label> [--force]")
	fmt.Fprintln(w, "  lumen key list")
	fmt.Fprintln(w, "  lumen key export --name <name> [--label <label>]")
	fmt.Fprintln(w, "  lumen key mnemonic [--from-phrase <words>] [--index <n>]")
}

func storeFlags(fs *flag.FlagSet) (dir, passphrase *string) {
	dir = fs.String("keys-dir", "", "Key store directory (default ~/.lumen/keys)")
	passphrase = fs.String("keys-passphrase", "", "Passphrase sealing seed files at rest")
	return dir, passphrase
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var seedHex string
	var force bool
	fs.StringVar(&name, "name", "", "Key name (directory under the key store)")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional seed as 64 hex chars (for reproducible setups)")
	fs.BoolVar(&force, "force", false, "Overwrite existing seed files")
	dir, passphrase := storeFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keystore.CheckName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	st, err := keystore.Open(signer, *dir, *passphrase)
	if err != nil {
		fmt.Fprintf(errOut, "keystore: %v\n", err)
		return 1
	}

	var seed []byte
	if seedHex != "" {
		seed, err = hex.DecodeString(seedHex)
		if err != nil || len(seed) != crypto.PrivateKeySize {
			fmt.Fprintln(errOut, "invalid --seed-hex: want 64 hex chars")
			return 2
		}
	} else {
		seed = make([]byte, crypto.PrivateKeySize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
	}

	address, path, err := st.InitializeRoot(name, seed, force)
	if err != nil {
		fmt.Fprintf(errOut, "write seed: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created root account: %s\n", address)
	fmt.Fprintf(out, "Stored at: %s\n", path)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var from string
	var label string
	var force bool
	fs.StringVar(&from, "from", "", "Root key name")
	fs.StringVar(&label, "label", "", "Account label (e.g. trading, escrow)")
	fs.BoolVar(&force, "force", false, "Overwrite existing seed files")
	dir, passphrase := storeFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if from == "" {
		fmt.Fprintln(errOut, "missing --from")
		return 2
	}
	if label == "" {
		fmt.Fprintln(errOut, "missing --label")
		return 2
	}
	st, err := keystore.Open(signer, *dir, *passphrase)
	if err != nil {
		fmt.Fprintf(errOut, "keystore: %v\n", err)
		return 1
	}
	address, path, err := st.DeriveAccount(from, label, force)
	if err != nil {
		fmt.Fprintf(errOut, "derive account: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created account: %s\n", address)
	fmt.Fprintf(out, "Stored at: %s\n", path)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	dir, passphrase := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	st, err := keystore.Open(signer, *dir, *passphrase)
	if err != nil {
		fmt.Fprintf(errOut, "keystore: %v\n", err)
		return 1
	}
	entries, err := st.List()
	if err != nil {
		fmt.Fprintf(errOut, "list: %v\n", err)
		return 1
	}
	for _, e := range entries {
		fmt.Fprintln(out, e.Name)
		for _, a := range e.Accounts {
			fmt.Fprintf(out, "  %s/%s\n", e.Name, a)
		}
	}
	return 0
}

func cmdKeyExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var label string
	fs.StringVar(&name, "name", "", "Key name")
	fs.StringVar(&label, "label", "", "Optional account label (if set, exports the derived account)")
	dir, passphrase := storeFlags(fs)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	st, err := keystore.Open(signer, *dir, *passphrase)
	if err != nil {
		fmt.Fprintf(errOut, "keystore: %v\n", err)
		return 1
	}
	secret, err := st.Export(name, label)
	if err != nil {
		fmt.Fprintf(errOut, "export: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, secret)
	return 0
}

func cmdKeyMnemonic(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key mnemonic", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var phrase string
	var passphrase string
	var index uint
	fs.StringVar(&phrase, "from-phrase", "", "Existing mnemonic (omit to generate a fresh one)")
	fs.StringVar(&passphrase, "phrase-passphrase", "", "Optional mnemonic passphrase")
	fs.UintVar(&index, "index", 0, "Account index")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if phrase == "" {
		var err error
		phrase, err = keypair.NewMnemonic()
		if err != nil {
			fmt.Fprintf(errOut, "mnemonic: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, phrase)
	}
	kp, err := keypair.FromMnemonic(signer, phrase, passphrase, uint32(index))
	if err != nil {
		fmt.Fprintf(errOut, "derive: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Account %d: %s\n", index, kp.Address())
	return 0
}

var strkeyVersions = map[string]strkey.Version{
	"account":           strkey.VersionAccountID,
	"seed":              strkey.VersionSeed,
	"muxed-account":     strkey.VersionMuxedAccount,
	"pre-auth-tx":       strkey.VersionPreAuthTx,
	"hash-x":            strkey.VersionHashX,
	"signed-payload":    strkey.VersionSignedPayload,
	"contract":          strkey.VersionContract,
	"liquidity-pool":    strkey.VersionLiquidityPool,
	"claimable-balance": strkey.VersionClaimableBalance,
}

func cmdStrkey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: lumen strkey <encode|decode> ...")
		return 2
	}
	switch args[0] {
	case "encode":
		fs := flag.NewFlagSet("strkey encode", flag.ContinueOnError)
		fs.SetOutput(errOut)
		var versionName string
		var payloadHex string
		fs.StringVar(&versionName, "version", "account", "Identifier kind (account, seed, contract, ...)")
		fs.StringVar(&payloadHex, "payload-hex", "", "Payload bytes as hex")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		version, ok := strkeyVersions[versionName]
		if !ok {
			fmt.Fprintf(errOut, "unknown --version %q\n", versionName)
			return 2
		}
		payload, err := hex.DecodeString(payloadHex)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --payload-hex: %v\n", err)
			return 2
		}
		text, err := strkey.Encode(version, payload)
		if err != nil {
			fmt.Fprintf(errOut, "encode: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, text)
		return 0
	case "decode":
		if len(args) != 2 {
			fmt.Fprintln(errOut, "usage: lumen strkey decode <text>")
			return 2
		}
		version, payload, err := strkey.Decode(args[1])
		if err != nil {
			fmt.Fprintf(errOut, "decode: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "version: %s\n", version)
		fmt.Fprintf(out, "payload: %s\n", hex.EncodeToString(payload))
		return 0
	default:
		fmt.Fprintf(errOut, "unknown strkey subcommand: %s\n", args[0])
		return 2
	}
}

func cmdXDR(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 || args[0] != "inspect" {
		fmt.Fprintln(errOut, "usage: lumen xdr inspect <file>")
		return 2
	}
	fs := flag.NewFlagSet("xdr inspect", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: lumen xdr inspect <file>")
		return 2
	}
	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}

	if env, err := invoke.DecodeEnvelope(raw); err == nil {
		fmt.Fprintln(out, "envelope")
		fmt.Fprintf(out, "  fee: %d\n", env.Fee)
		fmt.Fprintf(out, "  sequence: %d\n", env.SequenceNumber)
		fmt.Fprintf(out, "  auth entries: %d\n", len(env.Auth))
		for _, a := range env.Auth {
			fmt.Fprintf(out, "    %s nonce=%d expires=%d signed=%v\n", a.Signer, a.Nonce, a.ExpirationLedger, a.Signed())
		}
		fmt.Fprintf(out, "  signatures: %d\n", len(env.Signatures))
		if op, err := invoke.DecodeOperation(env.OperationXDR); err == nil {
			printOperation(out, op)
		}
		return 0
	}
	if op, err := invoke.DecodeOperation(raw); err == nil {
		printOperation(out, op)
		return 0
	}
	fmt.Fprintln(errOut, "not a known wire form (tried envelope, operation)")
	return 1
}

func printOperation(out io.Writer, op *invoke.Operation) {
	fmt.Fprintln(out, "operation")
	fmt.Fprintf(out, "  source: %s\n", op.Source)
	fmt.Fprintf(out, "  contract: %s\n", op.Contract)
	fmt.Fprintf(out, "  function: %s\n", op.Function)
	fmt.Fprintf(out, "  args: %d\n", len(op.Args))
	for i, a := range op.Args {
		fmt.Fprintf(out, "    [%d] %s\n", i, hex.EncodeToString(a))
	}
}

// nodeFlags wires backend selection into a command's flag set.
type nodeFlags struct {
	name   *string
	config *string
}

func registerNodeFlags(fs *flag.FlagSet) nodeFlags {
	nf := nodeFlags{
		name:   fs.String("node", "", "Node backend name (default jsonrpc; with --node-config, a preferred node id)"),
		config: fs.String("node-config", "", "JSON config composing several backends"),
	}
	noderegistry.RegisterFlags(fs, noderegistry.UsageCLI)
	return nf
}

func (nf nodeFlags) open() (transport.Node, func() error, error) {
	if *nf.config != "" {
		cfg, err := nodeconfig.LoadFile(*nf.config)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Open(noderegistry.UsageCLI, *nf.name)
	}
	name := *nf.name
	if name == "" {
		name = "jsonrpc"
	}
	return noderegistry.Open(name, noderegistry.UsageCLI)
}

func cmdInvoke(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: lumen invoke <simulate|submit|status> ...")
		return 2
	}
	switch args[0] {
	case "simulate":
		return cmdInvokeSimulate(args[1:], out, errOut)
	case "submit":
		return cmdInvokeSubmit(args[1:], out, errOut)
	case "status":
		return cmdInvokeStatus(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown invoke subcommand: %s\n", args[0])
		return 2
	}
}

type invokeFlags struct {
	contract   string
	function   string
	args       [][]byte
	secret     string
	passphrase string
	seq        uint64
}

func registerInvokeFlags(fs *flag.FlagSet) *invokeFlags {
	f := &invokeFlags{}
	fs.StringVar(&f.contract, "contract", "", "Contract identifier (C...)")
	fs.StringVar(&f.function, "function", "", "Contract function name")
	fs.Func("arg-hex", "Argument wire bytes as hex (repeatable)", func(s string) error {
		b, err := hex.DecodeString(s)
		if err != nil {
			return err
		}
		f.args = append(f.args, b)
		return nil
	})
	fs.StringVar(&f.secret, "secret", "", "Source secret seed (S...)")
	fs.StringVar(&f.passphrase, "network-passphrase", invoke.TestPassphrase, "Network passphrase")
	fs.Uint64Var(&f.seq, "seq", 0, "Source account's current sequence number")
	return f
}

func (f *invokeFlags) sourcePair(errOut io.Writer) (*keypair.KeyPair, int) {
	if f.secret == "" {
		fmt.Fprintln(errOut, "missing --secret")
		return nil, 2
	}
	kp, err := keypair.FromSecretSeed(signer, strings.TrimSpace(f.secret))
	if err != nil {
		fmt.Fprintf(errOut, "invalid --secret: %v\n", err)
		return nil, 2
	}
	return kp, 0
}

func cmdInvokeSimulate(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("invoke simulate", flag.ContinueOnError)
	fs.SetOutput(errOut)
	f := registerInvokeFlags(fs)
	nf := registerNodeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if f.contract == "" || f.function == "" {
		fmt.Fprintln(errOut, "missing --contract or --function")
		return 2
	}
	kp, code := f.sourcePair(errOut)
	if code != 0 {
		return code
	}
	node, closeFn, err := nf.open()
	if err != nil {
		fmt.Fprintf(errOut, "node: %v\n", err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	inv, err := invoke.New(node, signer, invoke.Network{Passphrase: f.passphrase}, kp,
		invoke.Operation{Contract: f.contract, Function: f.function, Args: f.args},
		invoke.Options{SequenceNumber: f.seq})
	if err != nil {
		fmt.Fprintf(errOut, "invoke: %v\n", err)
		return 1
	}
	sim, err := inv.Simulate(context.Background())
	if err != nil {
		if keys := invoke.ArchivedKeys(err); keys != nil {
			fmt.Fprintln(errOut, "archived state must be restored first:")
			for _, k := range keys {
				fmt.Fprintf(errOut, "  %s\n", hex.EncodeToString(k))
			}
			return 1
		}
		fmt.Fprintf(errOut, "simulate: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "min resource fee: %d\n", sim.MinResourceFee)
	fmt.Fprintf(out, "latest ledger: %d\n", sim.LatestLedger)
	fmt.Fprintf(out, "read-only keys: %d, read-write keys: %d\n", len(sim.ReadOnlyKeys), len(sim.ReadWriteKeys))
	if missing := inv.NeedsNonInvokerSigningBy(); len(missing) > 0 {
		fmt.Fprintln(out, "needs signatures from:")
		for _, m := range missing {
			fmt.Fprintf(out, "  %s\n", m)
		}
	}
	return 0
}

func cmdInvokeSubmit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("invoke submit", flag.ContinueOnError)
	fs.SetOutput(errOut)
	f := registerInvokeFlags(fs)
	nf := registerNodeFlags(fs)
	var autoRestore bool
	var pollInterval time.Duration
	var pollAttempts int
	fs.BoolVar(&autoRestore, "auto-restore", false, "Automatically restore archived state (one round-trip)")
	fs.DurationVar(&pollInterval, "poll-interval", invoke.DefaultPollInterval, "Finality poll interval")
	fs.IntVar(&pollAttempts, "poll-attempts", invoke.DefaultMaxPollAttempts, "Max finality polls")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if f.contract == "" || f.function == "" {
		fmt.Fprintln(errOut, "missing --contract or --function")
		return 2
	}
	kp, code := f.sourcePair(errOut)
	if code != 0 {
		return code
	}
	node, closeFn, err := nf.open()
	if err != nil {
		fmt.Fprintf(errOut, "node: %v\n", err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}

	inv, err := invoke.New(node, signer, invoke.Network{Passphrase: f.passphrase}, kp,
		invoke.Operation{Contract: f.contract, Function: f.function, Args: f.args},
		invoke.Options{
			SequenceNumber:  f.seq,
			AutoRestore:     autoRestore,
			PollInterval:    pollInterval,
			MaxPollAttempts: pollAttempts,
		})
	if err != nil {
		fmt.Fprintf(errOut, "invoke: %v\n", err)
		return 1
	}
	status, err := inv.Execute(context.Background())
	if err != nil {
		if invoke.IsCode(err, invoke.CodeSubmissionTimeout) && inv.Hash() != nil {
			fmt.Fprintf(errOut, "still pending; check later: lumen invoke status --hash %s\n", hex.EncodeToString(inv.Hash()))
			return 1
		}
		if missing := invoke.MissingSigners(err); len(missing) > 0 {
			fmt.Fprintln(errOut, "needs signatures from:")
			for _, m := range missing {
				fmt.Fprintf(errOut, "  %s\n", m)
			}
			return 1
		}
		fmt.Fprintf(errOut, "submit: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "transaction: %s\n", hex.EncodeToString(inv.Hash()))
	fmt.Fprintf(out, "state: %s (ledger %d)\n", status.State, status.Ledger)
	if len(status.ResultXDR) > 0 {
		fmt.Fprintf(out, "result: %s\n", hex.EncodeToString(status.ResultXDR))
	}
	return 0
}

func cmdInvokeStatus(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("invoke status", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var hashHex string
	fs.StringVar(&hashHex, "hash", "", "Transaction hash (hex)")
	nf := registerNodeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	hash, err := hex.DecodeString(hashHex)
	if err != nil || len(hash) == 0 {
		fmt.Fprintln(errOut, "missing or malformed --hash")
		return 2
	}
	node, closeFn, err := nf.open()
	if err != nil {
		fmt.Fprintf(errOut, "node: %v\n", err)
		return 1
	}
	if closeFn != nil {
		defer closeFn()
	}
	status, err := node.Status(context.Background(), hash)
	if err != nil {
		fmt.Fprintf(errOut, "status: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "state: %s (ledger %d)\n", status.State, status.Ledger)
	if len(status.ResultXDR) > 0 {
		fmt.Fprintf(out, "result: %s\n", hex.EncodeToString(status.ResultXDR))
	}
	return 0
}

func cmdVector(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) != 2 || args[0] != "cid" {
		fmt.Fprintln(errOut, "usage: lumen vector cid <file>")
		return 2
	}
	raw, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, contentid.ForBytes(raw))
	return 0
}
