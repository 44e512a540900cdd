package keystore

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"lumenlab.io/lumen/crypto/circlsig"
	"lumenlab.io/lumen/strkey"
)

func testSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = 0xA1
	}
	return seed
}

func openTestStore(t *testing.T, passphrase string) *Store {
	t.Helper()
	s, err := Open(circlsig.New(), t.TempDir(), passphrase)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestInitializeRoot_AndExport(t *testing.T) {
	s := openTestStore(t, "")
	address, path, err := s.InitializeRoot("alice", testSeed(), false)
	if err != nil {
		t.Fatalf("InitializeRoot: %v", err)
	}
	if !strkey.IsValidAccountID(address) {
		t.Fatalf("bad address %q", address)
	}

	// Plain stores keep the strkey seed text on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read seed file: %v", err)
	}
	if !strkey.IsValidSeed(string(bytes.TrimSpace(data))) {
		t.Fatalf("seed file does not hold strkey text: %q", data)
	}

	exported, err := s.Export("alice", "")
	if err != nil || exported != address {
		t.Fatalf("Export: %q %v, want %q", exported, err, address)
	}

	// A second init without overwrite must refuse.
	if _, _, err := s.InitializeRoot("alice", testSeed(), false); err == nil {
		t.Fatalf("expected refusal without overwrite")
	}
	if _, _, err := s.InitializeRoot("alice", testSeed(), true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestDeriveAccount_DeterministicAndDistinct(t *testing.T) {
	s := openTestStore(t, "")
	if _, _, err := s.InitializeRoot("org", testSeed(), false); err != nil {
		t.Fatalf("InitializeRoot: %v", err)
	}
	payments, _, err := s.DeriveAccount("org", "payments", false)
	if err != nil {
		t.Fatalf("DeriveAccount: %v", err)
	}
	ops, _, err := s.DeriveAccount("org", "ops", false)
	if err != nil {
		t.Fatalf("DeriveAccount: %v", err)
	}
	if payments == ops {
		t.Fatalf("distinct labels derived the same address")
	}

	// Same root + label always derives the same seed.
	again, err := DeriveAccountSeed(testSeed(), "payments")
	if err != nil {
		t.Fatalf("DeriveAccountSeed: %v", err)
	}
	direct, err := DeriveAccountSeed(testSeed(), "payments")
	if err != nil || !bytes.Equal(again, direct) {
		t.Fatalf("derivation is not deterministic")
	}
}

func TestList(t *testing.T) {
	s := openTestStore(t, "")
	if _, _, err := s.InitializeRoot("bob", testSeed(), false); err != nil {
		t.Fatalf("InitializeRoot: %v", err)
	}
	if _, _, err := s.DeriveAccount("bob", "trading", false); err != nil {
		t.Fatalf("DeriveAccount: %v", err)
	}
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "bob" {
		t.Fatalf("List: %+v", entries)
	}
	if len(entries[0].Accounts) != 1 || entries[0].Accounts[0] != "trading" {
		t.Fatalf("List accounts: %+v", entries[0].Accounts)
	}
}

func TestSealedStore_RoundTripAndWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	signer := circlsig.New()
	sealed, err := Open(signer, dir, "correct horse")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	address, path, err := sealed.InitializeRoot("vault", testSeed(), false)
	if err != nil {
		t.Fatalf("InitializeRoot: %v", err)
	}

	// The on-disk file must not contain the seed text.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sealed file: %v", err)
	}
	if !isSealed(data) {
		t.Fatalf("seed file is not sealed")
	}

	reopened, err := Open(signer, dir, "correct horse")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	exported, err := reopened.Export("vault", "")
	if err != nil || exported != address {
		t.Fatalf("sealed export: %q %v, want %q", exported, err, address)
	}

	wrong, err := Open(signer, dir, "incorrect horse")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := wrong.Export("vault", ""); !errors.Is(err, ErrPassphrase) {
		t.Fatalf("expected ErrPassphrase, got %v", err)
	}
	none, err := Open(signer, dir, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := none.Export("vault", ""); !errors.Is(err, ErrPassphrase) {
		t.Fatalf("expected ErrPassphrase without passphrase, got %v", err)
	}
}

func TestKeyPair_LoadsSigningPair(t *testing.T) {
	s := openTestStore(t, "")
	address, _, err := s.InitializeRoot("carol", testSeed(), false)
	if err != nil {
		t.Fatalf("InitializeRoot: %v", err)
	}
	kp, err := s.KeyPair("carol", "")
	if err != nil {
		t.Fatalf("KeyPair: %v", err)
	}
	if kp.Address() != address || !kp.CanSign() {
		t.Fatalf("loaded pair mismatch")
	}
}

func TestCheckName_RejectsPathCharacters(t *testing.T) {
	for _, bad := range []string{"", "a/b", "a b", "..", "x\x00"} {
		if err := CheckName(bad); err == nil {
			t.Fatalf("CheckName(%q) accepted", bad)
		}
	}
	if err := CheckName("ok-name_1"); err != nil {
		t.Fatalf("CheckName rejected a valid name: %v", err)
	}
}
