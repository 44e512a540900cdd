package invoke

import "lumenlab.io/lumen/crypto"

// Well-known network passphrases. Any other string names a private network.
const (
	PublicPassphrase = "Lumen Public Network ; v1"
	TestPassphrase   = "Lumen Test Network ; v1"
)

// Network identifies the ledger network a transaction is bound to.
//
// The network ID is the digest of the passphrase and is mixed into every
// signature base, so a transaction signed for one network can never be
// replayed on another.
type Network struct {
	Passphrase string
}

// ID returns the 32-byte network identifier.
func (n Network) ID(signer crypto.Signer) []byte {
	return signer.Hash([]byte(n.Passphrase))
}
