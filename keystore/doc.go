// Package keystore provides a local-first filesystem store for account seeds.
//
// Layout: <dir>/<name>/root.seed holds a root seed; account seeds derived
// from it live under <dir>/<name>/accounts/<label>.seed. Seed files contain
// the strkey seed text ("S...") and are written 0600 inside 0700 directories.
// A store opened with a passphrase seals seed files at rest with
// scrypt + nacl/secretbox; an empty passphrase stores plain text.
//
// The deterministic derivation primitives are stable; the filesystem surface
// is a convenience for CLIs and development and is not a protocol contract.
package keystore
