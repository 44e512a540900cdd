// Package contentid derives content identifiers for conformance vector
// files. Vectors are immutable byte blobs, so a CIDv1 over the raw codec
// with a sha2-256 multihash names them unambiguously across tools and tests.
package contentid

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ForBytes returns the CIDv1 string (raw + sha2-256) for data.
func ForBytes(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// Sum cannot fail for a registered hash code with default length.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// Parse decodes a CID string, for callers that need to compare identities
// rather than text.
func Parse(s string) (cid.Cid, error) {
	return cid.Decode(s)
}

// Matches reports whether data hashes to the identifier in s.
func Matches(s string, data []byte) bool {
	want, err := cid.Decode(s)
	if err != nil || !want.Defined() {
		return false
	}
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return false
	}
	return cid.NewCidV1(cid.Raw, sum).Equals(want)
}
