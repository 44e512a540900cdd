package contentid

import "testing"

func TestForBytes_DeterministicAndDistinct(t *testing.T) {
	a := ForBytes([]byte("vector-a"))
	b := ForBytes([]byte("vector-b"))
	if a == "" || b == "" {
		t.Fatalf("empty CID")
	}
	if a == b {
		t.Fatalf("distinct contents produced the same CID")
	}
	if again := ForBytes([]byte("vector-a")); again != a {
		t.Fatalf("CID is not deterministic: %s vs %s", again, a)
	}
}

func TestMatches(t *testing.T) {
	data := []byte("conformance vector bytes")
	id := ForBytes(data)
	if !Matches(id, data) {
		t.Fatalf("Matches rejected the defining bytes")
	}
	if Matches(id, append([]byte(nil), "other bytes"...)) {
		t.Fatalf("Matches accepted foreign bytes")
	}
	if Matches("not-a-cid", data) {
		t.Fatalf("Matches accepted a malformed CID")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	id := ForBytes([]byte("x"))
	parsed, err := Parse(id)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.String() != id {
		t.Fatalf("round trip mismatch: %s vs %s", parsed.String(), id)
	}
}
