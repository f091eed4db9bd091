package redikit

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
)

// randomValue builds a nested structure from the seeded source; idx makes
// every sample distinct.
func randomValue(r *rand.Rand, idx int) any {
	inner := map[string]any{
		"n":  r.Intn(1 << 20),
		"f":  r.Float64(),
		"s":  fmt.Sprintf("s-%d", r.Int63()),
		"ok": r.Intn(2) == 0,
	}
	return map[string]any{
		"idx":   idx,
		"inner": inner,
		"list":  []any{r.Intn(100), fmt.Sprintf("item-%d", r.Intn(100)), nil},
	}
}

// TestDeriveKeyDeterminism: 1000 random structured values, each hashed
// twice, always equal.
func TestDeriveKeyDeterminism(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		v := randomValue(r, i)
		a, err := DeriveKey(v)
		if err != nil {
			t.Fatalf("DeriveKey(#%d): %v", i, err)
		}
		b, err := DeriveKey(v)
		if err != nil {
			t.Fatalf("DeriveKey(#%d) repeat: %v", i, err)
		}
		if a != b {
			t.Fatalf("fingerprint not deterministic at #%d: %q vs %q", i, a, b)
		}
		// distinct inputs must not collide in practice
		if _, dup := seen[a]; dup {
			t.Fatalf("fingerprint collision at #%d: %q", i, a)
		}
		seen[a] = struct{}{}
	}
}

func TestDeriveKeyShape(t *testing.T) {
	fp, err := DeriveKey(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(fp)
	if err != nil {
		t.Fatalf("fingerprint is not valid base64: %v", err)
	}
	if len(raw) != 20 { // SHA-1 digest length
		t.Fatalf("unexpected digest length %d", len(raw))
	}
}

// TestDeriveKeyMapOrderIndependent: canonicalization sorts map keys, so
// structurally equal maps hash identically however they were built.
func TestDeriveKeyMapOrderIndependent(t *testing.T) {
	m1 := map[string]any{}
	m1["a"] = 1
	m1["b"] = 2
	m1["c"] = 3

	m2 := map[string]any{}
	m2["c"] = 3
	m2["a"] = 1
	m2["b"] = 2

	f1, err := DeriveKey(m1)
	if err != nil {
		t.Fatalf("DeriveKey m1: %v", err)
	}
	f2, err := DeriveKey(m2)
	if err != nil {
		t.Fatalf("DeriveKey m2: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("equal maps hash differently: %q vs %q", f1, f2)
	}
}

func TestDeriveKeyDistinctInputs(t *testing.T) {
	pairs := [][2]any{
		{map[string]int{"a": 1}, map[string]int{"a": 2}},
		{[]int{1, 2}, []int{2, 1}},
		{"x", "y"},
		{map[string]any{"n": 1}, map[string]any{"n": "1"}},
	}
	for i, p := range pairs {
		a, err := DeriveKey(p[0])
		if err != nil {
			t.Fatalf("pair %d: %v", i, err)
		}
		b, err := DeriveKey(p[1])
		if err != nil {
			t.Fatalf("pair %d: %v", i, err)
		}
		if a == b {
			t.Fatalf("pair %d: distinct inputs produced equal fingerprints", i)
		}
	}
}

// TestDeriveKeyUnserializable: no silent placeholder fingerprints.
func TestDeriveKeyUnserializable(t *testing.T) {
	cases := []any{
		make(chan int),
		func() {},
		math.NaN(),
		math.Inf(1),
	}
	for i, v := range cases {
		fp, err := DeriveKey(v)
		if err == nil {
			t.Fatalf("case %d: expected error, got fingerprint %q", i, fp)
		}
		var se *SerializationError
		if !errors.As(err, &se) {
			t.Fatalf("case %d: expected *SerializationError, got %T", i, err)
		}
		if fp != "" {
			t.Fatalf("case %d: fingerprint must be empty on error", i)
		}
	}
}
