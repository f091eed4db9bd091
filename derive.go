package redikit

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
)

// DeriveKey canonicalizes v to JSON, digests the UTF-8 bytes with SHA-1 and
// returns the digest base64-encoded. Equal inputs always yield equal
// fingerprints; map keys are sorted during canonicalization, so map-shaped
// inputs hash independently of insertion order. Struct fields serialize in
// declaration order, which is stable for a given build.
//
// SHA-1 here is a content fingerprint, not a defense against adversarial
// collisions.
//
// Unserializable input (cycles, channels, NaN/Inf) returns a
// *SerializationError; DeriveKey never returns a placeholder fingerprint.
func DeriveKey(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", &SerializationError{Err: err}
	}
	sum := sha1.Sum(b)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
