package codec

import "testing"

func TestLimitCodec(t *testing.T) {
	c := LimitCodec[string]{Inner: JSON[string]{}, MaxDecode: 8}

	big, err := c.Encode("this is well past eight bytes")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := c.Decode(big); err == nil {
		t.Fatalf("oversized payload should fail to decode")
	}

	small, err := c.Encode("ok")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := c.Decode(small)
	if err != nil || v != "ok" {
		t.Fatalf("Decode: v=%q err=%v", v, err)
	}

	// MaxDecode <= 0 disables the cap
	open := LimitCodec[string]{Inner: JSON[string]{}}
	if _, err := open.Decode(big); err != nil {
		t.Fatalf("unlimited decode: %v", err)
	}
}
