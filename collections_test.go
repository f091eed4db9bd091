package redikit

import (
	"context"
	"testing"
)

// TestListScenario follows the documented sequence: unshift "one", push
// "two" -> [one two]; shift returns "one"; pop returns "two"; list empty.
func TestListScenario(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t, nil)
	lists := c.Lists()

	if _, err := lists.Unshift(ctx, "bar", "one"); err != nil {
		t.Fatalf("Unshift: %v", err)
	}
	if _, err := lists.Push(ctx, "bar", "two"); err != nil {
		t.Fatalf("Push: %v", err)
	}

	got, err := lists.Range(ctx, "bar", 0, -1)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("unexpected order %v", got)
	}

	v, ok, err := lists.Shift(ctx, "bar")
	if err != nil || !ok || v != "one" {
		t.Fatalf("Shift: v=%q ok=%v err=%v", v, ok, err)
	}
	v, ok, err = lists.Pop(ctx, "bar")
	if err != nil || !ok || v != "two" {
		t.Fatalf("Pop: v=%q ok=%v err=%v", v, ok, err)
	}

	if n, err := lists.Len(ctx, "bar"); err != nil || n != 0 {
		t.Fatalf("Len after drain: n=%d err=%v", n, err)
	}
	if _, ok, _ := lists.Shift(ctx, "bar"); ok {
		t.Fatalf("Shift on empty list should report ok=false")
	}
}

func TestListTrim(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t, nil)
	lists := c.Lists()

	if _, err := lists.Push(ctx, "q", "a", "b", "c", "d"); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if err := lists.Trim(ctx, "q", 1, 2); err != nil {
		t.Fatalf("Trim: %v", err)
	}
	got, err := lists.Range(ctx, "q", 0, -1)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("unexpected trim result %v", got)
	}
}

func TestMapOps(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t, nil)
	maps := c.Maps()

	if err := maps.Set(ctx, "h", "name", "ada"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := maps.SetMany(ctx, "h", map[string]string{"lang": "go", "role": "eng"}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	v, ok, err := maps.Get(ctx, "h", "name")
	if err != nil || !ok || v != "ada" {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := maps.Get(ctx, "h", "missing"); ok {
		t.Fatalf("absent field should report ok=false")
	}

	got, err := maps.GetMany(ctx, "h", "name", "lang", "missing")
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 || got["name"] != "ada" || got["lang"] != "go" {
		t.Fatalf("GetMany mismatch: %v", got)
	}

	if n, err := maps.Len(ctx, "h"); err != nil || n != 3 {
		t.Fatalf("Len: n=%d err=%v", n, err)
	}
	if n, err := maps.Delete(ctx, "h", "role", "missing"); err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if n, _ := maps.Len(ctx, "h"); n != 2 {
		t.Fatalf("Len after delete: %d", n)
	}
}

func TestSetOps(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestCache(t, nil)
	sets := c.Sets()

	if n, err := sets.Add(ctx, "s", "a", "b", "b"); err != nil || n != 2 {
		t.Fatalf("Add: n=%d err=%v", n, err)
	}
	if ok, _ := sets.Contains(ctx, "s", "a"); !ok {
		t.Fatalf("expected member a")
	}
	if ok, _ := sets.Contains(ctx, "s", "z"); ok {
		t.Fatalf("unexpected member z")
	}

	members, err := sets.Members(ctx, "s")
	if err != nil || len(members) != 2 {
		t.Fatalf("Members: %v err=%v", members, err)
	}

	if n, err := sets.Remove(ctx, "s", "a"); err != nil || n != 1 {
		t.Fatalf("Remove: n=%d err=%v", n, err)
	}
	if n, _ := sets.Size(ctx, "s"); n != 1 {
		t.Fatalf("Size after remove: %d", n)
	}
}
