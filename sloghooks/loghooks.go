package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/redikit"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	PersistEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
	persistCtr  atomic.Uint64
}

var _ redikit.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("redikit.self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) PersistDone(storageKey string, err error) {
	if h.l == nil {
		return
	}
	if err != nil {
		h.l.Warn("redikit.persist_failed",
			"key", h.redact(storageKey),
			"err", err)
		return
	}
	if !sample(h.opts.PersistEvery, &h.persistCtr) {
		return
	}
	h.l.Debug("redikit.persist_done", "key", h.redact(storageKey))
}

func (h *Hooks) CleanupDone(storageKey string, err error) {
	if h.l == nil {
		return
	}
	if err != nil {
		h.l.Warn("redikit.cleanup_failed",
			"key", h.redact(storageKey),
			"err", err)
		return
	}
	h.l.Debug("redikit.cleanup_done", "key", h.redact(storageKey))
}
