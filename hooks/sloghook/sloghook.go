// Package sloghook logs loader hook events through log/slog, with optional
// sampling for the chatty ones and key redaction for log hygiene.
package sloghook

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/keyload/keyload"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	ResolveEvery  uint64
	SelfHealEvery uint64
	// Optional key redactor. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	resolveCtr  atomic.Uint64
	selfHealCtr atomic.Uint64
}

var _ keyload.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	if opts.Redact == nil {
		opts.Redact = hashPrefix
	}
	return &Hooks{l: l, opts: opts}
}

func hashPrefix(k string) string {
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sampled(ctr *atomic.Uint64, every uint64) bool {
	if every <= 1 {
		return true
	}
	return ctr.Add(1)%every == 0
}

func (h *Hooks) ResolveDone(name string, hits, negatives, misses int) {
	if !sampled(&h.resolveCtr, h.opts.ResolveEvery) {
		return
	}
	h.l.Debug("resolve pass",
		slog.String("loader", name),
		slog.Int("hits", hits),
		slog.Int("negatives", negatives),
		slog.Int("misses", misses),
	)
}

func (h *Hooks) FetchCalled(name string, keys int) {
	h.l.Debug("fetch invoked", slog.String("loader", name), slog.Int("keys", keys))
}

func (h *Hooks) FetchKeyError(storageKey string, err error) {
	h.l.Warn("fetch key error",
		slog.String("key", h.opts.Redact(storageKey)),
		slog.Any("err", err),
	)
}

func (h *Hooks) SelfHeal(storageKey, reason string) {
	if !sampled(&h.selfHealCtr, h.opts.SelfHealEvery) {
		return
	}
	h.l.Warn("self-heal",
		slog.String("key", h.opts.Redact(storageKey)),
		slog.String("reason", reason),
	)
}

func (h *Hooks) ProbeFallback(storageKey string) {
	h.l.Debug("probe fallback", slog.String("key", h.opts.Redact(storageKey)))
}
