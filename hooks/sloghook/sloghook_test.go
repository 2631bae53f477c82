package sloghook

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestHooks(opts Options) (*Hooks, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(l, opts), &buf
}

func TestSelfHealSampling(t *testing.T) {
	h, buf := newTestHooks(Options{SelfHealEvery: 3})

	for i := 0; i < 9; i++ {
		h.SelfHeal("users:1", "corrupt")
	}
	if got := strings.Count(buf.String(), "self-heal"); got != 3 {
		t.Fatalf("logged %d self-heal events out of 9 with every=3, want 3", got)
	}
}

func TestResolveUnsampledByDefault(t *testing.T) {
	h, buf := newTestHooks(Options{})

	h.ResolveDone("users", 1, 0, 2)
	h.ResolveDone("users", 3, 1, 0)
	if got := strings.Count(buf.String(), "resolve pass"); got != 2 {
		t.Fatalf("logged %d resolve events, want 2", got)
	}
}

func TestKeyRedaction(t *testing.T) {
	h, buf := newTestHooks(Options{})

	h.FetchKeyError("users:secret-id", errors.New("boom"))
	out := buf.String()
	if strings.Contains(out, "secret-id") {
		t.Fatalf("raw key leaked into log output: %s", out)
	}
	if !strings.Contains(out, hashPrefix("users:secret-id")) {
		t.Fatalf("redacted key missing from output: %s", out)
	}
}

func TestCustomRedactor(t *testing.T) {
	h, buf := newTestHooks(Options{Redact: func(string) string { return "<key>" }})

	h.ProbeFallback("users:42")
	if !strings.Contains(buf.String(), "<key>") {
		t.Fatalf("custom redactor not applied: %s", buf.String())
	}
}
