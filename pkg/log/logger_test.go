package log

import (
	"context"
	"strings"
	"testing"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	rec := &recorder{}
	logger := New(Info, rec)

	logger.Debug("hidden")
	logger.Info("shown")
	logger.Close()

	entries := rec.Entries()
	if len(entries) != 1 || entries[0].Message != "shown" {
		t.Fatalf("entries = %+v, want only the info entry", entries)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	rec := &recorder{}
	logger := New(Info, rec)

	logger.SetLevel(Debug)
	logger.Debug("now visible")
	logger.Close()

	if logger.Level() != Debug {
		t.Errorf("Level() = %v, want DEBUG", logger.Level())
	}
	if len(rec.Entries()) != 1 {
		t.Error("debug entry not delivered after SetLevel(Debug)")
	}
}

func TestLogger_AllLevels(t *testing.T) {
	rec := &recorder{}
	logger := New(Trace, rec)

	logger.Trace("t")
	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")
	logger.Fatal("f")
	logger.Close()

	entries := rec.Entries()
	want := []Level{Trace, Debug, Info, Warn, Error, Fatal}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, lvl := range want {
		if entries[i].Level != lvl {
			t.Errorf("entries[%d].Level = %v, want %v", i, entries[i].Level, lvl)
		}
	}
}

func TestLogger_CtxEnrichment(t *testing.T) {
	rec := &recorder{}
	logger := New(Info, rec).With("component", "store", "shadowed", "base")

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithUserID(ctx, "user-42")
	ctx = WithFields(ctx, "card_id", "c-9", "shadowed", "ctx")
	logger.InfoCtx(ctx, "card loaded", "shadowed", "call")
	logger.Close()

	entry := rec.Last()
	if entry == nil {
		t.Fatal("no entry")
	}
	if entry.RequestID != "req-1" || entry.UserID != "user-42" {
		t.Errorf("RequestID/UserID = %q/%q", entry.RequestID, entry.UserID)
	}
	if entry.Fields["component"] != "store" || entry.Fields["card_id"] != "c-9" {
		t.Errorf("fields = %v", entry.Fields)
	}
	if entry.Fields["shadowed"] != "call" {
		t.Errorf("call-site field should win, got %v", entry.Fields["shadowed"])
	}
}

func TestLogger_CallerPointsAtCallSite(t *testing.T) {
	rec := &recorder{}
	logger := New(Info, rec)

	logger.Info("where")
	logger.Close()

	if entry := rec.Last(); entry == nil || !strings.HasPrefix(entry.Caller, "logger_test.go:") {
		t.Errorf("Caller = %+v, want logger_test.go:<line>", entry)
	}
}

func TestLogger_With_DoesNotMutateParent(t *testing.T) {
	rec := &recorder{}
	parent := New(Info, rec)
	_ = parent.With("child_only", true)

	parent.Info("parent")
	parent.Close()

	if _, ok := rec.Last().Fields["child_only"]; ok {
		t.Error("With leaked fields into the parent logger")
	}
}

func TestDefault_WithoutSetDefault_IsSharedAndSilent(t *testing.T) {
	SetDefault(nil)

	first, second := Default(), Default()
	if first != second {
		t.Error("Default() should return the same discarding logger")
	}
	GlobalError("dropped")
}

func TestGlobal_UsesInstalledLogger(t *testing.T) {
	rec := &recorder{}
	logger := New(Info, rec)
	SetDefault(logger)
	t.Cleanup(func() { SetDefault(nil) })

	GlobalInfoCtx(WithRequestID(context.Background(), "req-g"), "global")
	logger.Close()

	entry := rec.Last()
	if entry == nil || entry.Message != "global" || entry.RequestID != "req-g" {
		t.Fatalf("entry = %+v", entry)
	}
	if !strings.HasPrefix(entry.Caller, "logger_test.go:") {
		t.Errorf("Caller = %q, want logger_test.go:<line>", entry.Caller)
	}
}
