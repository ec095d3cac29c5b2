package handler

import (
	"errors"
	"testing"

	"github.com/philipp01105/rlog/core"
)

func syslogLevel(t *testing.T, name string) core.Level {
	t.Helper()
	l, err := core.Syslog.Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", name, err)
	}
	return l
}

func TestHandlerFunc(t *testing.T) {
	var got string
	h := HandlerFunc(func(level core.Level, line string) error {
		got = level.Name + "|" + line
		return nil
	})

	if err := h.Handle(syslogLevel(t, "info"), "info.hello {}"); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got != "info|info.hello {}" {
		t.Errorf("Handle() got %q, want %q", got, "info|info.hello {}")
	}
	if err := h.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDiscard(t *testing.T) {
	if err := Discard.Handle(syslogLevel(t, "emerg"), "emerg.x null"); err != nil {
		t.Errorf("Discard.Handle() error = %v", err)
	}
	if err := Discard.Close(); err != nil {
		t.Errorf("Discard.Close() error = %v", err)
	}
}

func TestLevelHandler(t *testing.T) {
	var lines []string
	record := func(prefix string) func(string) error {
		return func(line string) error {
			lines = append(lines, prefix+line)
			return nil
		}
	}
	h := LevelHandler{
		"err":  record("E:"),
		"info": record("I:"),
	}

	if err := h.Handle(syslogLevel(t, "err"), "err.a 1"); err != nil {
		t.Fatalf("Handle(err) error = %v", err)
	}
	if err := h.Handle(syslogLevel(t, "info"), "info.b 2"); err != nil {
		t.Fatalf("Handle(info) error = %v", err)
	}
	err := h.Handle(syslogLevel(t, "debug"), "debug.c 3")
	if !errors.Is(err, ErrNoSink) {
		t.Errorf("Handle(debug) error = %v, want ErrNoSink", err)
	}

	want := []string{"E:err.a 1", "I:info.b 2"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLevelHandler_Handles(t *testing.T) {
	h := LevelHandler{
		"info":  func(string) error { return nil },
		"debug": nil,
	}

	tests := []struct {
		level string
		want  bool
	}{
		{"info", true},
		{"debug", false},
		{"err", false},
	}
	for _, tt := range tests {
		if got := h.Handles(tt.level); got != tt.want {
			t.Errorf("Handles(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	var a, b []string
	ha := HandlerFunc(func(_ core.Level, line string) error {
		a = append(a, line)
		return nil
	})
	hb := HandlerFunc(func(_ core.Level, line string) error {
		b = append(b, line)
		return nil
	})

	m := NewMultiHandler(ha, nil, hb)
	if err := m.Handle(syslogLevel(t, "notice"), "notice.x {}"); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(a) != 1 || len(b) != 1 {
		t.Errorf("expected both handlers to receive the line, got a=%v b=%v", a, b)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestMultiHandler_JoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	called := 0

	m := NewMultiHandler(
		HandlerFunc(func(core.Level, string) error { called++; return errA }),
		HandlerFunc(func(core.Level, string) error { called++; return nil }),
		HandlerFunc(func(core.Level, string) error { called++; return errB }),
	)

	err := m.Handle(syslogLevel(t, "err"), "err.x {}")
	if called != 3 {
		t.Errorf("called = %d, want 3", called)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Handle() error = %v, want both child errors", err)
	}
}

func TestMultiHandler_Handles(t *testing.T) {
	m := NewMultiHandler(
		Discard,
		LevelHandler{"info": func(string) error { return nil }},
	)
	if !m.Handles("info") {
		t.Error("Handles(info) = false, want true")
	}
	if m.Handles("err") {
		t.Error("Handles(err) = true, want false")
	}
}

func TestCountingHandler(t *testing.T) {
	fail := errors.New("write failed")
	h := NewCountingHandler(HandlerFunc(func(level core.Level, _ string) error {
		if level.Name == "alert" {
			return fail
		}
		return nil
	}), core.Syslog)

	for _, name := range []string{"info", "info", "err", "alert"} {
		_ = h.Handle(syslogLevel(t, name), name+".x null")
	}
	_ = h.Handle(core.Level{Name: "custom", Rank: 2}, "custom.x null")

	snap := h.Stats()
	if snap.Processed["info"] != 2 {
		t.Errorf("Processed[info] = %d, want 2", snap.Processed["info"])
	}
	if snap.Processed["err"] != 1 {
		t.Errorf("Processed[err] = %d, want 1", snap.Processed["err"])
	}
	if snap.Processed["alert"] != 0 {
		t.Errorf("Processed[alert] = %d, want 0", snap.Processed["alert"])
	}
	if snap.Failed != 1 {
		t.Errorf("Failed = %d, want 1", snap.Failed)
	}
	if snap.Unknown != 1 {
		t.Errorf("Unknown = %d, want 1", snap.Unknown)
	}
	if len(snap.Processed) != core.Syslog.Len() {
		t.Errorf("len(Processed) = %d, want %d", len(snap.Processed), core.Syslog.Len())
	}
}

func TestStats_Reset(t *testing.T) {
	s := NewStats(core.Standard)
	l, _ := core.Standard.At(0)
	s.IncrementProcessed(l)
	s.IncrementFailed()
	if s.GetTotalProcessed() != 1 {
		t.Errorf("GetTotalProcessed() = %d, want 1", s.GetTotalProcessed())
	}
	s.Reset()
	if s.GetTotalProcessed() != 0 || s.GetFailed() != 0 {
		t.Errorf("after Reset() total = %d failed = %d, want 0 0", s.GetTotalProcessed(), s.GetFailed())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		level core.Level
		want  Class
	}{
		{core.Level{Name: "emerg", Rank: 0}, ClassError},
		{core.Level{Name: "alert", Rank: 1}, ClassError},
		{core.Level{Name: "crit", Rank: 2}, ClassError},
		{core.Level{Name: "err", Rank: 3}, ClassError},
		{core.Level{Name: "warning", Rank: 4}, ClassWarn},
		{core.Level{Name: "notice", Rank: 5}, ClassInfo},
		{core.Level{Name: "info", Rank: 6}, ClassInfo},
		{core.Level{Name: "debug", Rank: 7}, ClassDebug},
		{core.Level{Name: "WARN", Rank: 3}, ClassWarn},
		{core.Level{Name: "page", Rank: 0}, ClassError},
		{core.Level{Name: "heads-up", Rank: 1}, ClassWarn},
		{core.Level{Name: "chatter", Rank: 3}, ClassInfo},
		{core.Level{Name: "noise", Rank: 9}, ClassDebug},
	}
	for _, tt := range tests {
		t.Run(tt.level.Name, func(t *testing.T) {
			if got := Classify(tt.level); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestClass_String(t *testing.T) {
	tests := []struct {
		class Class
		want  string
	}{
		{ClassDebug, "DEBUG"},
		{ClassInfo, "INFO"},
		{ClassWarn, "WARN"},
		{ClassError, "ERROR"},
		{Class(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.class.String(); got != tt.want {
			t.Errorf("Class(%d).String() = %q, want %q", tt.class, got, tt.want)
		}
	}
}
