package wasmmem

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
)

func TestProbeLinearMemory(t *testing.T) {
	ctx := context.Background()

	report, err := ProbeLinearMemory(ctx, Config{})
	if err != nil {
		t.Fatalf("ProbeLinearMemory error: %v", err)
	}

	if report.Base == 0 {
		t.Error("base address is zero")
	}
	if report.SizeBytes != PageSize {
		t.Errorf("size: got %d, want %d", report.SizeBytes, PageSize)
	}

	for i, m := range memMods {
		want := report.Base % uintptr(m)
		if report.Mods[i] != want {
			t.Errorf("modulus %d: got %d, want %d", m, report.Mods[i], want)
		}
		if report.Mods[i] >= uintptr(m) {
			t.Errorf("modulus %d out of range: %d", m, report.Mods[i])
		}
	}
	if report.PageMod != report.Base%PageSize {
		t.Errorf("page modulus: got %d, want %d", report.PageMod, report.Base%PageSize)
	}
}

func TestProbeLinearMemory_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// wazero checks the context during instantiation; either outcome must
	// not panic, and a report implies a usable base.
	report, err := ProbeLinearMemory(ctx, Config{})
	if err == nil && report.Base == 0 {
		t.Error("nil error but zero base")
	}
}

func TestMemoryReport_WriteReport(t *testing.T) {
	report := &MemoryReport{
		Base:      0x10020,
		SizeBytes: PageSize,
		Mods:      [4]uintptr{0, 0, 0, 0},
		PageMod:   0x20,
	}

	var buf bytes.Buffer
	if err := report.WriteReport(&buf); err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("line count: got %d, want 6", len(lines))
	}
	if !strings.HasPrefix(lines[0], "wasm memory: 65536 bytes") {
		t.Errorf("header line: %q", lines[0])
	}

	fieldLine := regexp.MustCompile(`^align (4|8|16|32): \d+$`)
	for _, l := range lines[1:5] {
		if !fieldLine.MatchString(l) {
			t.Errorf("line %q does not match align pattern", l)
		}
	}
	if lines[5] != "page align: 32" {
		t.Errorf("page line: %q", lines[5])
	}
}

func TestMemoryReport_OK(t *testing.T) {
	ok := &MemoryReport{Mods: [4]uintptr{0, 0, 0, 0}, PageMod: 5}
	if !ok.OK() {
		t.Error("report with zero mods should be OK despite page remainder")
	}

	bad := &MemoryReport{Mods: [4]uintptr{0, 0, 0, 16}}
	if bad.OK() {
		t.Error("report with nonzero modulus should not be OK")
	}
}
