package layout

import (
	"errors"
	"testing"
	"unsafe"

	aperrors "github.com/probelab/align-probe/errors"
)

type header struct {
	Tag   uint8
	Seq   uint64
	Count uint32
}

func TestInspect(t *testing.T) {
	var h header
	info, err := Inspect(h)
	if err != nil {
		t.Fatalf("Inspect error: %v", err)
	}

	if info.Name != "header" {
		t.Errorf("name: got %q, want %q", info.Name, "header")
	}
	if info.Size != unsafe.Sizeof(h) {
		t.Errorf("size: got %d, want %d", info.Size, unsafe.Sizeof(h))
	}
	if info.Align != unsafe.Alignof(h) {
		t.Errorf("align: got %d, want %d", info.Align, unsafe.Alignof(h))
	}

	wantOffs := map[string]uintptr{
		"Tag":   unsafe.Offsetof(h.Tag),
		"Seq":   unsafe.Offsetof(h.Seq),
		"Count": unsafe.Offsetof(h.Count),
	}
	if len(info.Fields) != len(wantOffs) {
		t.Fatalf("field count: got %d, want %d", len(info.Fields), len(wantOffs))
	}
	for _, f := range info.Fields {
		if want, ok := wantOffs[f.Name]; !ok || f.Offset != want {
			t.Errorf("offset of %s: got %d, want %d", f.Name, f.Offset, want)
		}
	}
}

func TestInspect_Pointer(t *testing.T) {
	info, err := Inspect(&header{})
	if err != nil {
		t.Fatalf("Inspect error: %v", err)
	}
	if info.Name != "header" {
		t.Errorf("name: got %q, want %q", info.Name, "header")
	}
}

func TestInspect_Invalid(t *testing.T) {
	for _, v := range []any{nil, 42, "text", []int{1}} {
		_, err := Inspect(v)
		if err == nil {
			t.Errorf("Inspect(%v) should have failed", v)
			continue
		}
		if !errors.Is(err, &aperrors.Error{Phase: aperrors.PhaseLayout, Kind: aperrors.KindInvalidInput}) {
			t.Errorf("Inspect(%v): error %v is not [layout] invalid_input", v, err)
		}
	}
}

func TestCheckAtomicAlignment(t *testing.T) {
	type counters struct {
		Ops   uint64
		Errs  uint64
		Flags uint32
	}

	misaligned, err := CheckAtomicAlignment(counters{})
	if err != nil {
		t.Fatalf("CheckAtomicAlignment error: %v", err)
	}
	if len(misaligned) != 0 {
		t.Errorf("leading uint64 fields reported misaligned: %+v", misaligned)
	}

	// Cross-check against the raw offsets: the function must flag exactly
	// the 8-byte fields at offsets not divisible by 8 on this platform.
	info, err := Inspect(header{})
	if err != nil {
		t.Fatalf("Inspect error: %v", err)
	}
	var want int
	for _, f := range info.Fields {
		if f.Size == 8 && f.Offset%8 != 0 {
			want++
		}
	}
	got, err := CheckAtomicAlignment(header{})
	if err != nil {
		t.Fatalf("CheckAtomicAlignment error: %v", err)
	}
	if len(got) != want {
		t.Errorf("misaligned count: got %d, want %d", len(got), want)
	}
}
