package alignprobe

import "testing"

func TestAlignTo(t *testing.T) {
	tests := []struct {
		name   string
		offset uint32
		align  uint32
		want   uint32
	}{
		{"zero_align", 13, 0, 13},
		{"already_aligned", 16, 8, 16},
		{"round_up", 1, 8, 8},
		{"round_up_32", 33, 32, 64},
		{"align_one", 7, 1, 7},
		{"zero_offset", 0, 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignTo(tt.offset, tt.align); got != tt.want {
				t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
			}
		})
	}
}

func TestAlignTo_Idempotent(t *testing.T) {
	for _, align := range []uint32{1, 2, 4, 8, 16, 32, 64} {
		for offset := uint32(0); offset < 100; offset++ {
			once := AlignTo(offset, align)
			if twice := AlignTo(once, align); twice != once {
				t.Fatalf("AlignTo not idempotent: align %d offset %d: %d then %d", align, offset, once, twice)
			}
			if once < offset {
				t.Fatalf("AlignTo moved offset backwards: align %d offset %d -> %d", align, offset, once)
			}
		}
	}
}

func TestRemainder(t *testing.T) {
	tests := []struct {
		name  string
		addr  uintptr
		align uint32
		want  uintptr
	}{
		{"aligned", 64, 32, 0},
		{"off_by_three", 35, 32, 3},
		{"align_zero", 99, 0, 0},
		{"align_one", 99, 1, 0},
		{"mod_four", 7, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remainder(tt.addr, tt.align); got != tt.want {
				t.Errorf("Remainder(%d, %d) = %d, want %d", tt.addr, tt.align, got, tt.want)
			}
			wantOK := tt.want == 0
			if got := IsAligned(tt.addr, tt.align); got != wantOK {
				t.Errorf("IsAligned(%d, %d) = %v, want %v", tt.addr, tt.align, got, wantOK)
			}
		})
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []uint32{1, 2, 4, 8, 16, 32, 1 << 30} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range []uint32{0, 3, 6, 12, 33, 1<<30 + 1} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", n)
		}
	}
}
