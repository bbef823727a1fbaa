package alignprobe

// Allocator hands out blocks of host memory whose base address satisfies an
// explicit alignment requirement.
type Allocator interface {
	Alloc(size, align uint32) ([]byte, error)
	Free(b []byte)
}

// AlignTo rounds offset up to the next multiple of align. align must be a
// power of two; zero leaves offset unchanged.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// Remainder returns addr modulo align, computed in pointer-width unsigned
// arithmetic. align 0 yields 0.
func Remainder(addr uintptr, align uint32) uintptr {
	if align == 0 {
		return 0
	}
	return addr & uintptr(align-1)
}

// IsAligned reports whether addr is a multiple of align.
func IsAligned(addr uintptr, align uint32) bool {
	return Remainder(addr, align) == 0
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
