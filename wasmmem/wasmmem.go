package wasmmem

import (
	"context"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"

	alignprobe "github.com/probelab/align-probe"
	"github.com/probelab/align-probe/errors"
	"github.com/probelab/align-probe/memalign"
)

// PageSize is the WebAssembly linear memory page size.
const PageSize = 65536

// probeWindow is how many bytes of linear memory the probe views. The base
// address is what matters; the window just has to be nonzero.
const probeWindow = 64

// minimalModule is a core wasm module with a single exported one-page
// memory: magic and version, a memory section, and an export section.
var minimalModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // \0asm
	0x01, 0x00, 0x00, 0x00, // version 1
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 memory, min 1 page
	0x07, 0x0a, 0x01, // export section: 1 export
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', // "memory"
	0x02, 0x00, // memory index 0
}

// memMods are the moduli reported for the linear memory base.
var memMods = [4]uint32{4, 8, 16, 32}

// MemoryReport describes where a wasm linear memory landed in host memory.
type MemoryReport struct {
	Base      uintptr
	SizeBytes uint32
	Mods      [4]uintptr // base modulo 4, 8, 16, 32
	PageMod   uintptr    // base modulo PageSize
}

// OK reports whether the base satisfies all small-power alignments. The page
// remainder is excluded; heap-backed memories rarely land on page bounds.
func (r *MemoryReport) OK() bool {
	for _, m := range r.Mods {
		if m != 0 {
			return false
		}
	}
	return true
}

// WriteReport writes the human-readable lines for the report.
func (r *MemoryReport) WriteReport(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "wasm memory: %d bytes at %#x\n", r.SizeBytes, r.Base); err != nil {
		return err
	}
	for i, m := range memMods {
		if _, err := fmt.Fprintf(w, "align %d: %d\n", m, r.Mods[i]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "page align: %d\n", r.PageMod)
	return err
}

// Config bounds the probe instance.
type Config struct {
	// MemoryLimitPages caps linear memory in 64 KiB pages. 0 means the
	// single page the probe module asks for.
	MemoryLimitPages uint32
}

// ProbeLinearMemory instantiates the probe module and reports the host
// placement of its linear memory. The runtime is torn down before return.
func ProbeLinearMemory(ctx context.Context, cfg Config) (*MemoryReport, error) {
	limit := cfg.MemoryLimitPages
	if limit == 0 {
		limit = 1
	}

	runtimeCfg := wazero.NewRuntimeConfig().WithMemoryLimitPages(limit)
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	defer rt.Close(ctx)

	mod, err := rt.Instantiate(ctx, minimalModule)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseWasm, errors.KindInvalidInput, err, "instantiate probe module")
	}

	mem := mod.Memory()
	if mem == nil {
		return nil, errors.NotFound(errors.PhaseWasm, "export", "memory")
	}

	view, ok := mem.Read(0, probeWindow)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseWasm, "memory smaller than probe window")
	}

	base := memalign.Addr(view)
	report := &MemoryReport{
		Base:      base,
		SizeBytes: mem.Size(),
		PageMod:   alignprobe.Remainder(base, PageSize),
	}
	for i, m := range memMods {
		report.Mods[i] = alignprobe.Remainder(base, m)
	}

	return report, nil
}
