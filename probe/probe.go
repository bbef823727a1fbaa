package probe

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	alignprobe "github.com/probelab/align-probe"
	"github.com/probelab/align-probe/layout"
	"github.com/probelab/align-probe/memalign"
)

// Options control probe arithmetic and allocation.
type Options struct {
	// Allocator places the record. Defaults to memalign.GoAllocator.
	Allocator alignprobe.Allocator

	// Trunc32 narrows the base address through a signed 32-bit integer
	// before taking the base moduli, matching the original diagnostic
	// bit-for-bit. Remainders can then be negative.
	Trunc32 bool
}

// FieldCheck is one field's observed placement.
type FieldCheck struct {
	Name      string
	Align     uint32
	Addr      uintptr
	Remainder uintptr
}

// OK reports whether the field landed on a conforming address.
func (fc FieldCheck) OK() bool {
	return fc.Remainder == 0
}

// baseMods are the moduli reported for the record base address.
var baseMods = [4]uint32{4, 8, 16, 32}

// BaseCheck is the record base address and its moduli 4, 8, 16, 32.
// Moduli are signed to accommodate Trunc32 arithmetic.
type BaseCheck struct {
	Addr uintptr
	Mods [4]int64
}

// Report is the outcome of probing one record.
type Report struct {
	Record string
	Fields []FieldCheck
	Base   BaseCheck
}

// OK reports whether every field satisfied its alignment requirement.
func (r *Report) OK() bool {
	for _, fc := range r.Fields {
		if !fc.OK() {
			return false
		}
	}
	return true
}

// ReportFieldAlignment writes one field line for addr: "align <N>: <rem>".
// The remainder is computed in pointer-width unsigned arithmetic.
func ReportFieldAlignment(w io.Writer, addr uintptr, align uint32) error {
	_, err := fmt.Fprintf(w, "align %d: %d\n", align, alignprobe.Remainder(addr, align))
	return err
}

// ReportBaseAlignment writes the base line for addr:
// "base align: <m4>, <m8>, <m16>, <m32>".
func ReportBaseAlignment(w io.Writer, addr uintptr, trunc32 bool) error {
	mods := baseRemainders(addr, trunc32)
	_, err := fmt.Fprintf(w, "base align: %d, %d, %d, %d\n", mods[0], mods[1], mods[2], mods[3])
	return err
}

func baseRemainders(addr uintptr, trunc32 bool) [4]int64 {
	var mods [4]int64
	if trunc32 {
		// The original stored the address in a signed 32-bit int, so
		// the moduli follow C truncated division on the low 32 bits.
		p := int32(uint32(addr))
		for i, m := range baseMods {
			mods[i] = int64(p % int32(m))
		}
		return mods
	}
	for i, m := range baseMods {
		mods[i] = int64(alignprobe.Remainder(addr, m))
	}
	return mods
}

// Run probes the classic stack-align record and writes its five-line report
// to w.
func Run(w io.Writer, opts Options) (*Report, error) {
	return Record(w, layout.StackAlignRecord(), opts)
}

// Record places rec at its computed alignment and reports each field's
// address modulo its requirement in declaration order, then the base moduli
// line. Misaligned fields are reported, never returned as errors.
func Record(w io.Writer, rec *layout.Record, opts Options) (*Report, error) {
	info, err := layout.NewCalculator().Calculate(rec)
	if err != nil {
		return nil, err
	}

	alloc := opts.Allocator
	if alloc == nil {
		alloc = memalign.NewGoAllocator()
	}

	block, err := alloc.Alloc(info.Size, info.Align)
	if err != nil {
		return nil, err
	}
	defer alloc.Free(block)

	base := memalign.Addr(block)
	Logger().Debug("record placed",
		zap.String("record", rec.Name),
		zap.Uint32("size", info.Size),
		zap.Uint32("align", info.Align),
		zap.Uint64("base", uint64(base)))

	report := &Report{
		Record: rec.Name,
		Fields: make([]FieldCheck, 0, len(rec.Fields)),
	}

	for _, f := range rec.Fields {
		addr := base + uintptr(info.FieldOffs[f.Name])
		fc := FieldCheck{
			Name:      f.Name,
			Align:     f.Align,
			Addr:      addr,
			Remainder: alignprobe.Remainder(addr, f.Align),
		}
		report.Fields = append(report.Fields, fc)

		if !fc.OK() {
			Logger().Warn("field misaligned",
				zap.String("record", rec.Name),
				zap.String("field", f.Name),
				zap.Uint32("align", f.Align),
				zap.Uint64("addr", uint64(addr)))
		}

		if w != nil {
			if err := ReportFieldAlignment(w, addr, f.Align); err != nil {
				return nil, err
			}
		}
	}

	report.Base = BaseCheck{
		Addr: base,
		Mods: baseRemainders(base, opts.Trunc32),
	}
	if w != nil {
		if err := ReportBaseAlignment(w, base, opts.Trunc32); err != nil {
			return nil, err
		}
	}

	return report, nil
}
