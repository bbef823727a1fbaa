package layout

import (
	alignprobe "github.com/probelab/align-probe"
	"github.com/probelab/align-probe/errors"
)

// Field is one member of a record: a block of Size bytes whose starting
// offset must be a multiple of Align.
type Field struct {
	Name  string
	Size  uint32
	Align uint32
}

// Record describes an in-memory record as an ordered list of fields.
type Record struct {
	Name   string
	Fields []Field
}

// Info is the computed layout of a record.
type Info struct {
	Size      uint32
	Align     uint32
	FieldOffs map[string]uint32
}

// MaxFieldAlign caps field alignment requests. Larger values are almost
// always spec typos and would force huge allocation slack.
const MaxFieldAlign = 1 << 16

// Validate checks that the record is well formed: at least one field, unique
// field names, nonzero sizes, and power-of-two alignments.
func (r *Record) Validate() error {
	if len(r.Fields) == 0 {
		return errors.InvalidSpec(errors.PhaseLayout, r.Name, "", "record has no fields")
	}

	seen := make(map[string]struct{}, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == "" {
			return errors.InvalidSpec(errors.PhaseLayout, r.Name, "", "field with empty name")
		}
		if _, dup := seen[f.Name]; dup {
			return errors.InvalidSpec(errors.PhaseLayout, r.Name, f.Name, "duplicate field name")
		}
		seen[f.Name] = struct{}{}

		if f.Size == 0 {
			return errors.InvalidSpec(errors.PhaseLayout, r.Name, f.Name, "field size is zero")
		}
		if !alignprobe.IsPowerOfTwo(f.Align) {
			return errors.InvalidAlign(errors.PhaseLayout, r.Name, f.Name, f.Align)
		}
		if f.Align > MaxFieldAlign {
			return errors.New(errors.PhaseLayout, errors.KindInvalidAlign).
				Record(r.Name).
				Field(f.Name).
				Value(f.Align).
				Detail("alignment %d exceeds maximum %d", f.Align, MaxFieldAlign).
				Build()
		}
	}
	return nil
}

// Calculator computes record layouts. Results are cached per record value.
type Calculator struct {
	cache map[*Record]Info
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*Record]Info),
	}
}

// Calculate validates the record and returns its layout.
func (c *Calculator) Calculate(r *Record) (Info, error) {
	if cached, ok := c.cache[r]; ok {
		return cached, nil
	}

	if err := r.Validate(); err != nil {
		return Info{}, err
	}

	fieldOffs := make(map[string]uint32, len(r.Fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, f := range r.Fields {
		offset = alignprobe.AlignTo(offset, f.Align)
		fieldOffs[f.Name] = offset

		if f.Align > maxAlign {
			maxAlign = f.Align
		}

		offset += f.Size
	}

	info := Info{
		Size:      alignprobe.AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}

	c.cache[r] = info
	return info, nil
}

// StackAlignRecord returns the record the classic probe exercises: four
// one-byte fields requiring 4, 8, 16, and 32 byte alignment.
func StackAlignRecord() *Record {
	return &Record{
		Name: "stack-align",
		Fields: []Field{
			{Name: "a4", Size: 1, Align: 4},
			{Name: "a8", Size: 1, Align: 8},
			{Name: "a16", Size: 1, Align: 16},
			{Name: "a32", Size: 1, Align: 32},
		},
	}
}
