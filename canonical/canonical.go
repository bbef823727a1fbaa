package canonical

import (
	"go.bytecodealliance.org/wit"

	alignprobe "github.com/probelab/align-probe"
	"github.com/probelab/align-probe/errors"
	"github.com/probelab/align-probe/layout"
)

// WitRecord converts rec into a WIT record type. Every field must be
// naturally aligned: alignment equal to size, for sizes 1, 2, 4, or 8.
func WitRecord(rec *layout.Record) (*wit.TypeDef, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	fields := make([]wit.Field, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		t, err := witType(rec.Name, f)
		if err != nil {
			return nil, err
		}
		fields = append(fields, wit.Field{Name: f.Name, Type: t})
	}

	name := rec.Name
	return &wit.TypeDef{
		Name: &name,
		Kind: &wit.Record{Fields: fields},
	}, nil
}

func witType(record string, f layout.Field) (wit.Type, error) {
	if f.Align != f.Size {
		return nil, errors.New(errors.PhaseCanonical, errors.KindUnsupported).
			Record(record).
			Field(f.Name).
			Value(f.Align).
			Detail("the canonical ABI cannot express alignment %d on a %d-byte field", f.Align, f.Size).
			Build()
	}

	switch f.Size {
	case 1:
		return wit.U8{}, nil
	case 2:
		return wit.U16{}, nil
	case 4:
		return wit.U32{}, nil
	case 8:
		return wit.U64{}, nil
	}
	return nil, errors.New(errors.PhaseCanonical, errors.KindUnsupported).
		Record(record).
		Field(f.Name).
		Value(f.Size).
		Detail("no %d-byte canonical ABI primitive", f.Size).
		Build()
}

// Layout computes the Canonical ABI layout of a WIT type. Unknown types get
// the empty layout.
func Layout(t wit.Type) layout.Info {
	switch typ := t.(type) {
	case wit.Bool, wit.U8, wit.S8:
		return layout.Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return layout.Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return layout.Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return layout.Info{Size: 8, Align: 8}
	case *wit.TypeDef:
		return layoutTypeDef(typ)
	default:
		return layout.Info{Size: 0, Align: 1}
	}
}

func layoutTypeDef(t *wit.TypeDef) layout.Info {
	switch kind := t.Kind.(type) {
	case *wit.Record:
		return layoutRecord(kind)
	case wit.Type:
		return Layout(kind)
	default:
		return layout.Info{Size: 0, Align: 1}
	}
}

func layoutRecord(r *wit.Record) layout.Info {
	if len(r.Fields) == 0 {
		return layout.Info{Size: 0, Align: 1}
	}

	fieldOffs := make(map[string]uint32, len(r.Fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, field := range r.Fields {
		fl := Layout(field.Type)

		offset = alignprobe.AlignTo(offset, fl.Align)
		fieldOffs[field.Name] = offset

		if fl.Align > maxAlign {
			maxAlign = fl.Align
		}

		offset += fl.Size
	}

	return layout.Info{
		Size:      alignprobe.AlignTo(offset, maxAlign),
		Align:     maxAlign,
		FieldOffs: fieldOffs,
	}
}

// Mismatch is one disagreement between host and canonical layouts.
type Mismatch struct {
	What      string // "size", "align", or a field name
	Host      uint32
	Canonical uint32
}

// Result is the outcome of a cross-check.
type Result struct {
	Host       layout.Info
	Canonical  layout.Info
	Mismatches []Mismatch
}

// OK reports whether both layouts agree.
func (r *Result) OK() bool {
	return len(r.Mismatches) == 0
}

// CrossCheck computes rec's layout under both the host rules and the
// Canonical ABI and reports every disagreement. Records the canonical ABI
// cannot represent return an unsupported error instead.
func CrossCheck(rec *layout.Record) (*Result, error) {
	host, err := layout.NewCalculator().Calculate(rec)
	if err != nil {
		return nil, err
	}

	td, err := WitRecord(rec)
	if err != nil {
		return nil, err
	}
	canon := Layout(td)

	res := &Result{Host: host, Canonical: canon}
	if host.Size != canon.Size {
		res.Mismatches = append(res.Mismatches, Mismatch{What: "size", Host: host.Size, Canonical: canon.Size})
	}
	if host.Align != canon.Align {
		res.Mismatches = append(res.Mismatches, Mismatch{What: "align", Host: host.Align, Canonical: canon.Align})
	}
	for _, f := range rec.Fields {
		h := host.FieldOffs[f.Name]
		c := canon.FieldOffs[f.Name]
		if h != c {
			res.Mismatches = append(res.Mismatches, Mismatch{What: f.Name, Host: h, Canonical: c})
		}
	}

	return res, nil
}
