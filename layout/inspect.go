package layout

import (
	"reflect"

	"github.com/probelab/align-probe/errors"
)

// StructField is the observed layout of one field of a native Go struct.
type StructField struct {
	Name   string
	Type   string
	Offset uintptr
	Size   uintptr
	Align  uintptr
}

// StructInfo is the observed layout of a native Go struct type.
type StructInfo struct {
	Name   string
	Size   uintptr
	Align  uintptr
	Fields []StructField
}

// Inspect reports the layout the Go compiler chose for v's struct type.
// v may be a struct value or a pointer to one.
func Inspect(v any) (*StructInfo, error) {
	if v == nil {
		return nil, errors.InvalidInput(errors.PhaseLayout, "cannot inspect nil value")
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseLayout, errors.KindInvalidInput).
			Detail("cannot inspect %s, want struct", t.Kind()).
			Build()
	}

	info := &StructInfo{
		Name:   t.Name(),
		Size:   t.Size(),
		Align:  uintptr(t.Align()),
		Fields: make([]StructField, 0, t.NumField()),
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		info.Fields = append(info.Fields, StructField{
			Name:   f.Name,
			Type:   f.Type.String(),
			Offset: f.Offset,
			Size:   f.Type.Size(),
			Align:  uintptr(f.Type.FieldAlign()),
		})
	}

	return info, nil
}

// CheckAtomicAlignment returns the 8-byte fields of v's struct type whose
// offsets are not 8-aligned. On 32-bit platforms sync/atomic requires the
// caller to guarantee 64-bit alignment of such fields, so any result here is
// a latent crash on those platforms.
func CheckAtomicAlignment(v any) ([]StructField, error) {
	info, err := Inspect(v)
	if err != nil {
		return nil, err
	}

	var misaligned []StructField
	for _, f := range info.Fields {
		if f.Size == 8 && f.Offset%8 != 0 {
			misaligned = append(misaligned, f)
		}
	}
	return misaligned, nil
}
