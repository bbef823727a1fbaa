package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	aperrors "github.com/probelab/align-probe/errors"
)

const goodSpec = `
records:
  - name: stack-align
    fields:
      - {name: a4, size: 1, align: 4}
      - {name: a8, size: 1, align: 8}
      - {name: a16, size: 1, align: 16}
      - {name: a32, size: 1, align: 32}
  - name: natural
    fields:
      - name: tag
        size: 1
        align: 1
      - name: seq
        size: 8
        align: 8
`

func TestParse(t *testing.T) {
	records, err := Parse([]byte(goodSpec))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("record count: got %d, want 2", len(records))
	}

	first := records[0]
	if first.Name != "stack-align" {
		t.Errorf("name: got %q", first.Name)
	}
	if len(first.Fields) != 4 {
		t.Fatalf("field count: got %d, want 4", len(first.Fields))
	}
	if f := first.Fields[3]; f.Name != "a32" || f.Size != 1 || f.Align != 32 {
		t.Errorf("field a32: got %+v", f)
	}

	second := records[1]
	if second.Fields[1].Align != 8 {
		t.Errorf("seq align: got %d, want 8", second.Fields[1].Align)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		wantKind aperrors.Kind
	}{
		{
			name:     "not_yaml",
			spec:     "records: [unclosed",
			wantKind: aperrors.KindInvalidInput,
		},
		{
			name:     "no_records",
			spec:     "records: []",
			wantKind: aperrors.KindInvalidInput,
		},
		{
			name: "empty_record_name",
			spec: `
records:
  - fields:
      - {name: x, size: 1, align: 1}
`,
			wantKind: aperrors.KindInvalidSpec,
		},
		{
			name: "duplicate_record",
			spec: `
records:
  - name: r
    fields: [{name: x, size: 1, align: 1}]
  - name: r
    fields: [{name: x, size: 1, align: 1}]
`,
			wantKind: aperrors.KindInvalidSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.spec))
			if err == nil {
				t.Fatal("Parse should have failed")
			}
			if !errors.Is(err, &aperrors.Error{Phase: aperrors.PhaseConfig, Kind: tt.wantKind}) {
				t.Errorf("error %v is not [config] %s", err, tt.wantKind)
			}
		})
	}
}

func TestParse_LayoutValidation(t *testing.T) {
	spec := `
records:
  - name: broken
    fields:
      - {name: x, size: 1, align: 12}
`
	_, err := Parse([]byte(spec))
	if err == nil {
		t.Fatal("Parse should reject non-power-of-two alignment")
	}
	if !errors.Is(err, &aperrors.Error{Phase: aperrors.PhaseLayout, Kind: aperrors.KindInvalidAlign}) {
		t.Errorf("error %v is not [layout] invalid_align", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(path, []byte(goodSpec), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("record count: got %d, want 2", len(records))
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load should fail for missing file")
	}
	if !errors.Is(err, &aperrors.Error{Phase: aperrors.PhaseConfig, Kind: aperrors.KindNotFound}) {
		t.Errorf("error %v is not [config] not_found", err)
	}
}
