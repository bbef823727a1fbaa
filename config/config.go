package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/probelab/align-probe/errors"
	"github.com/probelab/align-probe/layout"
)

// specFile defines the structure of spec data to be parsed from a file.
type specFile struct {
	Records []recordSpec `yaml:"records"`
}

type recordSpec struct {
	Name   string      `yaml:"name"`
	Fields []fieldSpec `yaml:"fields"`
}

type fieldSpec struct {
	Name  string `yaml:"name"`
	Size  uint32 `yaml:"size"`
	Align uint32 `yaml:"align"`
}

// Parse decodes and validates a YAML probe spec.
func Parse(data []byte) ([]*layout.Record, error) {
	var spec specFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse spec")
	}

	if len(spec.Records) == 0 {
		return nil, errors.InvalidInput(errors.PhaseConfig, "spec defines no records")
	}

	seen := make(map[string]struct{}, len(spec.Records))
	records := make([]*layout.Record, 0, len(spec.Records))
	for _, rs := range spec.Records {
		if rs.Name == "" {
			return nil, errors.InvalidSpec(errors.PhaseConfig, "", "", "record with empty name")
		}
		if _, dup := seen[rs.Name]; dup {
			return nil, errors.InvalidSpec(errors.PhaseConfig, rs.Name, "", "duplicate record name")
		}
		seen[rs.Name] = struct{}{}

		rec := &layout.Record{Name: rs.Name, Fields: make([]layout.Field, 0, len(rs.Fields))}
		for _, fs := range rs.Fields {
			rec.Fields = append(rec.Fields, layout.Field{
				Name:  fs.Name,
				Size:  fs.Size,
				Align: fs.Align,
			})
		}

		if err := rec.Validate(); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// Load reads and parses a YAML probe spec from path.
func Load(path string) ([]*layout.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read spec file")
	}
	return Parse(data)
}
