// Package config loads probe record specs from YAML files.
//
// A spec file lists records and their fields:
//
//	records:
//	  - name: stack-align
//	    fields:
//	      - {name: a4, size: 1, align: 4}
//	      - {name: a8, size: 1, align: 8}
//	      - {name: a16, size: 1, align: 16}
//	      - {name: a32, size: 1, align: 32}
//
// Records are validated with the layout rules on load, so a spec that parses
// cleanly is also probeable.
package config
