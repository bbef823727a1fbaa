package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/probelab/align-probe/canonical"
	"github.com/probelab/align-probe/config"
	"github.com/probelab/align-probe/layout"
	"github.com/probelab/align-probe/probe"
	"github.com/probelab/align-probe/wasmmem"
)

func main() {
	var (
		specFile    = flag.String("spec", "", "Path to YAML record spec (default: builtin stack-align record)")
		trunc32     = flag.Bool("trunc32", false, "Narrow the base address through a signed 32-bit int, matching the original diagnostic")
		wasmProbe   = flag.Bool("wasm", false, "Probe the host placement of wazero linear memory")
		layoutOnly  = flag.Bool("layout", false, "Print record layouts without probing")
		crossCheck  = flag.Bool("canonical", false, "Cross-check record layouts against the canonical ABI")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging to stderr")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		probe.SetLogger(logger)
	}

	records, err := loadRecords(*specFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, records, *wasmProbe, *layoutOnly, *crossCheck, *trunc32); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadRecords(specFile string) ([]*layout.Record, error) {
	if specFile == "" {
		return []*layout.Record{layout.StackAlignRecord()}, nil
	}
	return config.Load(specFile)
}

func run(w io.Writer, records []*layout.Record, wasmProbe, layoutOnly, crossCheck, trunc32 bool) error {
	if wasmProbe {
		report, err := wasmmem.ProbeLinearMemory(context.Background(), wasmmem.Config{})
		if err != nil {
			return fmt.Errorf("wasm probe: %w", err)
		}
		return report.WriteReport(w)
	}

	if layoutOnly {
		return printLayouts(w, records)
	}

	if crossCheck {
		return printCrossChecks(w, records)
	}

	opts := probe.Options{Trunc32: trunc32}
	for i, rec := range records {
		if len(records) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "record %s:\n", rec.Name)
		}
		if _, err := probe.Record(w, rec, opts); err != nil {
			return fmt.Errorf("probe %s: %w", rec.Name, err)
		}
	}
	return nil
}

func printLayouts(w io.Writer, records []*layout.Record) error {
	calc := layout.NewCalculator()
	for i, rec := range records {
		if i > 0 {
			fmt.Fprintln(w)
		}
		info, err := calc.Calculate(rec)
		if err != nil {
			return fmt.Errorf("layout %s: %w", rec.Name, err)
		}
		fmt.Fprintf(w, "record %s: size %d, align %d\n", rec.Name, info.Size, info.Align)
		for _, f := range rec.Fields {
			fmt.Fprintf(w, "  %-12s offset %-4d size %-4d align %d\n", f.Name, info.FieldOffs[f.Name], f.Size, f.Align)
		}
	}
	return nil
}

func printCrossChecks(w io.Writer, records []*layout.Record) error {
	for _, rec := range records {
		res, err := canonical.CrossCheck(rec)
		if err != nil {
			fmt.Fprintf(w, "record %s: %v\n", rec.Name, err)
			continue
		}
		if res.OK() {
			fmt.Fprintf(w, "record %s: host and canonical ABI layouts agree (size %d, align %d)\n",
				rec.Name, res.Host.Size, res.Host.Align)
			continue
		}

		fmt.Fprintf(w, "record %s: layouts disagree\n", rec.Name)
		mismatches := append([]canonical.Mismatch(nil), res.Mismatches...)
		sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].What < mismatches[j].What })
		for _, m := range mismatches {
			fmt.Fprintf(w, "  %-12s host %-4d canonical %d\n", m.What, m.Host, m.Canonical)
		}
	}
	return nil
}
