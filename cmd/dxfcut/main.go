// Command dxfcut converts 2D vector drawings between DXF, its XML
// mirror, CAMM-GL III cutter-plotter output, and SVG (spec.md §6). It
// is a thin Cobra wrapper around the dxf/*, poly, and camm/* packages —
// all the conversion logic lives there; this command only parses
// flags, wires the pipeline, and maps errors to exit codes.
package main

import (
	"fmt"
	"os"

	"github.com/viant/dxfcut/errs"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps an error to spec.md §6's CLI exit codes: 0 success
// (handled in run before this is reached), 2 bad usage, non-zero on
// I/O or malformed-input failures. An error that never passed through
// errs (a Cobra flag-parse failure, an unknown subcommand) is treated
// as bad usage too.
func exitCode(err error) int {
	switch {
	case errs.Is(err, errs.InvalidArgument):
		return 2
	case errs.Is(err, errs.IOError):
		return 3
	case errs.Is(err, errs.ParseError), errs.Is(err, errs.InvalidPolyline):
		return 4
	case errs.Is(err, errs.UnsupportedEntity), errs.Is(err, errs.NotImplemented):
		return 5
	case errs.Is(err, errs.DuplicateSection):
		return 6
	default:
		return 2
	}
}
