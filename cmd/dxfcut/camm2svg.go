package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/dxfcut/camm/parse"
	"github.com/viant/dxfcut/camm/svgrender"
	"github.com/viant/dxfcut/diag"
	"github.com/viant/dxfcut/errs"
)

const opCamm2SVG = "camm2svg"

type camm2SVGFlags struct {
	output string
	split  bool
	pages  bool
}

func newCamm2SVGCommand() *cobra.Command {
	f := &camm2SVGFlags{}
	cmd := &cobra.Command{
		Use:   "camm2svg [file]",
		Short: "Render CAMM-GL III commands to SVG, for verifying dxf2camm output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return runCamm2SVG(cmd.Context(), input, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.output, "output", "", "output file (default stdout; with --split-pages, a %d placeholder is required)")
	flags.BoolVar(&f.split, "split", false, "color each pen-up-delimited path by cutting order")
	flags.BoolVar(&f.pages, "split-pages", false, "start a new SVG document on every !PG page feed")
	return cmd
}

func runCamm2SVG(ctx context.Context, input string, f *camm2SVGFlags) error {
	raw, err := readInput(ctx, input)
	if err != nil {
		return errs.Wrap(errs.IOError, opCamm2SVG, err)
	}

	diags := &diag.Collector{}
	var badSpans []string
	toks := parse.Tokenize(string(raw), func(s string) { badSpans = append(badSpans, s) })
	for _, s := range badSpans {
		diags.Warnf(opCamm2SVG, "unparseable input %q", s)
	}

	var opts []svgrender.Option
	if f.split {
		opts = append(opts, svgrender.WithSplit())
	}
	if f.pages {
		opts = append(opts, svgrender.WithPageBreaks())
	}
	r := svgrender.New(diags, opts...)
	for _, tok := range toks {
		r.Handle(tok)
	}

	for _, entry := range diags.Entries {
		fmt.Fprintln(os.Stderr, entry.String())
	}

	docs := r.Documents()
	if len(docs) == 1 {
		return writeOutput(ctx, f.output, []byte(docs[0]))
	}
	for i, doc := range docs {
		path := f.output
		if path != "" {
			path = strings.Replace(path, "%d", fmt.Sprintf("%d", i), 1)
		}
		if err := writeOutput(ctx, path, []byte(doc)); err != nil {
			return errs.Wrap(errs.IOError, opCamm2SVG, err)
		}
	}
	return nil
}
