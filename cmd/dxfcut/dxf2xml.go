package main

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/viant/dxfcut/dxf/codec"
	"github.com/viant/dxfcut/dxf/xmltree"
	"github.com/viant/dxfcut/errs"
)

const opDXF2XML = "dxf2xml"

func newDXF2XMLCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dxf2xml [file]",
		Short: "Mirror a DXF group-code stream as XML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return runDXF2XML(cmd.Context(), input, output)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output file (default stdout)")
	return cmd
}

func runDXF2XML(ctx context.Context, input, output string) error {
	raw, err := readInput(ctx, input)
	if err != nil {
		return errs.Wrap(errs.IOError, opDXF2XML, err)
	}
	root, err := codec.Parse(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := xmltree.Marshal(&buf, root); err != nil {
		return err
	}
	if err := writeOutput(ctx, output, buf.Bytes()); err != nil {
		return errs.Wrap(errs.IOError, opDXF2XML, err)
	}
	return nil
}
