package main

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/viant/dxfcut/dxf/codec"
	"github.com/viant/dxfcut/dxf/xmltree"
	"github.com/viant/dxfcut/errs"
)

const opXML2DXF = "xml2dxf"

func newXML2DXFCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "xml2dxf [file]",
		Short: "Convert the XML mirror format back to a DXF group-code stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return runXML2DXF(cmd.Context(), input, output)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output file (default stdout)")
	return cmd
}

func runXML2DXF(ctx context.Context, input, output string) error {
	raw, err := readInput(ctx, input)
	if err != nil {
		return errs.Wrap(errs.IOError, opXML2DXF, err)
	}
	root, err := xmltree.Unmarshal(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := codec.Emit(&buf, root); err != nil {
		return err
	}
	if err := writeOutput(ctx, output, buf.Bytes()); err != nil {
		return errs.Wrap(errs.IOError, opXML2DXF, err)
	}
	return nil
}
