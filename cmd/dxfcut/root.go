package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dxfcut",
		Short:         "Convert 2D vector drawings between DXF, XML, CAMM-GL III and SVG",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDXF2CammCommand())
	root.AddCommand(newCamm2SVGCommand())
	root.AddCommand(newDXF2XMLCommand())
	root.AddCommand(newXML2DXFCommand())
	return root
}
