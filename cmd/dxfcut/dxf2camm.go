package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/dxfcut/camm/emit"
	"github.com/viant/dxfcut/diag"
	"github.com/viant/dxfcut/dxf/boildown"
	"github.com/viant/dxfcut/dxf/codec"
	"github.com/viant/dxfcut/dxf/extract"
	"github.com/viant/dxfcut/dxf/flatten"
	"github.com/viant/dxfcut/dxf/walk"
	"github.com/viant/dxfcut/errs"
	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly"
)

const opDXF2Camm = "dxf2camm"

// toReplace lists every DXF entity kind the boil-down graph can rewrite
// into a cuttable LWPOLYLINE; any kind not listed here and not already
// LWPOLYLINE is left untouched and later skipped by extract.Polylines,
// which reports every such kind except POINT.
var toReplace = []string{"SPLINE", "POLYLINE", "ELLIPSE", "LINE", "ARC", "CIRCLE"}

type dxf2CammFlags struct {
	output          string
	offset          float64
	offsetlessStart bool
	bbox            float64
	alignKnife      bool
	overlap         float64
	raw             bool
	relative        bool
	epsilon         float64
	shortLine       float64
	smallAngle      float64
	coarsify        float64
	combine         bool
	combineCycles   bool
	combineReverse  bool
	translate       string
	scale           float64
	sort            string
}

func newDXF2CammCommand() *cobra.Command {
	f := &dxf2CammFlags{combine: true, alignKnife: true, epsilon: 1e-6, smallAngle: 1, shortLine: 0.5}
	cmd := &cobra.Command{
		Use:   "dxf2camm [file]",
		Short: "Convert a DXF drawing to CAMM-GL III cutter-plotter commands",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return runDXF2Camm(cmd.Context(), input, f)
		},
	}
	bindDXF2CammFlags(cmd, f)
	return cmd
}

func bindDXF2CammFlags(cmd *cobra.Command, f *dxf2CammFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.output, "output", "", "output file (default stdout)")
	flags.Float64Var(&f.offset, "offset", 0, "knife offset in mm")
	flags.BoolVar(&f.offsetlessStart, "offsetless-start", false, "skip pen pre-positioning on the job's first cut")
	flags.Float64Var(&f.bbox, "bbox", 0, "margin in mm for an enclosing frame cut (0 disables)")
	flags.BoolVar(&f.alignKnife, "align-knife", true, "prepend a calibration mark")
	flags.Float64Var(&f.overlap, "overlap", 0, "overlap length in mm for closed cuts")
	flags.BoolVar(&f.raw, "raw", false, "suppress header/footer commands")
	flags.BoolVar(&f.relative, "relative", false, "emit relative coordinates instead of absolute")
	flags.Float64Var(&f.epsilon, "epsilon", 1e-6, "fuzzy-stitching distance tolerance")
	flags.Float64Var(&f.shortLine, "shortline", 0.5, "segment length; a turn emits no arc when its segment is at most this long and its angle at most --smallangle")
	flags.Float64Var(&f.smallAngle, "smallangle", 1, "turn angle in degrees; a turn emits no arc when its angle is at most this and its segment at most --shortline")
	flags.Float64Var(&f.coarsify, "coarsify", 0, "drop interior points closer than this distance (0 disables)")
	flags.BoolVar(&f.combine, "combine", true, "stitch touching polylines together")
	flags.BoolVar(&f.combineCycles, "combine-cycles", false, "also splice surviving closed cycles that share an endpoint")
	flags.BoolVar(&f.combineReverse, "combine-reverse", false, "allow reversed-endpoint joins while stitching")
	flags.StringVar(&f.translate, "translate", "", "translate all geometry by x,y mm")
	flags.Float64Var(&f.scale, "scale", 1, "uniform scale factor")
	flags.StringVar(&f.sort, "sort", "", "cutting-order criteria, e.g. left-asc,box")
}

func runDXF2Camm(ctx context.Context, input string, f *dxf2CammFlags) error {
	raw, err := readInput(ctx, input)
	if err != nil {
		return errs.Wrap(errs.IOError, opDXF2Camm, err)
	}

	root, err := codec.Parse(bytes.NewReader(raw))
	if err != nil {
		return err
	}
	walk.Canonicalize(root)
	if err := flatten.Flatten(root); err != nil {
		return err
	}
	if err := boildown.BoilDown(root, []string{"LWPOLYLINE"}, toReplace); err != nil {
		return err
	}

	diags := &diag.Collector{}
	pls, err := extract.Polylines(root, diags)
	if err != nil {
		return err
	}

	pls, err = transformPolylines(pls, f)
	if err != nil {
		return err
	}

	emitOpts := []emit.Option{
		emit.WithKnifeOffset(f.offset), emit.WithEpsilon(f.epsilon),
		emit.WithShortLine(f.shortLine), emit.WithSmallAngle(f.smallAngle * math.Pi / 180),
	}
	if f.offsetlessStart {
		emitOpts = append(emitOpts, emit.WithOffsetlessStart())
	}
	var buf bytes.Buffer
	e := emit.New(&buf, emitOpts...)

	if !f.raw {
		e.Header()
	}
	emitPolylines(e, pls, f)
	if !f.raw {
		e.Footer()
	}
	if err := e.Flush(); err != nil {
		return errs.Wrap(errs.IOError, opDXF2Camm, err)
	}

	for _, entry := range diags.Entries {
		fmt.Fprintln(os.Stderr, entry.String())
	}

	if err := writeOutput(ctx, f.output, buf.Bytes()); err != nil {
		return errs.Wrap(errs.IOError, opDXF2Camm, err)
	}
	return nil
}

// transformPolylines applies every geometry-shaping flag in the order
// spec.md §4.6 fixes for the post-processor stages: stitch, then
// translate+scale, then coarsen, then bounding boxes, then sort, then
// prepend the calibration mark, then append the bbox frame, then
// append overlap last — so overlap also applies to the closed bbox
// frame just added; the calibration mark is open, and AddOverlap passes
// it through unchanged.
func transformPolylines(pls []poly.Polyline, f *dxf2CammFlags) ([]poly.Polyline, error) {
	if f.combine {
		pls = poly.Stitch(pls, poly.StitchOptions{
			Epsilon:        f.epsilon,
			JoinCycles:     f.combineCycles,
			ReverseAllowed: f.combineReverse,
		})
	}
	if f.translate != "" {
		dx, dy, err := parseXY(f.translate)
		if err != nil {
			return nil, errs.New(errs.InvalidArgument, opDXF2Camm, "bad --translate value %q: %v", f.translate, err)
		}
		pls = poly.Translate(pls, dx, dy)
	}
	if f.scale != 1 {
		pls = poly.Scale(pls, f.scale)
	}
	if f.coarsify > 0 {
		pls = poly.Coarsen(pls, f.coarsify)
	}

	bbox := poly.Union(poly.BBoxes(pls))
	if f.sort != "" {
		criteria, err := poly.ParseCriteria(f.sort)
		if err != nil {
			return nil, err
		}
		bboxes := poly.BBoxes(pls)
		pls, _ = poly.Sort(pls, bboxes, criteria, f.epsilon)
	}
	if f.alignKnife && bbox.Valid {
		pls = append([]poly.Polyline{poly.Calibration(bbox, f.bbox)}, pls...)
	}
	if f.bbox > 0 && bbox.Valid {
		pls = append(pls, poly.Frame(bbox, f.bbox))
	}
	if f.overlap > 0 {
		pls = poly.AddOverlap(pls, f.overlap)
	}
	return pls, nil
}

// emitPolylines drives the emitter: absolute cuts go through a
// KnifeCompensator (a no-op pass-through when offset is zero);
// --relative instead emits a chain of relative moves from the same
// point sequence, a path knife-offset compensation doesn't cover since
// compensation is defined against the device's absolute heading.
func emitPolylines(e *emit.Emitter, pls []poly.Polyline, f *dxf2CammFlags) {
	if f.relative {
		var pos geom.Point
		for _, p := range pls {
			pos = emitRelative(e, p, pos)
		}
		return
	}
	kc := emit.NewKnifeCompensator(e, f.offset, f.epsilon, f.smallAngle*math.Pi/180, f.shortLine, f.offsetlessStart)
	for _, p := range pls {
		kc.EmitPolyline(p)
	}
}

func emitRelative(e *emit.Emitter, p poly.Polyline, pos geom.Point) geom.Point {
	if len(p.Points) == 0 {
		return pos
	}
	cur := p.Points[0]
	e.MoveToRelative(geom.Point{X: cur.X - pos.X, Y: cur.Y - pos.Y})
	for _, next := range p.Points[1:] {
		d := geom.Point{X: next.X - cur.X, Y: next.Y - cur.Y}
		e.LineToRelative(d)
		cur = next
	}
	return cur
}

func parseXY(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected x,y")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
