// Package extract pulls LWPOLYLINE geometry out of a DXF ENTITIES
// section into the uniform polyline list the post-processor and CAMM
// emitter operate on (spec.md §4.5, C6).
package extract

import (
	"github.com/viant/dxfcut/diag"
	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/dxf/walk"
	"github.com/viant/dxfcut/errs"
	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly"
)

const opExtract = "extract.Polylines"

// Polylines walks the ENTITIES section and materialises every
// LWPOLYLINE into a poly.Polyline. Any other entity kind found there is
// reported to diags and skipped — the pipeline guarantees none survive
// when Polylines runs after boil-down to POINT+LWPOLYLINE.
func Polylines(root *tree.Node, diags *diag.Collector) ([]poly.Polyline, error) {
	entities := walk.FindSection(root, "ENTITIES")
	if entities == nil {
		return nil, nil
	}
	var out []poly.Polyline
	for _, n := range entities.Children {
		switch n.Name {
		case "LWPOLYLINE":
			p, err := fromLWPolyline(n)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		case "POINT":
			// POINT entities carry no polyline geometry; they survive
			// boil-down as markers but contribute nothing to cutting.
			continue
		default:
			diags.Warnf(opExtract, "skipping unsupported entity %s in ENTITIES", n.Name)
		}
	}
	return out, nil
}

func fromLWPolyline(n *tree.Node) (poly.Polyline, error) {
	xv, xok := n.Get("x")
	yv, yok := n.Get("y")
	if !xok || !yok {
		return poly.Polyline{}, errs.New(errs.InvalidPolyline, opExtract, "LWPOLYLINE missing x or y array")
	}
	xs, ys := xv.Strings(), yv.Strings()
	if len(xs) != len(ys) {
		return poly.Polyline{}, errs.New(errs.InvalidPolyline, opExtract, "LWPOLYLINE x/y arrays differ in length: %d vs %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return poly.Polyline{}, errs.New(errs.InvalidPolyline, opExtract, "LWPOLYLINE has no points")
	}

	pts := make([]geom.Point, len(xs))
	for i := range xs {
		x, err := tree.ParseFloat(opExtract, xs[i])
		if err != nil {
			return poly.Polyline{}, err
		}
		y, err := tree.ParseFloat(opExtract, ys[i])
		if err != nil {
			return poly.Polyline{}, err
		}
		pts[i] = geom.Point{X: x, Y: y}
	}

	kind := poly.Open
	closed := false
	if n.Has("int") {
		flags, err := tree.ParseInt(opExtract, n.GetString("int"))
		if err != nil {
			return poly.Polyline{}, err
		}
		closed = flags&1 != 0
	}
	if closed {
		kind = poly.Closed
	}
	return poly.Polyline{Kind: kind, Points: pts}, nil
}
