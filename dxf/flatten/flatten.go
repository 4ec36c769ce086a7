// Package flatten resolves DXF INSERT entities against their BLOCK
// definitions into plain primitives (spec.md §4.3, C5).
package flatten

import (
	"math"

	"github.com/viant/dxfcut/dxf/codec"
	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/dxf/walk"
	"github.com/viant/dxfcut/errs"
)

const opFlatten = "flatten.Flatten"

// supportedBlockChildren lists the entity kinds a BLOCK definition may
// contain (spec.md §4.3).
var supportedBlockChildren = map[string]bool{
	"LINE": true, "SPLINE": true, "POINT": true, "LWPOLYLINE": true,
}

type blockState int

const (
	untouched blockState = iota
	unfinished
	finished
)

// Flatten resolves every INSERT in the ENTITIES section (recursively,
// through nested block definitions) into transformed primitive
// entities, then empties the BLOCKS section (spec.md §4.3; "flatten
// idempotence", spec.md §8).
func Flatten(root *tree.Node) error {
	blocks := walk.FindSection(root, "BLOCKS")
	byName := map[string]*tree.Node{}
	if blocks != nil {
		for _, b := range blocks.Children {
			if b.Name == "BLOCK" {
				byName[b.GetString("name")] = b
			}
		}
	}

	entities := walk.FindSection(root, "ENTITIES")
	if entities != nil {
		state := map[string]blockState{}
		resolved, err := resolveInserts(entities.Children, byName, state)
		if err != nil {
			return err
		}
		entities.Children = resolved
	}

	if blocks != nil {
		blocks.Children = nil
	}
	return nil
}

// resolveInserts replaces every INSERT in children with its transformed
// primitives, recursing into referenced block definitions.
func resolveInserts(children []*tree.Node, blocks map[string]*tree.Node, state map[string]blockState) ([]*tree.Node, error) {
	out := make([]*tree.Node, 0, len(children))
	for _, n := range children {
		if n.Name != "INSERT" {
			out = append(out, n)
			continue
		}
		replaced, err := resolveInsert(n, blocks, state)
		if err != nil {
			return nil, err
		}
		out = append(out, replaced...)
	}
	return out, nil
}

func resolveInsert(ins *tree.Node, blocks map[string]*tree.Node, state map[string]blockState) ([]*tree.Node, error) {
	name := ins.GetString("name")
	block, ok := blocks[name]
	if !ok {
		return nil, errs.New(errs.InvalidArgument, opFlatten, "INSERT references unknown block %q", name)
	}
	if state[name] == unfinished {
		return nil, errs.New(errs.NotImplemented, opFlatten, "recursive block reference: %q inserts itself (directly or indirectly)", name)
	}
	if state[name] != finished {
		state[name] = unfinished
		local, err := resolveInserts(block.Children, blocks, state)
		if err != nil {
			return nil, err
		}
		for _, e := range local {
			if !supportedBlockChildren[e.Name] {
				return nil, errs.New(errs.NotImplemented, opFlatten, "block %q contains unsupported entity %s", name, e.Name)
			}
			if len(e.Children) > 0 {
				return nil, errs.New(errs.NotImplemented, opFlatten, "block %q entity %s has unexpected child nodes", name, e.Name)
			}
		}
		block.Children = local
		state[name] = finished
	}

	params, err := parseInsert(ins)
	if err != nil {
		return nil, err
	}
	anchorX, _ := tree.ParseFloat(opFlatten, orZero(block.GetString("x")))
	anchorY, _ := tree.ParseFloat(opFlatten, orZero(block.GetString("y")))

	var out []*tree.Node
	for row := 0; row < params.rows; row++ {
		for col := 0; col < params.cols; col++ {
			offsetX := params.x + float64(col)*params.colSpacing
			offsetY := params.y + float64(row)*params.rowSpacing
			for _, src := range block.Children {
				clone := src.Clone()
				if err := transformEntity(clone, anchorX, anchorY, params.xscale, params.yscale, params.rotationRad, offsetX, offsetY); err != nil {
					return nil, err
				}
				out = append(out, clone)
			}
		}
	}
	return out, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

type insertParams struct {
	x, y                 float64
	xscale, yscale       float64
	rotationRad          float64
	cols, rows           int
	colSpacing, rowSpacing float64
}

func parseInsert(ins *tree.Node) (insertParams, error) {
	p := insertParams{xscale: 1, yscale: 1, cols: 1, rows: 1}
	var err error
	if p.x, err = floatAttrDefault(ins, "x", 0); err != nil {
		return p, err
	}
	if p.y, err = floatAttrDefault(ins, "y", 0); err != nil {
		return p, err
	}
	if p.xscale, err = floatAttrDefault(ins, "float1", 1); err != nil {
		return p, err
	}
	if p.yscale, err = floatAttrDefault(ins, "float2", 1); err != nil {
		return p, err
	}
	rotDeg, err := floatAttrDefault(ins, "angle", 0)
	if err != nil {
		return p, err
	}
	p.rotationRad = rotDeg * math.Pi / 180
	if p.colSpacing, err = floatAttrDefault(ins, "float4", 0); err != nil {
		return p, err
	}
	if p.rowSpacing, err = floatAttrDefault(ins, "float5", 0); err != nil {
		return p, err
	}
	if ins.Has("int") {
		n, err := tree.ParseInt(opFlatten, ins.GetString("int"))
		if err != nil {
			return p, err
		}
		p.cols = n
	}
	if ins.Has("int1") {
		n, err := tree.ParseInt(opFlatten, ins.GetString("int1"))
		if err != nil {
			return p, err
		}
		p.rows = n
	}
	if p.cols < 1 {
		p.cols = 1
	}
	if p.rows < 1 {
		p.rows = 1
	}
	return p, nil
}

func floatAttrDefault(n *tree.Node, name string, def float64) (float64, error) {
	if !n.Has(name) {
		return def, nil
	}
	return tree.ParseFloat(opFlatten, n.GetString(name))
}

// transformEntity applies, per coordinate index present on n: subtract
// anchor, scale per axis, rotate (x,y), then translate by offset
// (spec.md §4.3). The rotation here is clockwise, not geom.Rotate's
// counter-clockwise convention: spec.md §8's worked INSERT example only
// reproduces under the clockwise matrix.
func transformEntity(n *tree.Node, anchorX, anchorY, xscale, yscale, rotRad, offsetX, offsetY float64) error {
	sin, cos := math.Sin(rotRad), math.Cos(rotRad)
	for i := 0; i <= 8; i++ {
		xName := codec.PointIndexName('x', i)
		yName := codec.PointIndexName('y', i)
		xv, xok := n.Get(xName)
		yv, yok := n.Get(yName)
		if !xok && !yok {
			continue
		}
		xs, ys := xv.Strings(), yv.Strings()
		count := len(xs)
		if len(ys) > count {
			count = len(ys)
		}
		newX := make([]string, 0, count)
		newY := make([]string, 0, count)
		for k := 0; k < count; k++ {
			var x, y float64
			var err error
			if k < len(xs) {
				if x, err = tree.ParseFloat(opFlatten, xs[k]); err != nil {
					return err
				}
			}
			if k < len(ys) {
				if y, err = tree.ParseFloat(opFlatten, ys[k]); err != nil {
					return err
				}
			}
			x = (x - anchorX) * xscale
			y = (y - anchorY) * yscale
			rx := x*cos + y*sin
			ry := -x*sin + y*cos
			newX = append(newX, formatFloat(rx+offsetX))
			newY = append(newY, formatFloat(ry+offsetY))
		}
		if xok {
			n.SetValue(xName, listOrScalar(newX))
		}
		if yok {
			n.SetValue(yName, listOrScalar(newY))
		}
	}
	return nil
}

func listOrScalar(ss []string) tree.Value {
	if len(ss) == 1 {
		return tree.Scalar(ss[0])
	}
	return tree.List(ss)
}

func formatFloat(f float64) string {
	return tree.FormatFloat(f)
}
