package boildown

import (
	"math"

	"github.com/viant/dxfcut/dxf/codec"
	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/errs"
	"github.com/viant/dxfcut/geom"
)

const opConvert = "boildown.Convert"

// bezierSteps is the uniform subdivision count per 4-point Bezier
// segment (spec.md §4.4, SPLINE→LWPOLYLINE).
const bezierSteps = 20

func splineToLWPolyline(n *tree.Node, cfg *Config) ([]*tree.Node, error) {
	degree := 3
	if n.Has("int1") {
		d, err := tree.ParseInt(opConvert, n.GetString("int1"))
		if err != nil {
			return nil, err
		}
		degree = d
	}
	if degree != 3 {
		return nil, errs.New(errs.UnsupportedEntity, opConvert, "SPLINE degree %d not supported (only cubic splines boil down)", degree)
	}

	xs, ys := floatList(n, 'x'), floatList(n, 'y')
	if len(xs) != len(ys) || len(xs) < 4 {
		return nil, errs.New(errs.InvalidPolyline, opConvert, "SPLINE needs >=4 matching control points, got %d/%d", len(xs), len(ys))
	}

	var outX, outY []float64
	for i := 0; i+3 < len(xs); i += 3 {
		p0 := geom.Point{X: xs[i], Y: ys[i]}
		p1 := geom.Point{X: xs[i+1], Y: ys[i+1]}
		p2 := geom.Point{X: xs[i+2], Y: ys[i+2]}
		p3 := geom.Point{X: xs[i+3], Y: ys[i+3]}
		start := 0
		if i > 0 {
			start = 1 // skip duplicate shared endpoint with the previous segment
		}
		for step := start; step <= bezierSteps; step++ {
			t := float64(step) / float64(bezierSteps)
			pt := cubicBezier(p0, p1, p2, p3, t)
			outX = append(outX, pt.X)
			outY = append(outY, pt.Y)
		}
	}

	lw := tree.New("LWPOLYLINE")
	setFloatList(lw, 'x', outX)
	setFloatList(lw, 'y', outY)
	if isClosed(n) {
		lw.Set("int", "1")
	}
	return []*tree.Node{lw}, nil
}

func cubicBezier(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return geom.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

func polylineToLWPolyline(n *tree.Node, cfg *Config) ([]*tree.Node, error) {
	vertices := n.ChildrenNamed("VERTEX")
	if len(vertices) == 0 {
		return nil, errs.New(errs.InvalidPolyline, opConvert, "POLYLINE has no VERTEX children")
	}
	pts := make([]geom.Point, len(vertices))
	bulges := make([]float64, len(vertices))
	for i, v := range vertices {
		x, err := floatAttr(v, "x")
		if err != nil {
			return nil, err
		}
		y, err := floatAttr(v, "y")
		if err != nil {
			return nil, err
		}
		pts[i] = geom.Point{X: x, Y: y}
		if cfg.bulgeArcs && v.Has("float1") {
			if b, err := tree.ParseFloat(opConvert, v.GetString("float1")); err == nil {
				bulges[i] = b
			}
		}
	}

	closed := isClosed(n)
	var outX, outY []string
	appendPt := func(p geom.Point) {
		outX = append(outX, tree.FormatFloat(p.X))
		outY = append(outY, tree.FormatFloat(p.Y))
	}
	appendPt(pts[0])
	segments := len(pts) - 1
	if closed {
		segments = len(pts)
	}
	for i := 0; i < segments; i++ {
		j := (i + 1) % len(pts)
		if cfg.bulgeArcs && bulges[i] != 0 {
			for _, p := range bulgeArcPoints(pts[i], pts[j], bulges[i]) {
				appendPt(p)
			}
			continue
		}
		appendPt(pts[j])
	}

	lw := tree.New("LWPOLYLINE")
	lw.SetValue("x", listOrScalar(outX))
	lw.SetValue("y", listOrScalar(outY))
	if closed {
		lw.Set("int", "1")
	}
	return []*tree.Node{lw}, nil
}

// bulgeArcPoints expands a VERTEX bulge (§9 Open Question extension
// point) into sampled points from p0 to p1 (p0 excluded, p1 included),
// using the standard bulge = tan(included-angle/4) convention.
func bulgeArcPoints(p0, p1 geom.Point, bulge float64) []geom.Point {
	theta := 4 * math.Atan(bulge)
	chord := geom.Dist(p0, p1)
	if chord < 1e-12 || math.Abs(theta) < 1e-12 {
		return []geom.Point{p1}
	}
	radius := chord / (2 * math.Sin(theta/2))
	mid := geom.Lerp(p0, p1, 0.5)
	dir := p1.Sub(p0).Unit()
	perp := geom.Point{X: -dir.Y, Y: dir.X}
	sagitta := bulge * chord / 2
	center := mid.Add(perp.Scale(radius - sagitta))

	startAngle := p0.Sub(center).Angle()
	steps := int(math.Ceil(math.Abs(theta) * radius))
	if steps < 4 {
		steps = 4
	}
	points := make([]geom.Point, 0, steps)
	for i := 1; i <= steps; i++ {
		t := startAngle + theta*float64(i)/float64(steps)
		points = append(points, geom.Point{
			X: center.X + radius*math.Cos(t),
			Y: center.Y + radius*math.Sin(t),
		})
	}
	return points
}

func ellipseToLWPolyline(n *tree.Node, cfg *Config) ([]*tree.Node, error) {
	cx, err := floatAttr(n, "x")
	if err != nil {
		return nil, err
	}
	cy, err := floatAttr(n, "y")
	if err != nil {
		return nil, err
	}
	majorX, err := floatAttr(n, "x1")
	if err != nil {
		return nil, err
	}
	majorY, err := floatAttr(n, "y1")
	if err != nil {
		return nil, err
	}
	ratio, err := floatAttrDefault(n, "float", 1)
	if err != nil {
		return nil, err
	}
	start, err := floatAttrDefault(n, "float1", 0)
	if err != nil {
		return nil, err
	}
	end, err := floatAttrDefault(n, "float2", 2*math.Pi)
	if err != nil {
		return nil, err
	}
	end = geom.NormalizeAngle2Pi(end, start)

	r1 := math.Hypot(majorX, majorY)
	axisAngle := math.Atan2(majorY, majorX)
	r2 := r1 * ratio

	steps := int(math.Ceil((end - start) * r1))
	if steps < 20 {
		steps = 20
	}
	fullTurn := end-start >= 2*math.Pi-1e-9

	var xs, ys []string
	for i := 0; i <= steps; i++ {
		t := start + (end-start)*float64(i)/float64(steps)
		local := geom.Point{X: r1 * math.Cos(t), Y: r2 * math.Sin(t)}
		p := local.Rotate(axisAngle).Add(geom.Point{X: cx, Y: cy})
		xs = append(xs, tree.FormatFloat(p.X))
		ys = append(ys, tree.FormatFloat(p.Y))
	}

	lw := tree.New("LWPOLYLINE")
	lw.SetValue("x", listOrScalar(xs))
	lw.SetValue("y", listOrScalar(ys))
	if fullTurn {
		lw.Set("int", "1")
	}
	return []*tree.Node{lw}, nil
}

func lineToLWPolyline(n *tree.Node, cfg *Config) ([]*tree.Node, error) {
	lw := tree.New("LWPOLYLINE")
	lw.SetValue("x", tree.List([]string{n.GetString("x"), n.GetString("x1")}))
	lw.SetValue("y", tree.List([]string{n.GetString("y"), n.GetString("y1")}))
	return []*tree.Node{lw}, nil
}

func arcToEllipse(n *tree.Node, cfg *Config) ([]*tree.Node, error) {
	radius, err := floatAttr(n, "float")
	if err != nil {
		return nil, err
	}
	startDeg, err := floatAttrDefault(n, "angle", 0)
	if err != nil {
		return nil, err
	}
	endDeg, err := floatAttrDefault(n, "angle1", 360)
	if err != nil {
		return nil, err
	}

	e := tree.New("ELLIPSE")
	e.Set("x", n.GetString("x"))
	e.Set("y", n.GetString("y"))
	e.Set("x1", tree.FormatFloat(radius))
	e.Set("y1", "0")
	e.Set("float", "1")
	e.Set("float1", tree.FormatFloat(startDeg*math.Pi/180))
	e.Set("float2", tree.FormatFloat(endDeg*math.Pi/180))
	return []*tree.Node{e}, nil
}

func circleToArc(n *tree.Node, cfg *Config) ([]*tree.Node, error) {
	a := tree.New("ARC")
	a.Set("x", n.GetString("x"))
	a.Set("y", n.GetString("y"))
	a.Set("float", n.GetString("float"))
	a.Set("angle", "0")
	a.Set("angle1", "360")
	return []*tree.Node{a}, nil
}

func lwPolylineToLine(n *tree.Node, cfg *Config) ([]*tree.Node, error) {
	xs, ys := floatListStrings(n, 'x'), floatListStrings(n, 'y')
	if len(xs) != len(ys) || len(xs) < 1 {
		return nil, errs.New(errs.InvalidPolyline, opConvert, "LWPOLYLINE needs matching non-empty x/y arrays, got %d/%d", len(xs), len(ys))
	}
	var out []*tree.Node
	n1 := len(xs)
	last := n1 - 1
	if isClosed(n) {
		last = n1
	}
	for i := 0; i < last; i++ {
		j := (i + 1) % n1
		line := tree.New("LINE")
		line.Set("x", xs[i])
		line.Set("y", ys[i])
		line.Set("x1", xs[j])
		line.Set("y1", ys[j])
		out = append(out, line)
	}
	return out, nil
}

func isClosed(n *tree.Node) bool {
	if !n.Has("int") {
		return false
	}
	flags, err := tree.ParseInt(opConvert, n.GetString("int"))
	if err != nil {
		return false
	}
	return flags&1 != 0
}

func floatAttr(n *tree.Node, name string) (float64, error) {
	return tree.ParseFloat(opConvert, n.GetString(name))
}

func floatAttrDefault(n *tree.Node, name string, def float64) (float64, error) {
	if !n.Has(name) {
		return def, nil
	}
	return floatAttr(n, name)
}

func floatList(n *tree.Node, axis byte) []float64 {
	v, ok := n.Get(codec.PointIndexName(axis, 0))
	if !ok {
		return nil
	}
	ss := v.Strings()
	out := make([]float64, 0, len(ss))
	for _, s := range ss {
		f, err := tree.ParseFloat(opConvert, s)
		if err != nil {
			return nil
		}
		out = append(out, f)
	}
	return out
}

func floatListStrings(n *tree.Node, axis byte) []string {
	v, _ := n.Get(codec.PointIndexName(axis, 0))
	return v.Strings()
}

func setFloatList(n *tree.Node, axis byte, vals []float64) {
	ss := make([]string, len(vals))
	for i, f := range vals {
		ss[i] = tree.FormatFloat(f)
	}
	n.SetValue(codec.PointIndexName(axis, 0), listOrScalar(ss))
}

func listOrScalar(ss []string) tree.Value {
	if len(ss) == 1 {
		return tree.Scalar(ss[0])
	}
	return tree.List(ss)
}
