// Package poly implements the polyline post-processor (spec.md §4.6,
// C7): the fuzzy endpoint stitcher, coarsener, overlap and calibration
// shapes, bounding-box computation, and partial sort that sit between
// the DXF polyline extractor and the CAMM-GL emitter's knife-offset
// compensation.
package poly

import "github.com/viant/dxfcut/geom"

// Kind distinguishes an open path from one whose last point is meant
// to coincide with its first.
type Kind int

const (
	Open Kind = iota
	Closed
)

// Polyline is the uniform geometry unit the pipeline passes between
// extraction, post-processing and emission.
type Polyline struct {
	Kind   Kind
	Points []geom.Point
}

// Start returns the first point. Callers must not call it on an empty
// Polyline; none of the pipeline's stages ever produce one.
func (p Polyline) Start() geom.Point { return p.Points[0] }

// End returns the last point.
func (p Polyline) End() geom.Point { return p.Points[len(p.Points)-1] }

// Length sums the Euclidean length of every segment.
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += geom.Dist(p.Points[i-1], p.Points[i])
	}
	return total
}

// Reversed returns a copy with point order flipped; used by the
// stitcher's reverse-allowed joins.
func (p Polyline) Reversed() Polyline {
	out := make([]geom.Point, len(p.Points))
	for i, pt := range p.Points {
		out[len(p.Points)-1-i] = pt
	}
	return Polyline{Kind: p.Kind, Points: out}
}

// Clone deep-copies the point slice.
func (p Polyline) Clone() Polyline {
	out := make([]geom.Point, len(p.Points))
	copy(out, p.Points)
	return Polyline{Kind: p.Kind, Points: out}
}

// Translate shifts every polyline by (dx,dy), in place on copies.
func Translate(pls []Polyline, dx, dy float64) []Polyline {
	out := make([]Polyline, len(pls))
	for i, p := range pls {
		c := p.Clone()
		for j := range c.Points {
			c.Points[j].X += dx
			c.Points[j].Y += dy
		}
		out[i] = c
	}
	return out
}

// Scale multiplies every coordinate by s, in place on copies.
func Scale(pls []Polyline, s float64) []Polyline {
	out := make([]Polyline, len(pls))
	for i, p := range pls {
		c := p.Clone()
		for j := range c.Points {
			c.Points[j].X *= s
			c.Points[j].Y *= s
		}
		out[i] = c
	}
	return out
}

// Coarsen drops interior points whose squared distance to the
// previously retained point is below threshold². Endpoints are always
// retained (spec.md §4.6).
func Coarsen(pls []Polyline, threshold float64) []Polyline {
	thresholdSq := threshold * threshold
	out := make([]Polyline, 0, len(pls))
	for _, p := range pls {
		if len(p.Points) <= 2 {
			out = append(out, p.Clone())
			continue
		}
		kept := make([]geom.Point, 0, len(p.Points))
		kept = append(kept, p.Points[0])
		last := p.Points[0]
		for i := 1; i < len(p.Points)-1; i++ {
			if geom.DistSq(last, p.Points[i]) < thresholdSq {
				continue
			}
			kept = append(kept, p.Points[i])
			last = p.Points[i]
		}
		kept = append(kept, p.Points[len(p.Points)-1])
		out = append(out, Polyline{Kind: p.Kind, Points: kept})
	}
	return out
}

// AddOverlap reopens every closed polyline and appends a prefix of its
// own path so the appended length is >= overlap, cutting the final
// segment parametrically when the exact length falls mid-segment
// (spec.md §4.6). Open polylines pass through unchanged.
func AddOverlap(pls []Polyline, overlap float64) []Polyline {
	if overlap <= 0 {
		return pls
	}
	out := make([]Polyline, len(pls))
	for i, p := range pls {
		if p.Kind != Closed || len(p.Points) < 2 {
			out[i] = p
			continue
		}
		pts := make([]geom.Point, len(p.Points))
		copy(pts, p.Points)

		var remaining = overlap
		idx := 0
		for remaining > 0 {
			a := pts[idx%len(p.Points)]
			b := pts[(idx+1)%len(p.Points)]
			seg := geom.Dist(a, b)
			if seg >= remaining {
				t := remaining / seg
				pts = append(pts, geom.Lerp(a, b, t))
				remaining = 0
				break
			}
			pts = append(pts, b)
			remaining -= seg
			idx++
		}
		out[i] = Polyline{Kind: Open, Points: pts}
	}
	return out
}

// BBox is an axis-aligned bounding box. A degenerate polyline (fewer
// than 2 distinct points) has no well-defined box; Valid is false.
type BBox struct {
	Min, Max geom.Point
	Valid    bool
}

// Of computes p's bounding box.
func Of(p Polyline) BBox {
	if len(p.Points) == 0 {
		return BBox{}
	}
	b := BBox{Min: p.Points[0], Max: p.Points[0], Valid: true}
	for _, pt := range p.Points[1:] {
		if pt.X < b.Min.X {
			b.Min.X = pt.X
		}
		if pt.Y < b.Min.Y {
			b.Min.Y = pt.Y
		}
		if pt.X > b.Max.X {
			b.Max.X = pt.X
		}
		if pt.Y > b.Max.Y {
			b.Max.Y = pt.Y
		}
	}
	if b.Min == b.Max {
		b.Valid = false
	}
	return b
}

// Union merges bs's boxes into a single enclosing box; invalid boxes
// are ignored.
func Union(bs []BBox) BBox {
	var out BBox
	for _, b := range bs {
		if !b.Valid {
			continue
		}
		if !out.Valid {
			out = b
			continue
		}
		if b.Min.X < out.Min.X {
			out.Min.X = b.Min.X
		}
		if b.Min.Y < out.Min.Y {
			out.Min.Y = b.Min.Y
		}
		if b.Max.X > out.Max.X {
			out.Max.X = b.Max.X
		}
		if b.Max.Y > out.Max.Y {
			out.Max.Y = b.Max.Y
		}
	}
	return out
}

// BBoxes computes a bounding box per polyline, in input order.
func BBoxes(pls []Polyline) []BBox {
	out := make([]BBox, len(pls))
	for i, p := range pls {
		out[i] = Of(p)
	}
	return out
}

// Frame returns a closed rectangular polyline tracing bbox inflated by
// margin on every side — the "append bbox frame" pipeline stage
// (spec.md §4.6, driven by the CLI's --bbox flag).
func Frame(bbox BBox, margin float64) Polyline {
	minX, minY := bbox.Min.X-margin, bbox.Min.Y-margin
	maxX, maxY := bbox.Max.X+margin, bbox.Max.Y+margin
	return Polyline{
		Kind: Closed,
		Points: []geom.Point{
			{X: minX, Y: minY},
			{X: maxX, Y: minY},
			{X: maxX, Y: maxY},
			{X: minX, Y: maxY},
			{X: minX, Y: minY},
		},
	}
}

// calibrationLeg is the arm length of the knife-alignment L-shaped mark
// Calibration draws near the job's origin corner.
const calibrationLeg = 5.0

// Calibration returns a small L-shaped mark anchored at bbox's
// minimum corner, offset outward by margin — the "prepend calibration"
// pipeline stage (spec.md §4.6, driven by the CLI's --align-knife
// flag) giving the operator a cut to check knife alignment against
// before the real job runs.
func Calibration(bbox BBox, margin float64) Polyline {
	x := bbox.Min.X - margin
	y := bbox.Min.Y - margin
	return Polyline{
		Kind: Open,
		Points: []geom.Point{
			{X: x, Y: y + calibrationLeg},
			{X: x, Y: y},
			{X: x + calibrationLeg, Y: y},
		},
	}
}
