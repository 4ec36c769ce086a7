package emit

import (
	"math"

	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly"
)

// KnifeCompensator implements the knife-offset algorithm of spec.md
// §4.8: a cutter's blade trails the carriage by a constant offset
// along the instantaneous motion direction, so every commanded pen
// position must lead the blade by that offset along the path's
// current heading.
type KnifeCompensator struct {
	e *Emitter

	offset     float64
	epsilon    float64
	smallAngle float64
	shortLine  float64

	knife    geom.Point
	pen      geom.Point
	priorDir *geom.Point // nil until the first segment of the job is known
	started  bool
	first    bool // starts as !offsetlessStart; cleared once a polyline is emitted
}

// NewKnifeCompensator builds a compensator driving e. offsetlessStart
// (spec.md §6 --offsetless-start) only sets the initial value of first:
// the job's first polyline starts with the pen on its first point
// either way, since no trailing direction is known before it.
// A turn is cut as an arc unless both its angle is at most smallAngle
// (radians) and its new segment is at most shortLine long.
func NewKnifeCompensator(e *Emitter, offset, epsilon, smallAngle, shortLine float64, offsetlessStart bool) *KnifeCompensator {
	return &KnifeCompensator{
		e: e, offset: offset, epsilon: epsilon, smallAngle: smallAngle, shortLine: shortLine,
		first: !offsetlessStart,
	}
}

// EmitPolyline cuts p with knife-offset compensation, or directly
// (moveto+polylineto) when the compensator's offset is zero.
func (k *KnifeCompensator) EmitPolyline(p poly.Polyline) {
	if len(p.Points) == 0 {
		return
	}
	if k.offset == 0 {
		k.e.MoveTo(p.Points[0])
		if len(p.Points) > 1 {
			k.e.PolylineTo(p.Points[1:])
		}
		return
	}

	first := p.Points[0]
	k.knife = first
	if k.priorDir != nil && k.started && !k.first {
		k.pen = first.Add(k.priorDir.Scale(k.offset))
	} else {
		k.pen = first
	}
	k.e.MoveTo(k.pen)
	k.started = true
	k.first = false

	for i := 1; i < len(p.Points); i++ {
		pt := p.Points[i]
		if geom.Dist(pt, k.knife) <= k.epsilon {
			continue
		}
		newDir := pt.Sub(k.knife).Unit()
		segLen := geom.Dist(pt, k.knife)

		if k.priorDir != nil {
			turn := turnAngle(*k.priorDir, newDir)
			if math.Abs(turn) > k.smallAngle || segLen > k.shortLine {
				sweepDeg := turn * 180 / math.Pi
				k.e.Arc(k.knife, sweepDeg)
			}
		}

		target := k.knife.Add(newDir.Scale(k.offset))
		k.e.LineTo(target)

		k.knife = pt
		k.priorDir = &newDir
	}
}

// turnAngle returns the signed angle from a to b in (-pi, pi].
func turnAngle(a, b geom.Point) float64 {
	delta := b.Angle() - a.Angle()
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta <= -math.Pi {
		delta += 2 * math.Pi
	}
	return delta
}
