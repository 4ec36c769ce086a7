package poly

import (
	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly/spatial"
)

// StitchOptions configures Stitch (spec.md §4.6).
type StitchOptions struct {
	Epsilon        float64
	JoinCycles     bool
	ReverseAllowed bool
}

// Stitch fuzzily joins open polylines sharing endpoints within
// Epsilon, then (if JoinCycles) splices cycles sharing an internal
// point into one another. Ordering is deterministic given the input
// order (spec.md §4.6).
func Stitch(pls []Polyline, opts StitchOptions) []Polyline {
	s := &stitcher{opts: opts}
	s.partition(pls)
	s.joinOpen()
	s.migrateClosedCycles()
	if opts.JoinCycles {
		s.spliceCycles()
	}
	return s.result()
}

type element struct {
	poly  Polyline
	alive bool
}

type stitcher struct {
	opts   StitchOptions
	open   []*element
	cycles []*element
}

// partition splits the input into already-closed cycles (by Kind, or
// start≈end within epsilon) and open candidates for joining. Every
// cycle ends on a point exactly equal to its first: a last point within
// epsilon of the first is snapped onto it, otherwise the first point is
// appended.
func (s *stitcher) partition(pls []Polyline) {
	for _, p := range pls {
		e := &element{poly: p, alive: true}
		if p.Kind == Closed || (len(p.Points) > 1 && geom.Dist(p.Start(), p.End()) <= s.opts.Epsilon) {
			pts := make([]geom.Point, len(p.Points), len(p.Points)+1)
			copy(pts, p.Points)
			if n := len(pts); n > 1 && pts[n-1] != pts[0] {
				if geom.Dist(pts[0], pts[n-1]) <= s.opts.Epsilon {
					pts[n-1] = pts[0]
				} else {
					pts = append(pts, pts[0])
				}
			}
			e.poly = Polyline{Kind: Closed, Points: pts}
			s.cycles = append(s.cycles, e)
			continue
		}
		s.open = append(s.open, e)
	}
}

// joinOpen runs passes A-D to fixpoint: exact-forward, then (if
// allowed) exact-forward+reverse, then the same two within epsilon.
func (s *stitcher) joinOpen() {
	const exact = 0
	for _, maxDist := range []float64{exact, s.opts.Epsilon} {
		for {
			if !s.passForward(maxDist) {
				break
			}
		}
		if s.opts.ReverseAllowed {
			for {
				if !s.passReverse(maxDist) {
					break
				}
			}
		}
	}
}

// buildIndex indexes every currently-alive open element's endpoints.
func (s *stitcher) buildIndex() *spatial.Index {
	eps := s.opts.Epsilon
	if eps <= 0 {
		eps = 1e-9
	}
	idx := spatial.New(eps)
	for i, e := range s.open {
		if !e.alive {
			continue
		}
		idx.InsertStart(i, e.poly.Start())
		idx.InsertEnd(i, e.poly.End())
	}
	return idx
}

// passForward joins one element's end to another's start (or vice
// versa) within maxDist, concatenating in forward order. Returns
// whether a join happened so the caller can re-run to fixpoint.
func (s *stitcher) passForward(maxDist float64) bool {
	idx := s.buildIndex()
	for i, e := range s.open {
		if !e.alive {
			continue
		}
		if j, _, ok := idx.QueryStart(e.poly.End(), i, maxDist); ok && s.open[j].alive {
			s.concat(i, j, false)
			return true
		}
		if j, _, ok := idx.QueryEnd(e.poly.Start(), i, maxDist); ok && s.open[j].alive {
			s.concat(j, i, false)
			return true
		}
	}
	return false
}

// passReverse joins end-to-end (reversing the second element) or
// start-to-start (reversing the first), then concatenates.
func (s *stitcher) passReverse(maxDist float64) bool {
	idx := s.buildIndex()
	for i, e := range s.open {
		if !e.alive {
			continue
		}
		if j, _, ok := idx.QueryEnd(e.poly.End(), i, maxDist); ok && s.open[j].alive {
			s.concat(i, j, true)
			return true
		}
		if j, _, ok := idx.QueryStart(e.poly.Start(), i, maxDist); ok && s.open[j].alive {
			s.open[i].poly = e.poly.Reversed()
			s.concat(i, j, false)
			return true
		}
	}
	return false
}

// concat appends b onto a (reversing b first if reverseB), snapping
// the join point exactly equal to a's endpoint, then marks b dead and
// a alive with the combined points.
func (s *stitcher) concat(a, b int, reverseB bool) {
	bp := s.open[b].poly
	if reverseB {
		bp = bp.Reversed()
	}
	combined := make([]geom.Point, 0, len(s.open[a].poly.Points)+len(bp.Points)-1)
	combined = append(combined, s.open[a].poly.Points...)
	// snap the join to the surviving end point, then append the rest.
	rest := bp.Points
	if len(rest) > 0 {
		rest = rest[1:]
	}
	combined = append(combined, rest...)
	s.open[a].poly = Polyline{Kind: Open, Points: combined}
	s.open[b].alive = false
}

// migrateClosedCycles moves any open element whose endpoints now
// coincide within epsilon into the cycle list, snapping the endpoint
// exactly equal.
func (s *stitcher) migrateClosedCycles() {
	for _, e := range s.open {
		if !e.alive || len(e.poly.Points) < 2 {
			continue
		}
		if geom.Dist(e.poly.Start(), e.poly.End()) <= s.opts.Epsilon {
			pts := make([]geom.Point, len(e.poly.Points))
			copy(pts, e.poly.Points)
			pts[len(pts)-1] = pts[0]
			e.poly = Polyline{Kind: Closed, Points: pts}
			e.alive = false
			s.cycles = append(s.cycles, &element{poly: e.poly, alive: true})
		}
	}
}

// pointKey quantises a point to an epsilon-sized grid cell (truncating
// toward zero) so cycle-splice point-signature matching treats points
// in the same cell as one point. Two points within epsilon of each
// other that lie on opposite sides of a cell boundary get different
// keys.
func pointKey(p geom.Point, eps float64) [2]int64 {
	if eps <= 0 {
		eps = 1e-9
	}
	return [2]int64{int64(p.X / eps), int64(p.Y / eps)}
}

// spliceCycles merges cycles that share an internal point, splicing
// the second into the first rotated so the shared point aligns, then
// splices any remaining open element sharing a point into a surviving
// cycle (spec.md §4.6).
func (s *stitcher) spliceCycles() {
	eps := s.opts.Epsilon
	changed := true
	for changed {
		changed = false
		sig := map[[2]int64]int{} // point signature -> cycle index (into s.cycles)
		for ci, c := range s.cycles {
			if !c.alive {
				continue
			}
			for pi := 0; pi < len(c.poly.Points)-1; pi++ {
				sig[pointKey(c.poly.Points[pi], eps)] = ci
			}
		}
		for ci, c := range s.cycles {
			if !c.alive {
				continue
			}
			for pi := 0; pi < len(c.poly.Points)-1; pi++ {
				k := pointKey(c.poly.Points[pi], eps)
				other := sig[k]
				if other == ci || !s.cycles[other].alive {
					continue
				}
				s.spliceCycleAt(other, ci, pi, k, eps)
				changed = true
				break
			}
			if changed {
				break
			}
		}
	}

	for _, e := range s.open {
		if !e.alive {
			continue
		}
		for pi := range e.poly.Points {
			k := pointKey(e.poly.Points[pi], eps)
			for ci, c := range s.cycles {
				if !c.alive {
					continue
				}
				for cpi := 0; cpi < len(c.poly.Points)-1; cpi++ {
					if pointKey(c.poly.Points[cpi], eps) == k {
						tail := e.poly
						if pi == len(tail.Points)-1 {
							tail = tail.Reversed()
						} else if pi != 0 {
							// shared point is interior to the open chain;
							// splice in from that point onward.
							tail = Polyline{Kind: Open, Points: tail.Points[pi:]}
						}
						s.spliceOpenInto(ci, &element{poly: tail}, cpi)
						e.alive = false
						break
					}
				}
				if !e.alive {
					break
				}
			}
			if !e.alive {
				break
			}
		}
	}
}

// spliceCycleAt rotates target's cycle so the shared point at index
// splitAt becomes its start, rotates host's cycle so its own
// occurrence of the same point becomes its start, then walks target
// all the way around, detours through host's full loop, and closes —
// both rotated to the shared point so the result stays a single
// continuous path (spec.md §4.6: "rotated so the shared point is at
// the splice location"). Marks host consumed.
func (s *stitcher) spliceCycleAt(host, target, splitAt int, shared [2]int64, eps float64) {
	t := s.cycles[target]
	h := s.cycles[host]

	hostAt := 0
	for pi := 0; pi < len(h.poly.Points)-1; pi++ {
		if pointKey(h.poly.Points[pi], eps) == shared {
			hostAt = pi
			break
		}
	}

	targetBody := dropClosing(rotateClosed(t.poly.Points, splitAt))
	hostBody := dropClosing(rotateClosed(h.poly.Points, hostAt))

	combined := make([]geom.Point, 0, len(targetBody)+len(hostBody)+1)
	combined = append(combined, targetBody...)
	combined = append(combined, hostBody...)
	combined = append(combined, combined[0])
	t.poly = Polyline{Kind: Closed, Points: combined}
	h.alive = false
}

// spliceOpenInto inserts an open element's points into a cycle at the
// shared point index, reopening the cycle into one continuous path.
func (s *stitcher) spliceOpenInto(cycleIdx int, e *element, at int) {
	c := s.cycles[cycleIdx]
	rotated := dropClosing(rotateClosed(c.poly.Points, at))
	combined := make([]geom.Point, 0, len(rotated)+len(e.poly.Points)+1)
	combined = append(combined, rotated...)
	combined = append(combined, e.poly.Points...)
	combined = append(combined, rotated[0])
	c.poly = Polyline{Kind: Closed, Points: combined}
}

// dropClosing strips the trailing point that duplicates a closed
// polyline's first point.
func dropClosing(pts []geom.Point) []geom.Point {
	if len(pts) == 0 {
		return pts
	}
	return pts[:len(pts)-1]
}

// rotateClosed rotates a closed polyline's point list (last point
// duplicating the first) so index i becomes the new start.
func rotateClosed(pts []geom.Point, i int) []geom.Point {
	if i == 0 || len(pts) < 2 {
		out := make([]geom.Point, len(pts))
		copy(out, pts)
		return out
	}
	body := pts[:len(pts)-1] // drop the closing duplicate
	out := make([]geom.Point, 0, len(pts))
	out = append(out, body[i:]...)
	out = append(out, body[:i]...)
	out = append(out, out[0])
	return out
}

func (s *stitcher) result() []Polyline {
	var out []Polyline
	for _, e := range s.open {
		if e.alive {
			out = append(out, e.poly)
		}
	}
	for _, c := range s.cycles {
		if c.alive {
			out = append(out, c.poly)
		}
	}
	return out
}
