// Package spatial implements the epsilon-bucketed endpoint index (spec.md
// §4.7, C8) that the polyline stitcher uses for fuzzy endpoint joining.
package spatial

import (
	"math"

	"github.com/viant/dxfcut/geom"
)

// Key identifies a grid cell of side length epsilon.
type Key struct{ X, Y int64 }

type entry struct {
	pt geom.Point
	id int
}

// Index maps endpoints to the polyline IDs that own them, bucketed so a
// point near a cell boundary is still found from either side (§4.7:
// "insert each element under all 2^D neighbouring cell keys").
type Index struct {
	eps     float64
	byStart map[Key][]entry
	byEnd   map[Key][]entry
}

// New creates an index with cell size equal to eps.
func New(eps float64) *Index {
	return &Index{
		eps:     eps,
		byStart: map[Key][]entry{},
		byEnd:   map[Key][]entry{},
	}
}

func cellFloor(v, eps float64) int64 {
	return int64(math.Floor(v / eps))
}

// keys returns the four neighbouring cell keys a point at p is inserted
// under (or queried against).
func (ix *Index) keys(p geom.Point) [4]Key {
	fx, fy := cellFloor(p.X, ix.eps), cellFloor(p.Y, ix.eps)
	return [4]Key{{fx, fy}, {fx + 1, fy}, {fx, fy + 1}, {fx + 1, fy + 1}}
}

// InsertStart registers id's start point.
func (ix *Index) InsertStart(id int, p geom.Point) {
	for _, k := range ix.keys(p) {
		ix.byStart[k] = append(ix.byStart[k], entry{pt: p, id: id})
	}
}

// InsertEnd registers id's end point.
func (ix *Index) InsertEnd(id int, p geom.Point) {
	for _, k := range ix.keys(p) {
		ix.byEnd[k] = append(ix.byEnd[k], entry{pt: p, id: id})
	}
}

// Remove deletes id from all buckets of both maps (its start and end
// points must be supplied since the index does not retain geometry).
func (ix *Index) Remove(id int, start, end geom.Point) {
	for _, k := range ix.keys(start) {
		ix.byStart[k] = removeID(ix.byStart[k], id)
	}
	for _, k := range ix.keys(end) {
		ix.byEnd[k] = removeID(ix.byEnd[k], id)
	}
}

func removeID(list []entry, id int) []entry {
	out := list[:0]
	for _, e := range list {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}

// QueryStart finds the closest registered start point to p, excluding
// exclude, within maxDist (inclusive). Ties break on first-encountered
// (insertion order), making the result deterministic given insertion
// order (§4.7).
func (ix *Index) QueryStart(p geom.Point, exclude int, maxDist float64) (id int, pt geom.Point, found bool) {
	return query(ix.byStart, ix.keys(p), p, exclude, maxDist)
}

// QueryEnd is QueryStart's counterpart against registered end points.
func (ix *Index) QueryEnd(p geom.Point, exclude int, maxDist float64) (id int, pt geom.Point, found bool) {
	return query(ix.byEnd, ix.keys(p), p, exclude, maxDist)
}

func query(buckets map[Key][]entry, keys [4]Key, p geom.Point, exclude int, maxDist float64) (int, geom.Point, bool) {
	threshold := maxDist * maxDist
	bestDist := threshold
	bestID := -1
	var bestPt geom.Point
	found := false
	seen := map[int]bool{}
	for _, k := range keys {
		for _, e := range buckets[k] {
			if e.id == exclude || seen[e.id] {
				continue
			}
			seen[e.id] = true
			d := geom.DistSq(p, e.pt)
			if d <= threshold && (!found || d < bestDist) {
				bestDist = d
				bestID = e.id
				bestPt = e.pt
				found = true
			}
		}
	}
	return bestID, bestPt, found
}
