package poly

import (
	"math"
	"sort"
	"strings"

	"github.com/viant/dxfcut/errs"
)

const opSort = "poly.Sort"

// Criterion is one comma-separated term of a --sort spec: a bbox edge
// with an optional direction, or the "box" partial order.
type Criterion struct {
	Key  string // "left", "bottom", "right", "top", or "box"
	Desc bool
}

var edgeKeys = map[string]bool{"left": true, "bottom": true, "right": true, "top": true}

// ParseCriteria parses a comma-separated {left,bottom,right,top}[-asc|-desc]
// and "box" criteria list (spec.md §4.6).
func ParseCriteria(spec string) ([]Criterion, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, nil
	}
	var out []Criterion
	for _, term := range strings.Split(spec, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if term == "box" {
			out = append(out, Criterion{Key: "box"})
			continue
		}
		key, dir, hasDir := strings.Cut(term, "-")
		if !edgeKeys[key] {
			return nil, errs.New(errs.InvalidArgument, opSort, "unknown sort criterion %q", term)
		}
		desc := false
		if hasDir {
			switch dir {
			case "asc":
				desc = false
			case "desc":
				desc = true
			default:
				return nil, errs.New(errs.InvalidArgument, opSort, "unknown sort direction %q in %q", dir, term)
			}
		}
		out = append(out, Criterion{Key: key, Desc: desc})
	}
	return out, nil
}

// edgeValue reads the named bbox edge.
func edgeValue(b BBox, key string) float64 {
	switch key {
	case "left":
		return b.Min.X
	case "bottom":
		return b.Min.Y
	case "right":
		return b.Max.X
	case "top":
		return b.Max.Y
	}
	return 0
}

// compareBox implements the strict bbox-containment partial order: -1
// when a is strictly inside b, +1 when a strictly contains b, 0
// otherwise (including equal or merely overlapping boxes). Strictly
// inside shapes are ordered first so a cutter removes nested detail
// before the surrounding outline falls away.
func compareBox(a, b BBox) int {
	if !a.Valid || !b.Valid {
		return 0
	}
	aInsideB := a.Min.X > b.Min.X && a.Min.Y > b.Min.Y && a.Max.X < b.Max.X && a.Max.Y < b.Max.Y
	bInsideA := b.Min.X > a.Min.X && b.Min.Y > a.Min.Y && b.Max.X < a.Max.X && b.Max.Y < a.Max.Y
	switch {
	case aInsideB:
		return -1
	case bInsideA:
		return 1
	default:
		return 0
	}
}

// Sort applies criteria right-to-left with a crudeness quantisation
// step for numeric edges and an O(n²) stable insertion sort against
// the box partial order (spec.md §4.6). pls and their bboxes travel
// together and are returned reordered.
func Sort(pls []Polyline, bboxes []BBox, criteria []Criterion, crudeness float64) ([]Polyline, []BBox) {
	if len(criteria) == 0 {
		return pls, bboxes
	}
	outP := make([]Polyline, len(pls))
	outB := make([]BBox, len(bboxes))
	copy(outP, pls)
	copy(outB, bboxes)

	for i := len(criteria) - 1; i >= 0; i-- {
		c := criteria[i]
		if c.Key == "box" {
			boxInsertionSort(outP, outB)
			continue
		}
		numericStableSort(outP, outB, c, crudeness)
	}
	return outP, outB
}

func numericStableSort(pls []Polyline, bboxes []BBox, c Criterion, crudeness float64) {
	quantize := func(b BBox) float64 {
		v := edgeValue(b, c.Key)
		if crudeness > 0 {
			v = math.Floor(v/crudeness) * crudeness
		}
		if c.Desc {
			v = -v
		}
		return v
	}
	idx := make([]int, len(pls))
	for i := range idx {
		idx[i] = i
	}
	keys := make([]float64, len(bboxes))
	for i, b := range bboxes {
		keys[i] = quantize(b)
	}
	sort.SliceStable(idx, func(i, j int) bool { return keys[idx[i]] < keys[idx[j]] })
	applyOrder(pls, bboxes, idx)
}

func boxInsertionSort(pls []Polyline, bboxes []BBox) {
	for i := 1; i < len(pls); i++ {
		j := i
		for j > 0 && compareBox(bboxes[j], bboxes[j-1]) < 0 {
			pls[j], pls[j-1] = pls[j-1], pls[j]
			bboxes[j], bboxes[j-1] = bboxes[j-1], bboxes[j]
			j--
		}
	}
}

func applyOrder(pls []Polyline, bboxes []BBox, idx []int) {
	p2 := make([]Polyline, len(pls))
	b2 := make([]BBox, len(bboxes))
	for i, k := range idx {
		p2[i] = pls[k]
		b2[i] = bboxes[k]
	}
	copy(pls, p2)
	copy(bboxes, b2)
}
