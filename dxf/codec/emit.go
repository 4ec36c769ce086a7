package codec

import (
	"bufio"
	"io"
	"sort"
	"strconv"

	"github.com/viant/dxfcut/dxf/tree"
)

const opEmit = "codec.Emit"

// Emit writes the tree depth-first back into a DXF group-code stream
// (spec.md §4.1 "Emit"). root must be the node produced by Parse (or an
// equivalent synthetic root whose EndTag is the EOF node).
func Emit(w io.Writer, root *tree.Node) error {
	bw := bufio.NewWriter(w)
	if err := emitNode(bw, root); err != nil {
		return err
	}
	return bw.Flush()
}

func emitNode(w *bufio.Writer, n *tree.Node) error {
	code := 0
	if n.IsHeaderVar() {
		code = 9
	}
	if n.Name != "root" {
		writeLine(w, code, n.Name)
	}
	emitAttrs(w, n)
	for _, c := range n.Children {
		if err := emitNode(w, c); err != nil {
			return err
		}
	}
	if n.EndTag != nil {
		endCode := 0
		if n.EndTag.IsHeaderVar() {
			endCode = 9
		}
		writeLine(w, endCode, n.EndTag.Name)
		emitAttrs(w, n.EndTag)
	} else if endName, ok := EndNodeFor[n.Name]; ok {
		// Synthesise the canonical terminator when none was captured.
		writeLine(w, 0, endName)
	}
	return nil
}

func writeLine(w *bufio.Writer, code int, value string) {
	w.WriteString(strconv.Itoa(code))
	w.WriteByte('\n')
	w.WriteString(value)
	w.WriteByte('\n')
}

// emitAttrs writes a node's attributes in ascending group-code order,
// bundling x/y/z at a shared point index into interleaved per-point
// triples (§4.1 "Emit", §3 interleaving rule).
func emitAttrs(w *bufio.Writer, n *tree.Node) {
	names := sortedAttrNames(n)
	visitedIndex := map[int]bool{}
	for _, name := range names {
		axis, idx, isCoord := parsePointName(name)
		if isCoord {
			if visitedIndex[idx] {
				continue
			}
			visitedIndex[idx] = true
			emitPointSeries(w, n, idx)
			_ = axis
			continue
		}
		v := n.Attrs[name]
		code, ok := NameToCode(name)
		if !ok {
			continue
		}
		for _, s := range v.Strings() {
			writeLine(w, code, s)
		}
	}
}

func emitPointSeries(w *bufio.Writer, n *tree.Node, idx int) {
	xs := coordValues(n, 'x', idx)
	ys := coordValues(n, 'y', idx)
	var zs []string
	if idx <= 7 {
		zs = coordValues(n, 'z', idx)
	}
	count := len(xs)
	if len(ys) > count {
		count = len(ys)
	}
	if len(zs) > count {
		count = len(zs)
	}
	for k := 0; k < count; k++ {
		if k < len(xs) {
			writeLine(w, 10+idx, xs[k])
		}
		if k < len(ys) {
			writeLine(w, 20+idx, ys[k])
		}
		if k < len(zs) {
			writeLine(w, 30+idx, zs[k])
		}
	}
}

func coordValues(n *tree.Node, axis byte, idx int) []string {
	name := PointIndexName(axis, idx)
	v, ok := n.Get(name)
	if !ok {
		return nil
	}
	return v.Strings()
}

// parsePointName reports whether name is a coordinate attribute (x, y, z
// with optional numeric suffix 1..8) and, if so, its axis and index.
func parsePointName(name string) (axis byte, index int, ok bool) {
	if len(name) == 0 {
		return 0, 0, false
	}
	switch name[0] {
	case 'x', 'y', 'z':
	default:
		return 0, 0, false
	}
	if len(name) == 1 {
		return name[0], 0, true
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 || n > 8 {
		return 0, 0, false
	}
	return name[0], n, true
}

func sortedAttrNames(n *tree.Node) []string {
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, oki := NameToCode(names[i])
		cj, okj := NameToCode(names[j])
		if !oki {
			ci = 1 << 30
		}
		if !okj {
			cj = 1 << 30
		}
		if ci != cj {
			return ci < cj
		}
		return names[i] < names[j]
	})
	return names
}
