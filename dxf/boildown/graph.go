// Package boildown implements the entity-rewriter ("boil-down") of
// spec.md §4.4 (C4): a shortest-path graph of entity conversions,
// computed once per call by breadth-first search over the reverse
// conversion graph (spec.md §9 design note), with attribute inheritance
// from the replaced node onto each replacement.
package boildown

import "github.com/viant/dxfcut/dxf/tree"

// Converter rewrites a single node of its From kind into one or more
// nodes of its To kind.
type Converter func(n *tree.Node, cfg *Config) ([]*tree.Node, error)

// Edge is one pairwise conversion in the graph (spec.md §4.4 table).
type Edge struct {
	From, To string
	Convert  Converter
}

// Edges is the static conversion graph.
var Edges = []Edge{
	{From: "SPLINE", To: "LWPOLYLINE", Convert: splineToLWPolyline},
	{From: "POLYLINE", To: "LWPOLYLINE", Convert: polylineToLWPolyline},
	{From: "ELLIPSE", To: "LWPOLYLINE", Convert: ellipseToLWPolyline},
	{From: "LINE", To: "LWPOLYLINE", Convert: lineToLWPolyline},
	{From: "ARC", To: "ELLIPSE", Convert: arcToEllipse},
	{From: "CIRCLE", To: "ARC", Convert: circleToArc},
	{From: "LWPOLYLINE", To: "LINE", Convert: lwPolylineToLine},
}

// chainsInto computes, for every kind reachable from the acceptable set
// by following edges backwards, the ordered list of edges that converts
// that kind into something acceptable — a breadth-first search seeded
// from the acceptable set over the reverse graph, so every returned
// chain is shortest.
func chainsInto(acceptable map[string]bool) map[string][]Edge {
	reverse := map[string][]Edge{}
	for _, e := range Edges {
		reverse[e.To] = append(reverse[e.To], e)
	}

	chains := map[string][]Edge{}
	var queue []string
	for k := range acceptable {
		chains[k] = []Edge{}
		queue = append(queue, k)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range reverse[cur] {
			if _, seen := chains[e.From]; seen {
				continue
			}
			chain := make([]Edge, 0, len(chains[cur])+1)
			chain = append(chain, e)
			chain = append(chain, chains[cur]...)
			chains[e.From] = chain
			queue = append(queue, e.From)
		}
	}
	return chains
}
