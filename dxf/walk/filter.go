package walk

import (
	"strings"

	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/errs"
)

const opFilter = "walk.Filter"

// Criterion decides whether a node should be kept (true) or removed
// (false) when passed to Apply. It is the single shape backing all
// three forms spec.md §4.2 describes: bare type, type set, and
// predicate.
type Criterion struct {
	match func(name string, n *tree.Node) bool
}

// TypeCriterion keeps (include=true) or drops (include=false) nodes
// whose name is among types.
func TypeCriterion(include bool, types ...string) Criterion {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return Criterion{match: func(name string, _ *tree.Node) bool {
		in := set[name]
		if include {
			return in
		}
		return !in
	}}
}

// PredicateCriterion wraps an arbitrary (name, node) predicate.
func PredicateCriterion(f func(name string, n *tree.Node) bool) Criterion {
	return Criterion{match: f}
}

// LayerCriterion keeps/drops nodes by their "layer" attribute value.
func LayerCriterion(include bool, layers ...string) Criterion {
	set := make(map[string]bool, len(layers))
	for _, l := range layers {
		set[l] = true
	}
	return Criterion{match: func(_ string, n *tree.Node) bool {
		in := set[n.GetString("layer")]
		if include {
			return in
		}
		return !in
	}}
}

// ColorCriterion keeps/drops nodes by their "color" attribute value.
func ColorCriterion(include bool, colors ...string) Criterion {
	set := make(map[string]bool, len(colors))
	for _, cVal := range colors {
		set[cVal] = true
	}
	return Criterion{match: func(_ string, n *tree.Node) bool {
		in := set[n.GetString("color")]
		if include {
			return in
		}
		return !in
	}}
}

// ParseCriterion parses the bare-string shape: an entity-type name
// optionally prefixed '+' (include) or '-' (exclude); no prefix defaults
// to exclude (spec.md §4.2 "Filter").
func ParseCriterion(spec string) (Criterion, error) {
	if spec == "" {
		return Criterion{}, errs.New(errs.InvalidArgument, opFilter, "empty filter criterion")
	}
	include := false
	name := spec
	switch spec[0] {
	case '+':
		include = true
		name = spec[1:]
	case '-':
		include = false
		name = spec[1:]
	}
	if name == "" {
		return Criterion{}, errs.New(errs.InvalidArgument, opFilter, "empty entity type in filter criterion %q", spec)
	}
	return TypeCriterion(include, strings.ToUpper(name)), nil
}

// Apply walks the BLOCKS children's entities, ENTITIES, and OBJECTS
// sections and removes any node for which c.match returns false.
func Apply(root *tree.Node, c Criterion) error {
	if c.match == nil {
		return errs.New(errs.InvalidArgument, opFilter, "criterion has no matcher")
	}
	if blocks := FindSection(root, "BLOCKS"); blocks != nil {
		for _, block := range blocks.Children {
			if block.Name != "BLOCK" {
				continue
			}
			block.Children = filterChildren(block.Children, c)
		}
	}
	if entities := FindSection(root, "ENTITIES"); entities != nil {
		entities.Children = filterChildren(entities.Children, c)
	}
	if objects := FindSection(root, "OBJECTS"); objects != nil {
		objects.Children = filterChildren(objects.Children, c)
	}
	return nil
}

func filterChildren(children []*tree.Node, c Criterion) []*tree.Node {
	kept := children[:0:0]
	for _, n := range children {
		if c.match(n.Name, n) {
			kept = append(kept, n)
		}
	}
	return kept
}
