package boildown

import (
	"sort"
	"strings"

	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/dxf/walk"
	"github.com/viant/dxfcut/errs"
)

const opBoilDown = "boildown.BoilDown"

// Config carries the options threaded through every Converter.
type Config struct {
	bulgeArcs bool
}

// Option configures a BoilDown call.
type Option func(*Config)

// WithBulgeArcs enables the POLYLINE→LWPOLYLINE extension point from
// spec.md §9's Open Question: a VERTEX's bulge (float1) is expanded into
// a sampled arc segment instead of being silently dropped. Off by
// default to preserve the spec's stated behavior.
func WithBulgeArcs() Option {
	return func(c *Config) { c.bulgeArcs = true }
}

// BoilDown rewrites every entity in ENTITIES and BLOCKS whose kind is in
// toReplace into the shortest chain of conversions leading into
// acceptable, in place. If any requested kind has no path into
// acceptable, it fails with an unable-to-boil-down error naming every
// unresolved kind up front, before touching the tree (spec.md §4.4).
func BoilDown(root *tree.Node, acceptable, toReplace []string, opts ...Option) error {
	cfg := &Config{}
	for _, o := range opts {
		o(cfg)
	}

	acceptSet := toSet(acceptable)
	chains := chainsInto(acceptSet)

	var unresolved []string
	for _, k := range toReplace {
		if acceptSet[k] {
			continue
		}
		if _, ok := chains[k]; !ok {
			unresolved = append(unresolved, k)
		}
	}
	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return errs.New(errs.UnsupportedEntity, opBoilDown, "unable to boil down: no conversion path for %s", strings.Join(unresolved, ", "))
	}

	replaceSet := toSet(toReplace)
	rewrite := func(n *tree.Node) ([]*tree.Node, error) {
		if !replaceSet[n.Name] {
			return []*tree.Node{n}, nil
		}
		chain, ok := chains[n.Name]
		if !ok {
			return []*tree.Node{n}, nil
		}
		current := []*tree.Node{n}
		for _, edge := range chain {
			var next []*tree.Node
			for _, c := range current {
				out, err := edge.Convert(c, cfg)
				if err != nil {
					return nil, err
				}
				for _, o := range out {
					o.InheritGeneral(c)
				}
				next = append(next, out...)
			}
			current = next
		}
		return current, nil
	}

	if blocks := walk.FindSection(root, "BLOCKS"); blocks != nil {
		for _, block := range blocks.Children {
			if block.Name != "BLOCK" {
				continue
			}
			if err := rewriteChildren(block, rewrite); err != nil {
				return err
			}
		}
	}
	if entities := walk.FindSection(root, "ENTITIES"); entities != nil {
		if err := rewriteChildren(entities, rewrite); err != nil {
			return err
		}
	}
	return nil
}

func rewriteChildren(parent *tree.Node, rewrite func(*tree.Node) ([]*tree.Node, error)) error {
	out := make([]*tree.Node, 0, len(parent.Children))
	for _, c := range parent.Children {
		replaced, err := rewrite(c)
		if err != nil {
			return err
		}
		out = append(out, replaced...)
	}
	parent.Children = out
	return nil
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}
