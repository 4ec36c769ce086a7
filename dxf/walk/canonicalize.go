package walk

import (
	"github.com/viant/dxfcut/dxf/codec"
	"github.com/viant/dxfcut/dxf/tree"
)

const defaultACADVersion = "AC1021"

// CanonicalSections is the fixed section order Canonicalize enforces
// (spec.md §4.2 "Canonicalise"), the same list dxf/codec uses to
// recognize section starters.
var CanonicalSections = codec.CanonicalSections

// Canonicalize ensures root has exactly the six sections HEADER,
// CLASSES, TABLES, BLOCKS, ENTITIES, OBJECTS in that order (inserting
// empties and a minimal HEADER as needed), merges duplicate sections by
// concatenating their children (skipping any child that is a
// byte-for-byte content duplicate of one already kept, via
// tree.Hash — spec.md §9's duplicate-section merge should not double
// up geometry that a malformed file repeats verbatim across two
// same-named sections), and drops all stored end-tags (spec.md §4.2
// "Canonicalise").
func Canonicalize(root *tree.Node) {
	byName := map[string]*tree.Node{}
	seen := map[string]map[uint64]bool{}
	var nonSections []*tree.Node
	for _, c := range root.Children {
		if c.Name != "SECTION" {
			nonSections = append(nonSections, c)
			continue
		}
		name := c.GetString("name")
		if existing, ok := byName[name]; ok {
			if seen[name] == nil {
				seen[name] = map[uint64]bool{}
				for _, child := range existing.Children {
					seen[name][tree.Hash(child)] = true
				}
			}
			for _, child := range c.Children {
				h := tree.Hash(child)
				if seen[name][h] {
					continue
				}
				seen[name][h] = true
				existing.Children = append(existing.Children, child)
			}
			continue
		}
		byName[name] = c
	}

	ordered := make([]*tree.Node, 0, len(CanonicalSections)+len(nonSections))
	for _, name := range CanonicalSections {
		sec, ok := byName[name]
		if !ok {
			sec = newSection(name)
			if name == "HEADER" {
				acadVer := tree.New("$ACADVER")
				acadVer.Set("text", defaultACADVersion)
				sec.AddChild(acadVer)
			}
		}
		ordered = append(ordered, sec)
	}
	ordered = append(ordered, nonSections...)
	root.Children = ordered

	dropEndTags(root)
}

func dropEndTags(n *tree.Node) {
	n.EndTag = nil
	for _, c := range n.Children {
		dropEndTags(c)
	}
}
