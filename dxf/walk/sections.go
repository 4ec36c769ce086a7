package walk

import "github.com/viant/dxfcut/dxf/tree"

// FindSection returns the root-level SECTION node whose "name" attribute
// equals name, or nil.
func FindSection(root *tree.Node, name string) *tree.Node {
	for _, c := range root.Children {
		if c.Name == "SECTION" && c.GetString("name") == name {
			return c
		}
	}
	return nil
}

func newSection(name string) *tree.Node {
	s := tree.New("SECTION")
	s.Set("name", name)
	return s
}
