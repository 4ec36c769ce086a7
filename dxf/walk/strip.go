package walk

import "github.com/viant/dxfcut/dxf/tree"

// Strip deletes CLASSES and TABLES, empties BLOCKS and OBJECTS, and
// removes the "comment" attribute from every node (spec.md §4.2
// "Strip").
func Strip(root *tree.Node) {
	var kept []*tree.Node
	for _, c := range root.Children {
		if c.Name == "SECTION" {
			switch c.GetString("name") {
			case "CLASSES", "TABLES":
				continue
			case "BLOCKS", "OBJECTS":
				c.Children = nil
			}
		}
		kept = append(kept, c)
	}
	root.Children = kept

	stripComments(root)
}

func stripComments(n *tree.Node) {
	delete(n.Attrs, "comment")
	if n.EndTag != nil {
		delete(n.EndTag.Attrs, "comment")
	}
	for _, c := range n.Children {
		stripComments(c)
	}
}
