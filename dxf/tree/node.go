// Package tree implements the generic attributed node tree (spec.md §3,
// C2) that the DXF group-code codec parses into and every downstream
// transform (walker, boil-down, flattener, extractor) operates on.
package tree

// GeneralAttrs lists the attribute names that attribute inheritance (§4.4)
// copies from a replaced node onto every node that substitutes for it.
var GeneralAttrs = []string{
	"layer", "color", "linetype", "linetype_scale", "elevation",
	"thickness", "invisible", "space", "textstyle", "comment",
}

// Node is an attributed tree node: a name, an unordered attribute map, an
// ordered list of children, and an optional end-tag capturing the
// attributes of a paired terminator (ENDSEC, ENDBLK, SEQEND, ...).
type Node struct {
	Name     string
	Attrs    map[string]Value
	Children []*Node
	EndTag   *Node
}

// New creates an empty node with the given name.
func New(name string) *Node {
	return &Node{Name: name, Attrs: map[string]Value{}}
}

// IsHeaderVar reports whether this node represents a HEADER variable
// (group code 9), identified by a leading '$'.
func (n *Node) IsHeaderVar() bool {
	return len(n.Name) > 0 && n.Name[0] == '$'
}

// Get returns the named attribute and whether it was present.
func (n *Node) Get(name string) (Value, bool) {
	if n.Attrs == nil {
		return Value{}, false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// GetString returns the named attribute's first value, or "" if absent.
func (n *Node) GetString(name string) string {
	v, _ := n.Get(name)
	return v.String()
}

// Set assigns a scalar attribute, overwriting any existing value.
func (n *Node) Set(name, value string) {
	if n.Attrs == nil {
		n.Attrs = map[string]Value{}
	}
	n.Attrs[name] = Scalar(value)
}

// SetValue assigns an arbitrary Value, overwriting any existing value.
func (n *Node) SetValue(name string, v Value) {
	if n.Attrs == nil {
		n.Attrs = map[string]Value{}
	}
	n.Attrs[name] = v
}

// AppendAttr adds value to the named attribute, promoting a prior scalar
// to a list per the parser's repeated-code rule (§4.1).
func (n *Node) AppendAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = map[string]Value{}
	}
	n.Attrs[name] = n.Attrs[name].Append(value)
}

// Has reports whether the named attribute is present and non-empty.
func (n *Node) Has(name string) bool {
	v, ok := n.Get(name)
	return ok && !v.Empty()
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// InheritGeneral copies GeneralAttrs present on src and absent on n onto n,
// implementing the attribute-inheritance rule of §4.4.
func (n *Node) InheritGeneral(src *Node) {
	for _, name := range GeneralAttrs {
		if n.Has(name) {
			continue
		}
		if v, ok := src.Get(name); ok && !v.Empty() {
			n.SetValue(name, v)
		}
	}
}

// Clone performs a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{Name: n.Name, Attrs: make(map[string]Value, len(n.Attrs))}
	for k, v := range n.Attrs {
		clone.Attrs[k] = v
	}
	clone.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		clone.Children[i] = c.Clone()
	}
	clone.EndTag = n.EndTag.Clone()
	return clone
}

// ChildrenNamed returns the direct children whose Name equals name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildNamed returns the first direct child named name, or nil.
func (n *Node) FirstChildNamed(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}
