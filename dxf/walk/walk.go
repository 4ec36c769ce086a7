// Package walk implements the generic DXF tree walker (spec.md §4.2,
// C3): pre/post visiting with in-place substitution, the substrate for
// canonicalisation, stripping, filtering, boil-down and flattening.
package walk

import "github.com/viant/dxfcut/dxf/tree"

// Context is the per-node scratch space a filter can use to pass state
// between its own pre and post invocations for the same child.
type Context struct {
	Scratch map[string]interface{}
}

// Result is what a filter returns after inspecting a child: a
// replacement node list (nil means "keep the node unchanged") and
// whether the walker should skip descending into it.
type Result struct {
	Replace     []*tree.Node
	SkipDescend bool
}

// Keep is the zero Result: no substitution, descend normally.
var Keep = Result{}

// PreFilter runs before a child's own children are visited.
type PreFilter func(node *tree.Node, ctx *Context) (Result, error)

// PostFilter runs after a child's own children have been visited (unless
// the pre-filter requested SkipDescend, in which case PostFilter still
// runs on the same, non-descended node).
type PostFilter func(node *tree.Node, ctx *Context) (Result, error)

// Walk visits parent's children in order, applying pre then (unless
// skipped) descending and applying post. Replacements splice in place;
// the walker advances its index past newly spliced nodes so they are
// never re-visited in the same pass.
func Walk(parent *tree.Node, pre PreFilter, post PostFilter) error {
	i := 0
	for i < len(parent.Children) {
		child := parent.Children[i]
		ctx := &Context{Scratch: map[string]interface{}{}}

		replaced := []*tree.Node{child}
		skip := false
		if pre != nil {
			res, err := pre(child, ctx)
			if err != nil {
				return err
			}
			if res.Replace != nil {
				replaced = res.Replace
			}
			skip = res.SkipDescend
		}
		parent.Children = splice(parent.Children, i, replaced)

		if !skip {
			for k := 0; k < len(replaced); k++ {
				node := parent.Children[i+k]
				if err := Walk(node, pre, post); err != nil {
					return err
				}
			}
		}

		if post != nil && len(replaced) > 0 {
			// Post-filter only inspects the first replacement node; a
			// pre-filter that already fanned a child out to several
			// nodes has made its substitution decision and post simply
			// continues past them.
			node := parent.Children[i]
			res, err := post(node, ctx)
			if err != nil {
				return err
			}
			if res.Replace != nil {
				parent.Children = splice(parent.Children, i, res.Replace)
				replaced = res.Replace
			}
		}

		i += len(replaced)
	}
	return nil
}

func splice(children []*tree.Node, i int, replacement []*tree.Node) []*tree.Node {
	out := make([]*tree.Node, 0, len(children)-1+len(replacement))
	out = append(out, children[:i]...)
	out = append(out, replacement...)
	out = append(out, children[i+1:]...)
	return out
}
