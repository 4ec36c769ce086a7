// Package xmltree mirrors the DXF attributed tree (dxf/tree, C2) to
// and from XML: every tree.Node becomes one XML element, list-valued
// attributes are space-joined under a "-array"-suffixed attribute
// name, and a node name's leading '$' (HEADER variables) is rewritten
// to '_' since XML element names may not start with '$' (spec.md §6's
// "XML mirror"). Encoded with raw xml.Encoder/Decoder tokens rather
// than struct tags because a tree.Node's attribute set is dynamic.
package xmltree

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/errs"
)

const opXML = "xmltree"

const endTagElement = "EndTag"

// Marshal writes root and its subtree as an indented XML document.
func Marshal(w io.Writer, root *tree.Node) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := encodeNode(enc, root); err != nil {
		return errs.Wrap(errs.IOError, opXML, err)
	}
	return enc.Flush()
}

func encodeNode(enc *xml.Encoder, n *tree.Node) error {
	if n == nil {
		return nil
	}
	start := xml.StartElement{Name: xml.Name{Local: nodeToTag(n.Name)}, Attr: encodeAttrs(n)}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	if n.EndTag != nil {
		endStart := xml.StartElement{Name: xml.Name{Local: endTagElement}, Attr: encodeAttrs(n.EndTag)}
		if err := enc.EncodeToken(endStart); err != nil {
			return err
		}
		if err := enc.EncodeToken(xml.EndElement{Name: endStart.Name}); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

func encodeAttrs(n *tree.Node) []xml.Attr {
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]xml.Attr, 0, len(names))
	for _, name := range names {
		v := n.Attrs[name]
		if v.IsList() {
			attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name + "-array"}, Value: strings.Join(v.Strings(), " ")})
			continue
		}
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: v.String()})
	}
	return attrs
}

// Unmarshal reads an XML document produced by Marshal (or a
// hand-written file following the same mirror rules) back into a
// tree.Node.
func Unmarshal(r io.Reader) (*tree.Node, error) {
	dec := xml.NewDecoder(r)
	var root *tree.Node
	var stack []*tree.Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errs.Wrap(errs.ParseError, opXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := tree.New(tagToNode(t.Name.Local))
			for _, a := range t.Attr {
				setAttr(n, a.Name.Local, a.Value)
			}
			if t.Name.Local == endTagElement && len(stack) > 0 {
				stack[len(stack)-1].EndTag = n
				stack = append(stack, n)
				continue
			}
			if len(stack) > 0 {
				stack[len(stack)-1].AddChild(n)
			} else {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if root == nil {
		return nil, errs.New(errs.ParseError, opXML, "empty XML document")
	}
	return root, nil
}

func setAttr(n *tree.Node, name, value string) {
	if strings.HasSuffix(name, "-array") {
		base := strings.TrimSuffix(name, "-array")
		n.SetValue(base, tree.List(strings.Fields(value)))
		return
	}
	n.Set(name, value)
}

func nodeToTag(name string) string {
	if strings.HasPrefix(name, "$") {
		return "_" + name[1:]
	}
	return name
}

func tagToNode(tag string) string {
	if strings.HasPrefix(tag, "_") {
		return "$" + tag[1:]
	}
	return tag
}
