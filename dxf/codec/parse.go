// Package codec implements the DXF group-code stream parser and emitter
// (spec.md §4.1, C1) plus the attribute-alias table (§6) the rest of the
// pipeline builds on.
package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/errs"
)

const opParse = "codec.Parse"

// Parse reads a DXF group-code stream and returns the resolved tree
// rooted at a synthetic "root" node whose EndTag is the document's EOF
// node. See spec.md §4.1.
func Parse(r io.Reader) (*tree.Node, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, errs.Wrap(errs.IOError, opParse, err)
	}
	if len(lines)%2 != 0 {
		return nil, errs.New(errs.ParseError, opParse, "odd number of lines in group-code stream (%d)", len(lines))
	}

	flat, err := scanFlat(lines)
	if err != nil {
		return nil, err
	}

	root := tree.New("root")
	if err := resolveHierarchy(root, flat); err != nil {
		return nil, err
	}
	if root.EndTag == nil {
		return nil, errs.New(errs.ParseError, opParse, "missing EOF: document has no terminating EOF node")
	}
	return root, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanFlat performs the linear sweep of §4.1: accumulate a flat list of
// nodes and attribute assignments in stream order.
func scanFlat(lines []string) ([]*tree.Node, error) {
	var flat []*tree.Node
	var cur *tree.Node
	for i := 0; i+1 < len(lines); i += 2 {
		codeStr := strings.TrimSpace(lines[i])
		value := lines[i+1]
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			return nil, errs.New(errs.ParseError, opParse, "line %d: non-numeric group code %q", i+1, lines[i])
		}
		if code == 0 || code == 9 {
			cur = tree.New(value)
			flat = append(flat, cur)
			continue
		}
		if cur == nil {
			return nil, errs.New(errs.ParseError, opParse, "line %d: attribute group code %d before any node", i+1, code)
		}
		cur.AppendAttr(CodeToName(code), value)
	}
	return flat, nil
}

// resolveHierarchy nests the flat node list (§4.1): an end-node closes
// the closest open starter it pairs with, the nodes read since that
// starter become its children, and the end-node is kept as the
// starter's EndTag. An end-node with no open starter is dropped; no
// warning is recorded for it. A node following the closing EOF is a
// ParseError.
func resolveHierarchy(root *tree.Node, flat []*tree.Node) error {
	stack := []*tree.Node{root}
	for _, n := range flat {
		if expected, isEnd := StarterFor[n.Name]; isEnd {
			idx := -1
			for j := len(stack) - 1; j >= 0; j-- {
				if stack[j].Name == expected {
					idx = j
					break
				}
			}
			if idx < 0 {
				// Unmatched end-node: tolerated, dropped.
				continue
			}
			stack[idx].EndTag = n
			stack = stack[:idx]
			continue
		}
		if len(stack) == 0 {
			return errs.New(errs.ParseError, opParse, "node %s follows the closing EOF", n.Name)
		}
		parent := stack[len(stack)-1]
		parent.AddChild(n)
		if _, isStarter := EndNodeFor[n.Name]; isStarter {
			stack = append(stack, n)
		}
	}
	return nil
}
