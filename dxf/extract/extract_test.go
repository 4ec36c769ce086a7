package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/dxfcut/diag"
	"github.com/viant/dxfcut/dxf/extract"
	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/poly"
)

func entitiesRoot(children ...*tree.Node) *tree.Node {
	root := tree.New("root")
	section := tree.New("SECTION")
	section.Set("name", "ENTITIES")
	for _, c := range children {
		section.AddChild(c)
	}
	root.AddChild(section)
	return root
}

func lwpolyline(xs, ys []string, closed bool) *tree.Node {
	n := tree.New("LWPOLYLINE")
	n.SetValue("x", tree.List(xs))
	n.SetValue("y", tree.List(ys))
	if closed {
		n.Set("int", "1")
	}
	return n
}

func TestPolylinesExtractsOpenAndClosed(t *testing.T) {
	root := entitiesRoot(
		lwpolyline([]string{"0", "1"}, []string{"0", "1"}, false),
		lwpolyline([]string{"0", "1", "1"}, []string{"0", "0", "1"}, true),
	)

	pls, err := extract.Polylines(root, &diag.Collector{})
	require.NoError(t, err)
	require.Len(t, pls, 2)
	assert.Equal(t, poly.Open, pls[0].Kind)
	assert.Equal(t, poly.Closed, pls[1].Kind)
	assert.Len(t, pls[0].Points, 2)
	assert.Equal(t, 1.0, pls[0].Points[1].X)
}

func TestPolylinesSkipsPointAndWarnsOnUnsupported(t *testing.T) {
	root := entitiesRoot(tree.New("POINT"), tree.New("TEXT"))
	diags := &diag.Collector{}

	pls, err := extract.Polylines(root, diags)
	require.NoError(t, err)
	assert.Empty(t, pls)
	require.Len(t, diags.Entries, 1)
	assert.Contains(t, diags.Entries[0].Message, "TEXT")
}

func TestPolylinesMissingCoordinateArrayIsInvalidPolyline(t *testing.T) {
	root := entitiesRoot(tree.New("LWPOLYLINE"))
	_, err := extract.Polylines(root, nil)
	assert.Error(t, err)
}

func TestPolylinesMismatchedArrayLengthsIsInvalidPolyline(t *testing.T) {
	n := tree.New("LWPOLYLINE")
	n.SetValue("x", tree.List([]string{"0", "1"}))
	n.SetValue("y", tree.List([]string{"0"}))
	root := entitiesRoot(n)

	_, err := extract.Polylines(root, nil)
	assert.Error(t, err)
}

func TestPolylinesNoEntitiesSectionReturnsEmpty(t *testing.T) {
	root := tree.New("root")
	pls, err := extract.Polylines(root, nil)
	require.NoError(t, err)
	assert.Nil(t, pls)
}
