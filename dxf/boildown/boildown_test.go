package boildown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/dxfcut/dxf/boildown"
	"github.com/viant/dxfcut/dxf/tree"
)

func entitiesRoot(entities ...*tree.Node) *tree.Node {
	root := tree.New("root")
	section := tree.New("SECTION")
	section.Set("name", "ENTITIES")
	for _, e := range entities {
		section.AddChild(e)
	}
	root.AddChild(section)
	return root
}

func TestBoilDownLineToLWPolyline(t *testing.T) {
	line := tree.New("LINE")
	line.Set("x", "0")
	line.Set("y", "0")
	line.Set("x1", "5")
	line.Set("y1", "5")
	line.Set("layer", "CUT")

	root := entitiesRoot(line)
	require.NoError(t, boildown.BoilDown(root, []string{"LWPOLYLINE"}, []string{"LINE"}))

	ents := root.Children[0]
	require.Len(t, ents.Children, 1)
	lw := ents.Children[0]
	assert.Equal(t, "LWPOLYLINE", lw.Name)
	v, ok := lw.Get("x")
	require.True(t, ok)
	assert.Equal(t, []string{"0", "5"}, v.Strings())
	assert.Equal(t, "CUT", lw.GetString("layer"), "InheritGeneral must carry the replaced node's layer")
}

func TestBoilDownChainsThroughMultipleEdges(t *testing.T) {
	circle := tree.New("CIRCLE")
	circle.Set("x", "0")
	circle.Set("y", "0")
	circle.Set("float", "1")

	root := entitiesRoot(circle)
	require.NoError(t, boildown.BoilDown(root, []string{"LWPOLYLINE"}, []string{"CIRCLE"}))

	ents := root.Children[0]
	require.Len(t, ents.Children, 1)
	assert.Equal(t, "LWPOLYLINE", ents.Children[0].Name)
}

func TestBoilDownAcceptableKindIsUntouched(t *testing.T) {
	lw := tree.New("LWPOLYLINE")
	lw.Set("x", "0")
	root := entitiesRoot(lw)

	require.NoError(t, boildown.BoilDown(root, []string{"LWPOLYLINE"}, []string{"LINE", "CIRCLE"}))
	assert.Same(t, lw, root.Children[0].Children[0])
}

func TestBoilDownUnresolvedKindIsUnsupportedEntity(t *testing.T) {
	root := entitiesRoot(tree.New("TEXT"))
	err := boildown.BoilDown(root, []string{"LWPOLYLINE"}, []string{"TEXT"})
	require.Error(t, err)
}

func TestBoilDownWithBulgeArcsExpandsVertexBulge(t *testing.T) {
	poly := tree.New("POLYLINE")
	v0 := tree.New("VERTEX")
	v0.Set("x", "0")
	v0.Set("y", "0")
	v0.Set("float1", "1") // bulge of 1 == a semicircle
	v1 := tree.New("VERTEX")
	v1.Set("x", "2")
	v1.Set("y", "0")
	poly.AddChild(v0)
	poly.AddChild(v1)

	root := entitiesRoot(poly)
	require.NoError(t, boildown.BoilDown(root, []string{"LWPOLYLINE"}, []string{"POLYLINE"}, boildown.WithBulgeArcs()))

	lw := root.Children[0].Children[0]
	xv, _ := lw.Get("x")
	assert.Greater(t, len(xv.Strings()), 2, "bulge expansion should add intermediate arc points")
}

func TestBoilDownPolylineWithoutVerticesIsInvalidPolyline(t *testing.T) {
	root := entitiesRoot(tree.New("POLYLINE"))
	err := boildown.BoilDown(root, []string{"LWPOLYLINE"}, []string{"POLYLINE"})
	assert.Error(t, err)
}
