package walk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/dxfcut/dxf/tree"
	"github.com/viant/dxfcut/dxf/walk"
)

func section(name string, children ...*tree.Node) *tree.Node {
	s := tree.New("SECTION")
	s.Set("name", name)
	for _, c := range children {
		s.AddChild(c)
	}
	return s
}

func TestWalkReplacesAndSkipsReplacements(t *testing.T) {
	root := tree.New("ENTITIES")
	root.AddChild(tree.New("SPLINE"))
	root.AddChild(tree.New("LINE"))

	var visited []string
	pre := func(n *tree.Node, ctx *walk.Context) (walk.Result, error) {
		if n.Name == "SPLINE" {
			return walk.Result{Replace: []*tree.Node{tree.New("LWPOLYLINE"), tree.New("LWPOLYLINE")}}, nil
		}
		return walk.Keep, nil
	}
	post := func(n *tree.Node, ctx *walk.Context) (walk.Result, error) {
		visited = append(visited, n.Name)
		return walk.Keep, nil
	}

	require.NoError(t, walk.Walk(root, pre, post))
	require.Len(t, root.Children, 3)
	assert.Equal(t, "LWPOLYLINE", root.Children[0].Name)
	assert.Equal(t, "LWPOLYLINE", root.Children[1].Name)
	assert.Equal(t, "LINE", root.Children[2].Name)
	assert.Equal(t, []string{"LWPOLYLINE", "LINE"}, visited, "post only runs once per original child, not once per replacement")
}

func TestWalkPropagatesFilterError(t *testing.T) {
	root := tree.New("ENTITIES")
	root.AddChild(tree.New("LINE"))

	boom := assertErr{}
	err := walk.Walk(root, func(n *tree.Node, ctx *walk.Context) (walk.Result, error) {
		return walk.Keep, boom
	}, nil)
	assert.Equal(t, boom, err)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestCanonicalizeOrdersAndFillsSections(t *testing.T) {
	root := tree.New("root")
	root.AddChild(section("ENTITIES", tree.New("LINE")))

	walk.Canonicalize(root)

	require.Len(t, root.Children, len(walk.CanonicalSections))
	for i, name := range walk.CanonicalSections {
		assert.Equal(t, name, root.Children[i].GetString("name"))
	}
	header := root.Children[0]
	require.Len(t, header.Children, 1)
	assert.Equal(t, "$ACADVER", header.Children[0].Name)
}

func TestCanonicalizeMergesDuplicateSectionsDeduplicatingIdenticalChildren(t *testing.T) {
	line := func() *tree.Node {
		n := tree.New("LINE")
		n.Set("x", "0")
		n.Set("y", "0")
		return n
	}

	root := tree.New("root")
	root.AddChild(section("ENTITIES", line()))
	root.AddChild(section("ENTITIES", line(), tree.New("CIRCLE")))

	walk.Canonicalize(root)

	entities := root.Children[4]
	assert.Equal(t, "ENTITIES", entities.GetString("name"))
	require.Len(t, entities.Children, 2, "the duplicated LINE must not be kept twice")
	names := []string{entities.Children[0].Name, entities.Children[1].Name}
	assert.ElementsMatch(t, []string{"LINE", "CIRCLE"}, names)
}

func TestCanonicalizeDropsEndTags(t *testing.T) {
	root := tree.New("root")
	ents := section("ENTITIES")
	ents.EndTag = tree.New("ENDSEC")
	root.AddChild(ents)

	walk.Canonicalize(root)
	for _, c := range root.Children {
		assert.Nil(t, c.EndTag)
	}
}

func TestStripRemovesClassesAndTablesEmptiesBlocksAndObjects(t *testing.T) {
	root := tree.New("root")
	root.AddChild(section("CLASSES", tree.New("LINE")))
	root.AddChild(section("TABLES", tree.New("LINE")))
	root.AddChild(section("BLOCKS", tree.New("BLOCK")))
	root.AddChild(section("OBJECTS", tree.New("DICTIONARY")))
	entity := tree.New("LINE")
	entity.Set("comment", "keep off")
	root.AddChild(section("ENTITIES", entity))

	walk.Strip(root)

	var names []string
	for _, c := range root.Children {
		names = append(names, c.GetString("name"))
	}
	assert.ElementsMatch(t, []string{"BLOCKS", "OBJECTS", "ENTITIES"}, names)

	for _, c := range root.Children {
		if c.GetString("name") == "BLOCKS" || c.GetString("name") == "OBJECTS" {
			assert.Empty(t, c.Children)
		}
	}
	ents := root.Children[len(root.Children)-1]
	assert.False(t, ents.Children[0].Has("comment"))
}

func TestParseCriterion(t *testing.T) {
	c, err := walk.ParseCriterion("+LINE")
	require.NoError(t, err)
	assert.True(t, criterionMatches(c, "LINE"))
	assert.False(t, criterionMatches(c, "CIRCLE"))

	c, err = walk.ParseCriterion("-LINE")
	require.NoError(t, err)
	assert.False(t, criterionMatches(c, "LINE"))
	assert.True(t, criterionMatches(c, "CIRCLE"))

	_, err = walk.ParseCriterion("")
	assert.Error(t, err)

	_, err = walk.ParseCriterion("+")
	assert.Error(t, err)
}

func criterionMatches(c walk.Criterion, name string) bool {
	var kept []*tree.Node
	root := tree.New("root")
	ents := section("ENTITIES")
	n := tree.New(name)
	ents.AddChild(n)
	root.AddChild(ents)
	_ = walk.Apply(root, c)
	kept = ents.Children
	return len(kept) == 1
}

func TestApplyFiltersAcrossAllThreeSections(t *testing.T) {
	root := tree.New("root")
	root.AddChild(section("BLOCKS", blockWith(tree.New("LINE"), tree.New("CIRCLE"))))
	root.AddChild(section("ENTITIES", tree.New("LINE"), tree.New("CIRCLE")))
	root.AddChild(section("OBJECTS", tree.New("LINE"), tree.New("CIRCLE")))

	require.NoError(t, walk.Apply(root, walk.TypeCriterion(true, "CIRCLE")))

	assert.Len(t, root.Children[0].Children[0].Children, 1)
	assert.Len(t, root.Children[1].Children, 1)
	assert.Len(t, root.Children[2].Children, 1)
}

func blockWith(children ...*tree.Node) *tree.Node {
	b := tree.New("BLOCK")
	for _, c := range children {
		b.AddChild(c)
	}
	return b
}

func TestFindSection(t *testing.T) {
	root := tree.New("root")
	root.AddChild(section("ENTITIES"))
	assert.NotNil(t, walk.FindSection(root, "ENTITIES"))
	assert.Nil(t, walk.FindSection(root, "OBJECTS"))
}
