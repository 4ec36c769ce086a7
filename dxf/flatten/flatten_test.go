package flatten_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/dxfcut/dxf/flatten"
	"github.com/viant/dxfcut/dxf/tree"
)

func rootWithBlockAndInsert(block, insert *tree.Node) *tree.Node {
	root := tree.New("root")

	blocks := tree.New("SECTION")
	blocks.Set("name", "BLOCKS")
	blocks.AddChild(block)
	root.AddChild(blocks)

	entities := tree.New("SECTION")
	entities.Set("name", "ENTITIES")
	entities.AddChild(insert)
	root.AddChild(entities)

	return root
}

func lineBlock(name string) *tree.Node {
	b := tree.New("BLOCK")
	b.Set("name", name)
	b.Set("x", "0")
	b.Set("y", "0")
	line := tree.New("LINE")
	line.Set("x", "0")
	line.Set("y", "0")
	line.Set("x1", "1")
	line.Set("y1", "0")
	b.AddChild(line)
	return b
}

func TestFlattenResolvesSimpleInsert(t *testing.T) {
	insert := tree.New("INSERT")
	insert.Set("name", "FOO")
	insert.Set("x", "10")
	insert.Set("y", "20")

	root := rootWithBlockAndInsert(lineBlock("FOO"), insert)
	require.NoError(t, flatten.Flatten(root))

	entities := root.Children[1]
	require.Len(t, entities.Children, 1)
	line := entities.Children[0]
	assert.Equal(t, "LINE", line.Name)
	assert.Equal(t, "10", line.GetString("x"))
	assert.Equal(t, "20", line.GetString("y"))
	assert.Equal(t, "11", line.GetString("x1"))
	assert.Equal(t, "20", line.GetString("y1"))

	blocks := root.Children[0]
	assert.Empty(t, blocks.Children, "BLOCKS is emptied after flatten")
}

func TestFlattenExpandsArray(t *testing.T) {
	insert := tree.New("INSERT")
	insert.Set("name", "FOO")
	insert.Set("x", "0")
	insert.Set("y", "0")
	insert.Set("int", "2")  // columns
	insert.Set("int1", "1") // rows
	insert.Set("float4", "5")

	root := rootWithBlockAndInsert(lineBlock("FOO"), insert)
	require.NoError(t, flatten.Flatten(root))

	entities := root.Children[1]
	require.Len(t, entities.Children, 2)
	assert.Equal(t, "0", entities.Children[0].GetString("x"))
	assert.Equal(t, "5", entities.Children[1].GetString("x"))
}

func TestFlattenRotatedInsertMatchesWorkedExample(t *testing.T) {
	// spec.md §8 scenario 2: BLOCK B anchored at (10,0) containing LINE
	// (0,0)->(10,0); INSERT B x=100 y=200 xscale=2 yscale=1 rot=90 must
	// flatten to LINE (100,200)->(100,220).
	b := tree.New("BLOCK")
	b.Set("name", "B")
	b.Set("x", "10")
	b.Set("y", "0")
	line := tree.New("LINE")
	line.Set("x", "0")
	line.Set("y", "0")
	line.Set("x1", "10")
	line.Set("y1", "0")
	b.AddChild(line)

	insert := tree.New("INSERT")
	insert.Set("name", "B")
	insert.Set("x", "100")
	insert.Set("y", "200")
	insert.Set("float1", "2") // xscale
	insert.Set("float2", "1") // yscale
	insert.Set("angle", "90")

	root := rootWithBlockAndInsert(b, insert)
	require.NoError(t, flatten.Flatten(root))

	entities := root.Children[1]
	require.Len(t, entities.Children, 1)
	got := entities.Children[0]
	assert.Equal(t, "100", got.GetString("x"))
	assert.Equal(t, "200", got.GetString("y"))
	assert.Equal(t, "100", got.GetString("x1"))
	assert.Equal(t, "220", got.GetString("y1"))
}

func TestFlattenUnknownBlockReferenceErrors(t *testing.T) {
	insert := tree.New("INSERT")
	insert.Set("name", "MISSING")
	root := rootWithBlockAndInsert(lineBlock("FOO"), insert)
	err := flatten.Flatten(root)
	assert.Error(t, err)
}

func TestFlattenUnsupportedBlockChildErrors(t *testing.T) {
	b := tree.New("BLOCK")
	b.Set("name", "FOO")
	b.AddChild(tree.New("CIRCLE"))

	insert := tree.New("INSERT")
	insert.Set("name", "FOO")

	root := rootWithBlockAndInsert(b, insert)
	err := flatten.Flatten(root)
	assert.Error(t, err)
}

func TestFlattenIsIdempotent(t *testing.T) {
	insert := tree.New("INSERT")
	insert.Set("name", "FOO")
	insert.Set("x", "10")
	insert.Set("y", "20")

	root := rootWithBlockAndInsert(lineBlock("FOO"), insert)
	require.NoError(t, flatten.Flatten(root))
	require.NoError(t, flatten.Flatten(root), "flattening an already-flat tree must be a no-op, not an error")

	entities := root.Children[1]
	assert.Len(t, entities.Children, 1)
}
