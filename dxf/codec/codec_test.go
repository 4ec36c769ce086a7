package codec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/dxfcut/dxf/codec"
	"github.com/viant/dxfcut/dxf/tree"
)

func minimalDXF(entitiesBody string) string {
	return strings.Join([]string{
		"0", "SECTION",
		"2", "ENTITIES",
		entitiesBody,
		"0", "ENDSEC",
		"0", "EOF",
	}, "\n") + "\n"
}

func TestParseMinimalDocument(t *testing.T) {
	src := minimalDXF(strings.Join([]string{"0", "LINE", "10", "0", "20", "0", "11", "5", "21", "5"}, "\n"))
	root, err := codec.Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, root.EndTag)
	assert.Equal(t, "EOF", root.EndTag.Name)

	section := root.Children[0]
	assert.Equal(t, "SECTION", section.Name)
	assert.Equal(t, "ENTITIES", section.GetString("name"))
	require.Len(t, section.Children, 1)

	line := section.Children[0]
	assert.Equal(t, "LINE", line.Name)
	assert.Equal(t, "0", line.GetString("x"))
	assert.Equal(t, "5", line.GetString("x1"))
}

func TestParseOddLineCountIsParseError(t *testing.T) {
	_, err := codec.Parse(strings.NewReader("0\nSECTION\n0\n"))
	require.Error(t, err)
}

func TestParseNonNumericCodeIsParseError(t *testing.T) {
	_, err := codec.Parse(strings.NewReader("X\nSECTION\n0\nEOF\n"))
	require.Error(t, err)
}

func TestParseMissingEOFIsParseError(t *testing.T) {
	_, err := codec.Parse(strings.NewReader("0\nSECTION\n0\nENDSEC\n"))
	require.Error(t, err)
}

func TestParseUnmatchedEndNodeIsTolerated(t *testing.T) {
	src := strings.Join([]string{"0", "ENDTAB", "0", "EOF"}, "\n") + "\n"
	root, err := codec.Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, root.Children)
}

func TestEmitRoundTripsCoordinatesAndHeaderVars(t *testing.T) {
	src := strings.Join([]string{
		"0", "SECTION",
		"2", "HEADER",
		"9", "$ACADVER",
		"1", "AC1021",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LWPOLYLINE",
		"10", "0", "20", "0",
		"10", "1", "20", "1",
		"70", "1",
		"0", "ENDSEC",
		"0", "EOF",
	}, "\n") + "\n"

	root, err := codec.Parse(strings.NewReader(src))
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, codec.Emit(&out, root))

	again, err := codec.Parse(strings.NewReader(out.String()))
	require.NoError(t, err)

	header := again.Children[0]
	require.Len(t, header.Children, 1)
	assert.Equal(t, "$ACADVER", header.Children[0].Name)
	assert.Equal(t, "AC1021", header.Children[0].GetString("text"))

	entities := again.Children[1]
	poly := entities.Children[0]
	assert.Equal(t, "LWPOLYLINE", poly.Name)
	assert.Equal(t, []string{"0", "1"}, getStrings(t, poly, "x"))
	assert.Equal(t, []string{"0", "1"}, getStrings(t, poly, "y"))
	assert.Equal(t, "1", poly.GetString("int"))
}

func getStrings(t *testing.T, n *tree.Node, name string) []string {
	t.Helper()
	v, ok := n.Get(name)
	require.True(t, ok)
	return v.Strings()
}

func TestCodeToNameRanges(t *testing.T) {
	tests := []struct {
		code int
		name string
	}{
		{0, "i0"},
		{10, "x"},
		{13, "x3"},
		{40, "float"},
		{90, "int_32"},
		{92, "int_32_2"},
		{280, "int_8"},
		{290, "bool"},
		{8, "layer"},
		{999, "comment"},
		{12345, "i12345"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, codec.CodeToName(tt.code))
	}
}

func TestNameToCodeIsInverseOfCodeToName(t *testing.T) {
	for _, code := range []int{10, 13, 40, 90, 92, 280, 290, 8, 999} {
		name := codec.CodeToName(code)
		got, ok := codec.NameToCode(name)
		require.True(t, ok)
		assert.Equal(t, code, got)
	}
}

func TestPointIndexName(t *testing.T) {
	assert.Equal(t, "x", codec.PointIndexName('x', 0))
	assert.Equal(t, "y3", codec.PointIndexName('y', 3))
}
