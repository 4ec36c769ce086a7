package svgrender_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dxfcut/camm/parse"
	"github.com/viant/dxfcut/camm/svgrender"
	"github.com/viant/dxfcut/diag"
)

func render(t *testing.T, src string, opts ...svgrender.Option) (string, *diag.Collector) {
	t.Helper()
	diags := &diag.Collector{}
	r := svgrender.New(diags, opts...)
	for _, tok := range parse.Tokenize(src, nil) {
		r.Handle(tok)
	}
	return r.SVG(), diags
}

func TestRenderSimplePath(t *testing.T) {
	svg, diags := render(t, "IN;PA0,0;PD10,0,10,10;")
	assert.Contains(t, svg, "<path")
	assert.Contains(t, svg, "M0,0")
	assert.Contains(t, svg, "L10,0")
	assert.Empty(t, diags.Entries)
}

func TestRenderUnknownCommandWarns(t *testing.T) {
	_, diags := render(t, "ZZ1,2;")
	assert.Len(t, diags.Entries, 1)
	assert.Contains(t, diags.Entries[0].Message, "ignoring unknown command")
}

func TestRenderUnimplementedRecognizedWarns(t *testing.T) {
	_, diags := render(t, "VS10;")
	assert.Len(t, diags.Entries, 1)
	assert.Contains(t, diags.Entries[0].Message, "unimplemented")
}

func TestRenderCircle(t *testing.T) {
	svg, _ := render(t, "PA5,5;CI3;")
	assert.Contains(t, svg, "<circle")
	assert.True(t, strings.Contains(svg, `r="3"`))
}

func TestRenderInputWindowSetsViewBox(t *testing.T) {
	svg, _ := render(t, "IW0,0,100,200;")
	assert.Contains(t, svg, `viewBox="0 0 100 200"`)
}

func TestRenderSplitColorsByIndex(t *testing.T) {
	svg, _ := render(t, "PA0,0;PD1,1;PU5,5;PD6,6;", svgrender.WithSplit())
	assert.Equal(t, 2, strings.Count(svg, "<path"))
}
