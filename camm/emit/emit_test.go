package emit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dxfcut/camm/emit"
	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly"
)

func TestHeaderFooterStateTransitions(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(&buf)
	e.Header()
	e.Footer()
	e.Flush()

	assert.Equal(t, "IN;PU;SP0;", buf.String())
	assert.Equal(t, emit.Absolute, e.State().Mode)
	assert.False(t, e.State().PenDown)
}

func TestMoveToEmitsPAOnlyWhenModeChanges(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(&buf)
	e.MoveToRelative(geom.Point{X: 1, Y: 1}) // enters relative mode
	e.MoveTo(geom.Point{X: 5, Y: 5})          // must switch back to absolute first
	e.Flush()

	assert.Contains(t, buf.String(), "PR;")
	assert.Contains(t, buf.String(), "PA;")
}

func TestToolUpDownNoPrecondition(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(&buf)
	e.ToolDown()
	e.Flush()
	assert.Equal(t, "PD;", buf.String())
	assert.True(t, e.State().PenDown)
}

func TestDirectPolylineWithoutOffset(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(&buf)
	kc := emit.NewKnifeCompensator(e, 0, 0.001, 0.1, 1, false)
	kc.EmitPolyline(poly.Polyline{Kind: poly.Open, Points: []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	}})
	e.Flush()
	assert.Contains(t, buf.String(), "PU")
	assert.Contains(t, buf.String(), "PD")
}

func TestKnifeOffsetEmitsArcOnSharpTurn(t *testing.T) {
	var buf bytes.Buffer
	e := emit.New(&buf)
	kc := emit.NewKnifeCompensator(e, 1, 0.001, 0.01, 1000, false)
	kc.EmitPolyline(poly.Polyline{Kind: poly.Open, Points: []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	}})
	e.Flush()
	assert.Contains(t, buf.String(), "AA")
}
