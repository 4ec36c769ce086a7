package poly_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly"
)

func TestCoarsen(t *testing.T) {
	tests := []struct {
		name      string
		in        poly.Polyline
		threshold float64
		want      []geom.Point
	}{
		{
			name: "drops close interior points but keeps endpoints",
			in: poly.Polyline{Kind: poly.Open, Points: []geom.Point{
				{X: 0, Y: 0}, {X: 0.01, Y: 0}, {X: 5, Y: 0}, {X: 5.01, Y: 0}, {X: 10, Y: 0},
			}},
			threshold: 1,
			want: []geom.Point{
				{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0},
			},
		},
		{
			name: "short polyline untouched",
			in: poly.Polyline{Kind: poly.Open, Points: []geom.Point{
				{X: 0, Y: 0}, {X: 1, Y: 0},
			}},
			threshold: 100,
			want:      []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := poly.Coarsen([]poly.Polyline{tt.in}, tt.threshold)
			assert.Equal(t, tt.want, out[0].Points)
		})
	}
}

func TestBBox(t *testing.T) {
	p := poly.Polyline{Kind: poly.Open, Points: []geom.Point{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 0}}}
	b := poly.Of(p)
	assert.True(t, b.Valid)
	assert.Equal(t, geom.Point{X: -1, Y: -4}, b.Min)
	assert.Equal(t, geom.Point{X: 3, Y: 2}, b.Max)
}

func TestBBoxDegenerate(t *testing.T) {
	p := poly.Polyline{Kind: poly.Open, Points: []geom.Point{{X: 1, Y: 1}, {X: 1, Y: 1}}}
	assert.False(t, poly.Of(p).Valid)
}

func TestAddOverlap(t *testing.T) {
	square := poly.Polyline{Kind: poly.Closed, Points: []geom.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}}
	out := poly.AddOverlap([]poly.Polyline{square}, 5)
	got := out[0]
	assert.Equal(t, poly.Open, got.Kind)
	assert.True(t, len(got.Points) > len(square.Points))
	// the appended prefix reaches exactly 5mm past the closing vertex,
	// landing mid-segment along the first edge.
	last := got.Points[len(got.Points)-1]
	assert.InDelta(t, 5.0, last.X, 1e-9)
	assert.InDelta(t, 0.0, last.Y, 1e-9)
}

func TestFrame(t *testing.T) {
	b := poly.BBox{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}, Valid: true}
	f := poly.Frame(b, 2)
	assert.Equal(t, poly.Closed, f.Kind)
	assert.Equal(t, geom.Point{X: -2, Y: -2}, f.Points[0])
	assert.Equal(t, f.Points[0], f.Points[len(f.Points)-1])
}
