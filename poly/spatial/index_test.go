package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly/spatial"
)

func TestQueryFindsNearestWithinEpsilon(t *testing.T) {
	ix := spatial.New(0.01)
	ix.InsertStart(1, geom.Point{X: 1, Y: 1})
	ix.InsertStart(2, geom.Point{X: 1.005, Y: 1})

	id, pt, found := ix.QueryStart(geom.Point{X: 1.001, Y: 1}, -1, 0.01)
	assert.True(t, found)
	assert.Equal(t, 1, id)
	assert.Equal(t, geom.Point{X: 1, Y: 1}, pt)
}

func TestQueryExcludesSelf(t *testing.T) {
	ix := spatial.New(0.01)
	ix.InsertStart(1, geom.Point{X: 1, Y: 1})

	_, _, found := ix.QueryStart(geom.Point{X: 1, Y: 1}, 1, 0.01)
	assert.False(t, found)
}

func TestQueryRespectsMaxDist(t *testing.T) {
	ix := spatial.New(0.01)
	ix.InsertStart(1, geom.Point{X: 1, Y: 1})

	_, _, found := ix.QueryStart(geom.Point{X: 1.5, Y: 1}, -1, 0.01)
	assert.False(t, found)
}

func TestRemoveDeletesFromAllBuckets(t *testing.T) {
	ix := spatial.New(0.01)
	p := geom.Point{X: 1, Y: 1}
	ix.InsertStart(1, p)
	ix.InsertEnd(1, p)
	ix.Remove(1, p, p)

	_, _, found := ix.QueryStart(p, -1, 0.01)
	assert.False(t, found)
	_, _, found = ix.QueryEnd(p, -1, 0.01)
	assert.False(t, found)
}

func TestBoundaryStraddlingPointsStillFound(t *testing.T) {
	// A cell boundary sits at every multiple of eps; a point just before
	// one must still be found from a query just past it.
	ix := spatial.New(1.0)
	ix.InsertStart(1, geom.Point{X: 1.99, Y: 0})

	id, _, found := ix.QueryStart(geom.Point{X: 2.0, Y: 0}, -1, 0.02)
	assert.True(t, found)
	assert.Equal(t, 1, id)
}
