package poly_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/dxfcut/geom"
	"github.com/viant/dxfcut/poly"
)

func box(minX, minY, maxX, maxY float64) poly.BBox {
	return poly.BBox{Min: geom.Point{X: minX, Y: minY}, Max: geom.Point{X: maxX, Y: maxY}, Valid: true}
}

func TestParseCriteria(t *testing.T) {
	got, err := poly.ParseCriteria("left-asc,box,top-desc")
	assert.NoError(t, err)
	assert.Equal(t, []poly.Criterion{
		{Key: "left", Desc: false},
		{Key: "box"},
		{Key: "top", Desc: true},
	}, got)
}

func TestParseCriteriaRejectsUnknown(t *testing.T) {
	_, err := poly.ParseCriteria("diagonal")
	assert.Error(t, err)
}

func TestSortNumericAscending(t *testing.T) {
	pls := []poly.Polyline{{}, {}, {}}
	bboxes := []poly.BBox{box(5, 0, 6, 1), box(1, 0, 2, 1), box(3, 0, 4, 1)}
	crit, _ := poly.ParseCriteria("left-asc")
	_, sortedB := poly.Sort(pls, bboxes, crit, 0)
	assert.Equal(t, []float64{1, 3, 5}, []float64{sortedB[0].Min.X, sortedB[1].Min.X, sortedB[2].Min.X})
}

func TestSortBoxNestsInsideFirst(t *testing.T) {
	outer := box(0, 0, 10, 10)
	inner := box(2, 2, 4, 4)
	pls := []poly.Polyline{{Points: []geom.Point{{X: 0}}}, {Points: []geom.Point{{X: 1}}}}
	bboxes := []poly.BBox{outer, inner}
	crit, _ := poly.ParseCriteria("box")
	sortedP, sortedB := poly.Sort(pls, bboxes, crit, 0)
	assert.Equal(t, inner, sortedB[0])
	assert.Equal(t, outer, sortedB[1])
	assert.Equal(t, pls[1], sortedP[0])
}
