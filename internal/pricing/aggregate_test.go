package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum_IsOrderIndependent(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 1e6, 1e-3, 7.77, -2.5}
	want := Sum(values)

	reversed := make([]float64, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}
	assert.Equal(t, want, Sum(reversed), "reversed")

	rotated := append(append([]float64{}, values[3:]...), values[:3]...)
	assert.Equal(t, want, Sum(rotated), "rotated")
}

func TestSum_IsExactForDecimalInputs(t *testing.T) {
	assert.Equal(t, 0.3, Sum([]float64{0.1, 0.2}))
}

func TestSum_SkipsNonFiniteValues(t *testing.T) {
	assert.Equal(t, 15.0, Sum([]float64{10, math.NaN(), math.Inf(1), 5}))
}

func TestAggregateGoods(t *testing.T) {
	totals := AggregateGoods([]float64{3000, 1500}, []float64{250, 250, 0})

	assert.InDelta(t, 4500, totals.Hardware, delta)
	assert.InDelta(t, 500, totals.Material, delta)
	assert.InDelta(t, 5000, totals.Grand, delta)

	assert.Equal(t, GoodsTotals{}, AggregateGoods(nil, nil))
}
