package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovingAverage_Update_BlendsTenPercent(t *testing.T) {
	ma := MovingAverage{Factor: 0.9}
	assert.InDelta(t, 1.0, ma.Update(10), 1e-12)
	assert.InDelta(t, 0.9, ma.Update(0), 1e-12)
	assert.InDelta(t, 0.81+0.5, ma.Update(5), 1e-12)
}

func TestMovingAverage_ConvergesToConstantSample(t *testing.T) {
	ma := MovingAverage{Factor: 0.9}
	for i := 0; i < 500; i++ {
		ma.Update(4)
	}
	assert.InDelta(t, 4.0, ma.Value, 1e-9)
}

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]int{}))
	assert.Equal(t, 2.5, CalculateMean([]int{1, 2, 3, 4}))
	assert.Equal(t, 1.5, CalculateMean([]float64{1, 2}))
}

func TestCalculateStdDev_Population(t *testing.T) {
	assert.Equal(t, 0.0, CalculateStdDev([]float64{}))
	assert.Equal(t, 0.0, CalculateStdDev([]float64{3, 3, 3}))
	assert.InDelta(t, 2.5, CalculateStdDev([]float64{5, 0}), 1e-12)
	assert.InDelta(t, 2.0, CalculateStdDev([]int{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0, Sum([]int(nil)))
	assert.Equal(t, 9, Sum([]int{4, 0, 5}))
	assert.Equal(t, int64(3), Sum([]int64{1, 2}))
}
