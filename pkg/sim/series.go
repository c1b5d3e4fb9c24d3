package sim

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Metric ranges of the synthetic crop series.
const (
	YieldMin, YieldMax               = 35.0, 50.0
	PestPressureMin, PestPressureMax = 5.0, 15.0
	NutrientsMin, NutrientsMax       = 70.0, 90.0
)

// Point is one simulated day.
type Point struct {
	Day          int     `json:"day"`
	Yield        float64 `json:"yield"`
	PestPressure float64 `json:"pest_pressure"`
	Nutrients    float64 `json:"nutrients"`
}

func (p Point) String() string {
	return fmt.Sprintf("day %2d  yield %5.1f  pests %4.1f  nutrients %4.1f", p.Day, p.Yield, p.PestPressure, p.Nutrients)
}

// GenerateSeries draws horizon points, each metric independently uniform
// in its range and rounded to one decimal.
func GenerateSeries(rng *rand.Rand, horizon int) []Point {
	series := make([]Point, horizon)
	for i := range series {
		series[i] = Point{
			Day:          i + 1,
			Yield:        draw(rng, YieldMin, YieldMax),
			PestPressure: draw(rng, PestPressureMin, PestPressureMax),
			Nutrients:    draw(rng, NutrientsMin, NutrientsMax),
		}
	}
	return series
}

func draw(rng *rand.Rand, lo, hi float64) float64 {
	return math.Round((lo+rng.Float64()*(hi-lo))*10) / 10
}
