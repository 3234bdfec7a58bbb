package projection

import "math"

// listYears are the anchor years of the chart extraction.
var listYears = []int{0, 5, 10, 15}

// flowWindow is the number of periods summed after each anchor for flow
// series.
const flowWindow = 12

// Points extracts the two regulator-mandated disclosure points from a base
// trajectory.
func (e *Engine) Points(base Trajectory) []PointDisclosure {
	points := make([]PointDisclosure, 0, len(e.pointYears))
	for _, years := range e.pointYears {
		idx := e.anchorIndex(base, years)
		p := base.Periods[idx]
		points = append(points, PointDisclosure{
			Years:         years,
			Age:           p.Age,
			HouseValue:    p.HouseValue,
			Balance:       p.Balance,
			HomeEquity:    p.HomeEquity,
			HomeEquityPct: p.HomeEquityPct,
		})
	}
	return points
}

// Series extracts the chart series: stock values at each anchor year, and
// the income flow as the sum of the 12 periods following the anchor, never
// the instantaneous value.
func (e *Engine) Series(base Trajectory) Series {
	s := Series{}
	for _, years := range listYears {
		idx := e.anchorIndex(base, years)
		p := base.Periods[idx]

		s.Years = append(s.Years, years)
		s.Balance = append(s.Balance, p.Balance)
		s.HouseValue = append(s.HouseValue, p.HouseValue)
		s.HomeEquity = append(s.HomeEquity, p.HomeEquity)
		s.HomeEquityPct = append(s.HomeEquityPct, p.HomeEquityPct)

		income := 0.0
		for t := idx + 1; t <= idx+flowWindow && t < len(base.Periods); t++ {
			income += base.Periods[t].Income
		}
		s.Income = append(s.Income, income)
	}
	return s
}

// anchorIndex maps a year offset to a period index, clamped to the
// trajectory.
func (e *Engine) anchorIndex(tr Trajectory, years int) int {
	idx := years * e.periodsPerYear
	if idx >= len(tr.Periods) {
		idx = len(tr.Periods) - 1
	}
	return idx
}

// EquityImageBucket maps an equity percentage to the presentational bucket
// used by the calculator's equity images: rounded to the nearest 5, floored
// at 2 so a near-exhausted property still shows a sliver. Display logic
// only; kept here for output compatibility.
func EquityImageBucket(equityPct float64) int {
	bucket := int(math.Round(equityPct/5) * 5)
	if bucket < 2 {
		return 2
	}
	return bucket
}
