package stats

import (
	"fmt"
	"math"
)

// Summary describes the supports of the itemsets found at one level.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d min=%.4g max=%.4g mean=%.4g", s.Count, s.Min, s.Max, s.Mean)
}

// Summarize is the zero Summary for no supports.
func Summarize(supports []float64) Summary {
	if len(supports) == 0 {
		return Summary{}
	}
	s := Summary{
		Count: len(supports),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}
	var total float64
	for _, support := range supports {
		s.Min = math.Min(s.Min, support)
		s.Max = math.Max(s.Max, support)
		total += support
	}
	s.Mean = total / float64(len(supports))
	return s
}
