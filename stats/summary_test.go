package stats

import "testing"
import "github.com/stretchr/testify/assert"

func TestSummarize(x *testing.T) {
	t := assert.New(x)
	s := Summarize([]float64{.5, .25, 1})
	t.Equal(3, s.Count)
	t.Equal(.25, s.Min)
	t.Equal(1.0, s.Max)
	t.InDelta(.5833, s.Mean, 1e-3)
	t.Equal("n=3 min=0.25 max=1 mean=0.5833", s.String())
}

func TestSummarizeSingle(x *testing.T) {
	t := assert.New(x)
	s := Summarize([]float64{1.0 / 3.0})
	t.Equal(1, s.Count)
	t.Equal(s.Min, s.Max)
	t.Equal(s.Min, s.Mean)
}

func TestSummarizeEmpty(x *testing.T) {
	t := assert.New(x)
	t.Equal(Summary{}, Summarize(nil))
	t.Equal("n=0 min=0 max=0 mean=0", Summarize(nil).String())
}
