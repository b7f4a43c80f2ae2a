package upload

import (
	"sync"
	"testing"
)

func TestAggregatorOverall(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		updates map[int]float64
		want    float64
	}{
		{"fresh batch is zero", 2, nil, 0},
		{"half and done averages", 2, map[int]float64{0: 0.5, 1: 1.0}, 75},
		{"all done", 3, map[int]float64{0: 1, 1: 1, 2: 1}, 100},
		{"single file", 1, map[int]float64{0: 0.25}, 25},
		{"empty batch", 0, nil, 0},
		{"out of range update ignored", 2, map[int]float64{5: 1.0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator(tt.n)
			for i, f := range tt.updates {
				a.Update(i, f)
			}
			if got := a.Overall(); got != tt.want {
				t.Errorf("Overall() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregatorConcurrentUpdates(t *testing.T) {
	a := NewAggregator(8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for f := 0.0; f <= 1.0; f += 0.1 {
				a.Update(i, f)
			}
			a.Update(i, 1)
		}(i)
	}
	wg.Wait()

	if got := a.Overall(); got != 100 {
		t.Errorf("Overall() after all files complete = %v, want 100", got)
	}
}
