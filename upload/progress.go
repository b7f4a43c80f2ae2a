package upload

import "sync"

// Aggregator combines per-file upload fractions into a single percentage for
// display. Every file weighs the same regardless of its size.
type Aggregator struct {
	mu        sync.Mutex
	fractions []float64
}

// NewAggregator returns an Aggregator for a batch of n files, all starting
// at zero progress.
func NewAggregator(n int) *Aggregator {
	return &Aggregator{fractions: make([]float64, n)}
}

// Update records the cumulative progress fraction (0..1) of the file at the
// given batch index.
func (a *Aggregator) Update(index int, fraction float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if index < 0 || index >= len(a.fractions) {
		return
	}
	a.fractions[index] = fraction
}

// Overall returns the aggregate progress as a percentage in [0,100].
func (a *Aggregator) Overall() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.fractions) == 0 {
		return 0
	}
	var sum float64
	for _, f := range a.fractions {
		sum += f
	}
	return sum / float64(len(a.fractions)) * 100
}
