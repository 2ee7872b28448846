// Package report aggregates per-sample predictions and costs and hands the
// results to reporting sinks.
package report

// Result is the outcome of one sample.
type Result struct {
	Index     int
	Predicted int
	Actual    int
	Cost      float64
}

func (r Result) Correct() bool {
	return r.Predicted == r.Actual
}

// Tally accumulates results across an epoch or a test pass.
type Tally struct {
	correct   int
	incorrect int
	cost      float64
}

// Record adds a new result to the tally.
func (t *Tally) Record(r Result) {
	if r.Correct() {
		t.correct++
	} else {
		t.incorrect++
	}
	t.cost += r.Cost
}

// Current returns the aggregate so far without resetting.
func (t *Tally) Current() Summary {
	s := Summary{Correct: t.correct, Incorrect: t.incorrect}
	if n := t.correct + t.incorrect; n > 0 {
		s.MeanCost = t.cost / float64(n)
	}
	return s
}

// Snapshot returns the aggregate and resets the tally.
func (t *Tally) Snapshot() Summary {
	s := t.Current()
	*t = Tally{}
	return s
}

// Summary represents reportable aggregate metrics.
type Summary struct {
	Correct   int
	Incorrect int
	MeanCost  float64
}

func (s Summary) Total() int {
	return s.Correct + s.Incorrect
}

// Accuracy is the fraction of correct predictions, 0 for an empty summary.
func (s Summary) Accuracy() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total())
}
