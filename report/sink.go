package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const (
	PhaseTrain = "train"
	PhaseTest  = "test"
)

// Sink receives per-sample results and per-pass summaries.
type Sink interface {
	Sample(phase string, r Result, running Summary)
	Summary(phase string, epoch int, s Summary) error
}

// LogSink logs running progress every Every samples and each summary.
type LogSink struct {
	Every  int
	Logger *log.Logger
}

func (l *LogSink) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

func (l *LogSink) Sample(phase string, r Result, running Summary) {
	if l.Every <= 0 || (r.Index+1)%l.Every != 0 {
		return
	}
	l.logger().Printf("phase=%s sample=%d predicted=%d actual=%d cost=%.4f correct=%d incorrect=%d",
		phase, r.Index+1, r.Predicted, r.Actual, r.Cost, running.Correct, running.Incorrect)
}

func (l *LogSink) Summary(phase string, epoch int, s Summary) error {
	l.logger().Printf("phase=%s epoch=%d correct=%d incorrect=%d accuracy=%.4f cost=%.7g",
		phase, epoch, s.Correct, s.Incorrect, s.Accuracy(), s.MeanCost)
	return nil
}

// FileSink appends a summary block per pass to <Dir>/Training_report.txt or
// <Dir>/Testing_report.txt.
type FileSink struct {
	Dir string
}

func (f *FileSink) Sample(string, Result, Summary) {}

func (f *FileSink) Summary(phase string, epoch int, s Summary) error {
	name := "Training_report.txt"
	if phase == PhaseTest {
		name = "Testing_report.txt"
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(f.Dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	if _, err := file.WriteString(FormatSummary(phase, epoch, s)); err != nil {
		file.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return file.Close()
}

// FormatSummary renders a summary as a plain-text report block.
func FormatSummary(phase string, epoch int, s Summary) string {
	var sb strings.Builder
	if phase == PhaseTrain {
		sb.WriteString(fmt.Sprintf("\n######## Iteration number:%5d ########\n", epoch))
	}
	sb.WriteString("######## Total Report ########\n")
	sb.WriteString(fmt.Sprintf("Result: Correct=%5d  Incorrect=%5d  \n", s.Correct, s.Incorrect))
	sb.WriteString(fmt.Sprintf("Accuracy: %.7g\n", s.Accuracy()*100))
	sb.WriteString(fmt.Sprintf("Cost: %.7g\n", s.MeanCost))
	return sb.String()
}

type multi []Sink

// Multi fans every call out to sinks in order. The first Summary error is
// returned after all sinks have been called.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Sample(phase string, r Result, running Summary) {
	for _, s := range m {
		s.Sample(phase, r, running)
	}
}

func (m multi) Summary(phase string, epoch int, s Summary) error {
	var first error
	for _, sink := range m {
		if err := sink.Summary(phase, epoch, s); err != nil && first == nil {
			first = err
		}
	}
	return first
}
