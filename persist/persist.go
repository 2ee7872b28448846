// Package persist writes learned parameters as plain text, one file per
// parameter group and one value per line.
package persist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mnistnet/neuralnet"
)

// DefaultPrecision is the number of significant digits written per value.
const DefaultPrecision = 5

// Source exposes parameters in a stable order.
type Source interface {
	Params() []neuralnet.ParamGroup
}

// Sink accepts parameters in the order Source produces them.
type Sink interface {
	Source
	SetParams([]neuralnet.ParamGroup) error
}

// Export writes each parameter group to dir/<name>.txt. precision <= 0 uses
// DefaultPrecision.
func Export(dir string, src Source, precision int) error {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	for _, g := range src.Params() {
		if err := writeGroup(filepath.Join(dir, g.Name+".txt"), g.Values, precision); err != nil {
			return fmt.Errorf("export %s: %w", g.Name, err)
		}
	}
	return nil
}

func writeGroup(path string, values []float64, precision int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, v := range values {
		w.WriteString(strconv.FormatFloat(v, 'g', precision, 64))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Import reads the files written by Export back into dst.
func Import(dir string, dst Sink) error {
	groups := dst.Params()
	for i, g := range groups {
		values, err := readGroup(filepath.Join(dir, g.Name+".txt"))
		if err != nil {
			return fmt.Errorf("import %s: %w", g.Name, err)
		}
		groups[i].Values = values
	}
	return dst.SetParams(groups)
}

func readGroup(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var values []float64
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
