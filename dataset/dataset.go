// Package dataset decodes MNIST-style IDX files into thresholded samples.
package dataset

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"

	"gorgonia.org/tensor"

	"mnistnet/neuralnet"
)

// Set holds N binary images as an (N, rows*cols) tensor and their labels.
type Set struct {
	Images *tensor.Dense
	Labels []int
	Rows   int
	Cols   int

	order   []int
	targets *tensor.Dense
}

// Load reads an image file and a label file. limit > 0 caps the number of
// samples read.
func Load(imagesPath, labelsPath string, limit int) (*Set, error) {
	pixels, count, rows, cols, err := ReadImages(imagesPath, limit)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	raw, err := ReadLabels(labelsPath, limit)
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	if len(raw) != count {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", count, len(raw))
	}
	if count == 0 {
		return nil, fmt.Errorf("no images in %s", imagesPath)
	}

	norm := make([]float64, len(pixels))
	for i, px := range pixels {
		if px != 0 {
			norm[i] = 1
		}
	}
	labels := make([]int, count)
	for i, l := range raw {
		labels[i] = int(l)
	}

	return newSet(norm, labels, rows, cols), nil
}

// FromSamples builds a Set from in-memory samples of equal length. The
// samples are treated as single-row images.
func FromSamples(samples []neuralnet.Sample, labels []int) (*Set, error) {
	if len(samples) != len(labels) {
		return nil, fmt.Errorf("sample count (%d) != label count (%d)", len(samples), len(labels))
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples")
	}
	width := len(samples[0])
	norm := make([]float64, 0, width*len(samples))
	for i, s := range samples {
		if len(s) != width {
			return nil, fmt.Errorf("%w: sample %d has %d values, want %d", neuralnet.ErrShape, i, len(s), width)
		}
		for _, v := range s {
			if v != 0 {
				v = 1
			}
			norm = append(norm, v)
		}
	}
	return newSet(norm, append([]int(nil), labels...), 1, width), nil
}

func newSet(norm []float64, labels []int, rows, cols int) *Set {
	order := make([]int, len(labels))
	for i := range order {
		order[i] = i
	}
	images := tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(len(labels), rows*cols), tensor.WithBacking(norm))
	return &Set{Images: images, Labels: labels, Rows: rows, Cols: cols, order: order}
}

func (s *Set) Len() int {
	return len(s.Labels)
}

// Sample returns the i-th sample in the current order and its label. The
// returned slice aliases the set's storage and must not be modified.
func (s *Set) Sample(i int) (neuralnet.Sample, int) {
	idx := s.order[i]
	size := s.Rows * s.Cols
	data := s.Images.Data().([]float64)
	return neuralnet.Sample(data[idx*size : (idx+1)*size]), s.Labels[idx]
}

// Shuffle permutes the order in which Sample visits the set.
func (s *Set) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
}

// OneHot returns an (N, numClasses) tensor with a 1 at each sample's label.
// The tensor is built once per set and class count.
func (s *Set) OneHot(numClasses int) (*tensor.Dense, error) {
	if s.targets != nil && s.targets.Shape()[1] == numClasses {
		return s.targets, nil
	}
	norm := make([]float64, len(s.Labels)*numClasses)
	for i, label := range s.Labels {
		target, err := neuralnet.EncodeTarget(label, numClasses)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		norm[i*numClasses+target.Class()] = 1
	}
	s.targets = tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(len(s.Labels), numClasses), tensor.WithBacking(norm))
	return s.targets, nil
}

// Target returns the one-hot row of the i-th sample in the current order.
func (s *Set) Target(onehot *tensor.Dense, i int) neuralnet.Target {
	width := onehot.Shape()[1]
	idx := s.order[i]
	row := onehot.Data().([]float64)[idx*width : (idx+1)*width]
	target := make(neuralnet.Target, width)
	for k, v := range row {
		if v != 0 {
			target[k] = 1
		}
	}
	return target
}

// SavePNG renders the i-th stored image (ignoring shuffle order) as black on white.
func (s *Set) SavePNG(w io.Writer, i int) error {
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("image %d out of range [0, %d)", i, s.Len())
	}
	img := image.NewGray(image.Rect(0, 0, s.Cols, s.Rows))
	for y := 0; y < s.Rows; y++ {
		for x := 0; x < s.Cols; x++ {
			v, err := s.Images.At(i, y*s.Cols+x)
			if err != nil {
				return err
			}
			px := uint8(255)
			if v.(float64) != 0 {
				px = 0
			}
			img.SetGray(x, y, color.Gray{Y: px})
		}
	}
	return png.Encode(w, img)
}
