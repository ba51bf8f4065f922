// Package vision builds and runs image classifiers: architecture descriptors
// with a fixed parameterized topology, an ONNX-backed predictor and a
// synthetic dataset writer.
package vision

import (
	"fmt"
	"sort"
	"strings"
)

// Spec describes a classifier topology ready to pair with an ONNX artifact.
type Spec struct {
	Arch       string
	NumClasses int
	InputSize  int
	Channels   int
	// Classification head on top of the frozen backbone (or of the conv
	// stack for the simple architecture).
	HiddenUnits []int
	Dropout     []float64
	FreezeBase  bool
}

type archParams struct {
	inputSize   int
	hiddenUnits []int
	dropout     []float64
	transfer    bool
}

var architectures = map[string]archParams{
	"simple": {
		inputSize:   224,
		hiddenUnits: []int{512},
		dropout:     []float64{0.5},
	},
	"resnet50": {
		inputSize:   224,
		hiddenUnits: []int{512, 256},
		dropout:     []float64{0.3, 0.3},
		transfer:    true,
	},
	"vgg16": {
		inputSize:   224,
		hiddenUnits: []int{512, 256},
		dropout:     []float64{0.3, 0.3},
		transfer:    true,
	},
	"mobilenetv2": {
		inputSize:   224,
		hiddenUnits: []int{512, 256},
		dropout:     []float64{0.3, 0.3},
		transfer:    true,
	},
	"efficientnetb0": {
		inputSize:   224,
		hiddenUnits: []int{512, 256},
		dropout:     []float64{0.3, 0.3},
		transfer:    true,
	},
}

// Architectures lists the supported architecture names, sorted.
func Architectures() []string {
	names := make([]string, 0, len(architectures))
	for name := range architectures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type BuildOption func(*Spec)

// WithTrainableBase unfreezes the pre-trained backbone for fine-tuning.
func WithTrainableBase() BuildOption {
	return func(s *Spec) {
		s.FreezeBase = false
	}
}

// Build resolves an architecture name and class count into a Spec. The class
// count must be positive, typically the number of class subfolders in the
// dataset; an unsupported architecture is rejected with the supported list.
func Build(arch string, numClasses int, opts ...BuildOption) (Spec, error) {
	if numClasses <= 0 {
		return Spec{}, fmt.Errorf("num classes must be a positive integer, got %d; "+
			"ensure your dataset directory contains at least one class subfolder", numClasses)
	}

	params, ok := architectures[strings.ToLower(arch)]
	if !ok {
		return Spec{}, fmt.Errorf("architecture %q not supported, choose from %s",
			arch, strings.Join(Architectures(), ", "))
	}

	spec := Spec{
		Arch:        strings.ToLower(arch),
		NumClasses:  numClasses,
		InputSize:   params.inputSize,
		Channels:    3,
		HiddenUnits: params.hiddenUnits,
		Dropout:     params.dropout,
		FreezeBase:  params.transfer,
	}

	for _, opt := range opts {
		opt(&spec)
	}

	return spec, nil
}

// IsTransfer reports whether the spec reuses a pre-trained backbone.
func (s Spec) IsTransfer() bool {
	return s.Arch != "simple"
}
