// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package training

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// accuracyTolerance is the maximum absolute error for a prediction to
// count as correct when reporting accuracy on a regression target.
const accuracyTolerance = 0.2

// Network is a feed-forward regressor: ReLU hidden layers, a single
// sigmoid output unit, trained with mini-batch SGD against mean squared
// error. All fields are exported for gob encoding.
type Network struct {
	// Sizes lists layer widths including input and the single output.
	Sizes []int
	// Weights[l][i][j] connects input j of layer l to neuron i.
	Weights [][][]float64
	// Biases[l][i] is the bias of neuron i in layer l.
	Biases [][]float64
}

// Options controls one training run.
type Options struct {
	Epochs          int
	BatchSize       int
	LearningRate    float64
	ValidationSplit float64
	// Dropout is the per-unit drop probability applied after each hidden
	// layer during training (inverted dropout).
	Dropout float64
}

// Stats reports the fit quality after training.
type Stats struct {
	Loss        float64
	Accuracy    float64
	ValLoss     float64
	ValAccuracy float64
	Epochs      int
}

// NewNetwork builds a network with the given input width and hidden
// layer widths. Weights use He initialization from the provided source
// so runs are reproducible.
func NewNetwork(inputs int, hidden []int, rng *rand.Rand) (*Network, error) {
	if inputs <= 0 {
		return nil, errors.Join(ErrInvalidConfiguration, fmt.Errorf("input width %d", inputs))
	}
	if len(hidden) == 0 {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("no hidden layers"))
	}

	sizes := make([]int, 0, len(hidden)+2)
	sizes = append(sizes, inputs)
	sizes = append(sizes, hidden...)
	sizes = append(sizes, 1)

	n := &Network{
		Sizes:   sizes,
		Weights: make([][][]float64, len(sizes)-1),
		Biases:  make([][]float64, len(sizes)-1),
	}
	for l := 0; l < len(sizes)-1; l++ {
		fanIn := sizes[l]
		scale := math.Sqrt(2.0 / float64(fanIn))
		n.Weights[l] = make([][]float64, sizes[l+1])
		n.Biases[l] = make([]float64, sizes[l+1])
		for i := range n.Weights[l] {
			row := make([]float64, fanIn)
			for j := range row {
				row[j] = rng.NormFloat64() * scale
			}
			n.Weights[l][i] = row
		}
	}
	return n, nil
}

// Predict runs a forward pass without dropout.
func (n *Network) Predict(input []float64) float64 {
	activations, _ := n.forward(input, nil)
	return activations[len(activations)-1][0]
}

// forward computes activations per layer. masks, when non-nil, holds a
// dropout mask per hidden layer; masked units output zero and surviving
// units are scaled up so expectations match inference.
func (n *Network) forward(input []float64, masks [][]float64) ([][]float64, [][]float64) {
	layers := len(n.Weights)
	activations := make([][]float64, layers+1)
	preacts := make([][]float64, layers)
	activations[0] = input

	for l := 0; l < layers; l++ {
		in := activations[l]
		width := len(n.Weights[l])
		z := make([]float64, width)
		a := make([]float64, width)
		for i := 0; i < width; i++ {
			sum := n.Biases[l][i]
			row := n.Weights[l][i]
			for j, x := range in {
				sum += row[j] * x
			}
			z[i] = sum
			if l == layers-1 {
				a[i] = sigmoid(sum)
			} else {
				a[i] = relu(sum)
				if masks != nil {
					a[i] *= masks[l][i]
				}
			}
		}
		preacts[l] = z
		activations[l+1] = a
	}
	return activations, preacts
}

// Train fits the network in place. Cancellation is honored between
// epochs; a canceled run returns the context error and the partially
// updated weights are discarded by the caller.
func (n *Network) Train(ctx context.Context, inputs [][]float64, labels []float64, opts Options, rng *rand.Rand) (*Stats, error) {
	if len(inputs) == 0 {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("no training samples"))
	}
	if len(inputs) != len(labels) {
		return nil, errors.Join(ErrInvalidConfiguration,
			fmt.Errorf("%d samples but %d labels", len(inputs), len(labels)))
	}
	if opts.Epochs <= 0 || opts.BatchSize <= 0 || opts.LearningRate <= 0 {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("non-positive epochs, batch size or learning rate"))
	}

	// Shuffle once, then carve off the validation tail.
	order := rng.Perm(len(inputs))
	shuffledIn := make([][]float64, len(inputs))
	shuffledLab := make([]float64, len(labels))
	for i, idx := range order {
		shuffledIn[i] = inputs[idx]
		shuffledLab[i] = labels[idx]
	}

	valCount := int(float64(len(inputs)) * opts.ValidationSplit)
	if valCount >= len(inputs) {
		valCount = len(inputs) - 1
	}
	trainIn, trainLab := shuffledIn[:len(inputs)-valCount], shuffledLab[:len(inputs)-valCount]
	valIn, valLab := shuffledIn[len(inputs)-valCount:], shuffledLab[len(inputs)-valCount:]

	epochsRun := 0
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		perm := rng.Perm(len(trainIn))
		for start := 0; start < len(perm); start += opts.BatchSize {
			end := start + opts.BatchSize
			if end > len(perm) {
				end = len(perm)
			}
			n.trainBatch(trainIn, trainLab, perm[start:end], opts, rng)
		}
		epochsRun++
	}

	loss, acc := n.evaluate(trainIn, trainLab)
	valLoss, valAcc := n.evaluate(valIn, valLab)
	return &Stats{
		Loss:        loss,
		Accuracy:    acc,
		ValLoss:     valLoss,
		ValAccuracy: valAcc,
		Epochs:      epochsRun,
	}, nil
}

// trainBatch accumulates gradients over one mini-batch and applies a
// single averaged update.
func (n *Network) trainBatch(inputs [][]float64, labels []float64, batch []int, opts Options, rng *rand.Rand) {
	layers := len(n.Weights)

	gradW := make([][][]float64, layers)
	gradB := make([][]float64, layers)
	for l := 0; l < layers; l++ {
		gradW[l] = make([][]float64, len(n.Weights[l]))
		gradB[l] = make([]float64, len(n.Biases[l]))
		for i := range gradW[l] {
			gradW[l][i] = make([]float64, len(n.Weights[l][i]))
		}
	}

	for _, idx := range batch {
		masks := n.dropoutMasks(opts.Dropout, rng)
		activations, preacts := n.forward(inputs[idx], masks)

		// Output delta: d/dz of (a-y)^2 with sigmoid activation.
		out := activations[layers][0]
		delta := []float64{2 * (out - labels[idx]) * out * (1 - out)}

		for l := layers - 1; l >= 0; l-- {
			in := activations[l]
			for i, d := range delta {
				gradB[l][i] += d
				for j, x := range in {
					gradW[l][i][j] += d * x
				}
			}
			if l == 0 {
				break
			}
			// Propagate through the ReLU and the dropout mask.
			prev := make([]float64, len(n.Weights[l][0]))
			for j := range prev {
				sum := 0.0
				for i, d := range delta {
					sum += n.Weights[l][i][j] * d
				}
				if preacts[l-1][j] <= 0 {
					sum = 0
				}
				if masks != nil {
					sum *= masks[l-1][j]
				}
				prev[j] = sum
			}
			delta = prev
		}
	}

	step := opts.LearningRate / float64(len(batch))
	for l := 0; l < layers; l++ {
		for i := range n.Weights[l] {
			n.Biases[l][i] -= step * gradB[l][i]
			for j := range n.Weights[l][i] {
				n.Weights[l][i][j] -= step * gradW[l][i][j]
			}
		}
	}
}

// dropoutMasks builds inverted-dropout masks for the hidden layers.
// Returns nil when dropout is disabled.
func (n *Network) dropoutMasks(p float64, rng *rand.Rand) [][]float64 {
	if p <= 0 {
		return nil
	}
	keep := 1 - p
	masks := make([][]float64, len(n.Weights))
	for l := 0; l < len(n.Weights)-1; l++ {
		mask := make([]float64, len(n.Weights[l]))
		for i := range mask {
			if rng.Float64() < keep {
				mask[i] = 1 / keep
			}
		}
		masks[l] = mask
	}
	return masks
}

// evaluate returns MSE loss and tolerance accuracy over a sample set.
func (n *Network) evaluate(inputs [][]float64, labels []float64) (loss, accuracy float64) {
	if len(inputs) == 0 {
		return 0, 0
	}
	correct := 0
	for i, in := range inputs {
		pred := n.Predict(in)
		diff := pred - labels[i]
		loss += diff * diff
		if math.Abs(diff) <= accuracyTolerance {
			correct++
		}
	}
	loss /= float64(len(inputs))
	accuracy = float64(correct) / float64(len(inputs))
	return loss, accuracy
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
