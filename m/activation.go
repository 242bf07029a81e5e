package m

import (
	"fmt"
	"math"
)

// NetworkBeta is the sigmoid steepness used by every non-input layer of a Network.
// With beta = -1 the activation is 1/(1+e^x). Back-propagation relies on this sign:
// the error is taken as expected-actual and weights are updated by subtraction.
const NetworkBeta = -1.0

// Activator applies an activation elementwise and knows its derivative in terms of
// the activated output.
type Activator interface {
	Activate(i, j int, sum float64) float64
	Derivative(activated float64) float64
	fmt.Stringer
}

// Unipolar is a step function: 1 when x reaches the threshold a, 0 otherwise.
func Unipolar(a, x float64) float64 {
	if x >= a {
		return 1.0
	}
	return 0.0
}

// Sigmoid returns 1 / (1 + e^(-beta*x)).
func Sigmoid(beta, x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-beta*x))
}

// SigmoidDerivative takes an already activated value.
func SigmoidDerivative(x float64) float64 {
	return x * (1 - x)
}

// Softmax returns e^x divided by the sum of e^v over vector.
func Softmax(vector []float64, x float64) float64 {
	sum := 0.0
	for _, v := range vector {
		sum += math.Exp(v)
	}
	return math.Exp(x) / sum
}

func SoftmaxVector(vector []float64) []float64 {
	out := make([]float64, len(vector))
	for i, v := range vector {
		out[i] = Softmax(vector, v)
	}
	return out
}

type SigmoidActivator struct {
	Beta float64
}

func (s SigmoidActivator) Activate(i, j int, sum float64) float64 {
	return Sigmoid(s.Beta, sum)
}

func (s SigmoidActivator) Derivative(activated float64) float64 {
	return SigmoidDerivative(activated)
}

func (s SigmoidActivator) String() string {
	return fmt.Sprintf("sigmoid(beta=%g)", s.Beta)
}
