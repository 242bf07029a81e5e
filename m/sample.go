package m

// TrainingData is one input vector with the output the network should produce for it.
// VectorOut may be empty when the sample is only used for prediction.
type TrainingData struct {
	VectorIn  []float64
	VectorOut []float64
}

// BasicSample maps [3, 4, 5] to [0.1, 0.2, 0.3]. Training a 3-input, 3-output network on it
// alone for a few thousand epochs should bring the prediction close to the label.
var BasicSample = TrainingData{
	VectorIn:  []float64{3, 4, 5},
	VectorOut: []float64{0.1, 0.2, 0.3},
}

// SleepLearnDataSet holds normalized [hours slept, hours studied] -> [exam score] samples.
// Hours are divided by 12 and the score by 100.
var SleepLearnDataSet = []TrainingData{
	{VectorIn: []float64{0.3, 1.0}, VectorOut: []float64{0.75}},
	{VectorIn: []float64{0.5, 0.2}, VectorOut: []float64{0.82}},
	{VectorIn: []float64{1.0, 0.4}, VectorOut: []float64{0.93}},
	{VectorIn: []float64{0.1, 0.89}, VectorOut: []float64{0.05}},
	{VectorIn: []float64{0.14, 0.73}, VectorOut: []float64{0.22}},
	{VectorIn: []float64{0.21, 0.85}, VectorOut: []float64{0.13}},
	{VectorIn: []float64{0.05, 1.0}, VectorOut: []float64{0.15}},
	{VectorIn: []float64{0.34, 0.86}, VectorOut: []float64{0.45}},
	{VectorIn: []float64{0.69, 0.4}, VectorOut: []float64{0.70}},
	{VectorIn: []float64{0.87, 0.1}, VectorOut: []float64{0.88}},
	{VectorIn: []float64{0.75, 0.2}, VectorOut: []float64{0.96}},
	{VectorIn: []float64{0.5, 0.05}, VectorOut: []float64{0.15}},
	{VectorIn: []float64{0.8, 0.45}, VectorOut: []float64{0.92}},
	{VectorIn: []float64{0.96, 0.09}, VectorOut: []float64{0.53}},
	{VectorIn: []float64{0.2, 0.32}, VectorOut: []float64{0.38}},
	{VectorIn: []float64{0.11, 0.79}, VectorOut: []float64{0.22}},
	{VectorIn: []float64{0.61, 0.85}, VectorOut: []float64{0.93}},
	{VectorIn: []float64{0.65, 0.68}, VectorOut: []float64{0.88}},
	{VectorIn: []float64{0.24, 0.16}, VectorOut: []float64{0.33}},
	{VectorIn: []float64{0.94, 0.16}, VectorOut: []float64{0.23}},
	{VectorIn: []float64{0.69, 0.4}, VectorOut: []float64{0.84}},
	{VectorIn: []float64{0.87, 0.19}, VectorOut: []float64{0.78}},
	{VectorIn: []float64{0.74, 0.28}, VectorOut: []float64{0.96}},
	{VectorIn: []float64{0.95, 0.3}, VectorOut: []float64{0.83}},
}
