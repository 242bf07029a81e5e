package m

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// LoadSamples reads a CSV sample file, see ReadSamples.
func LoadSamples(path string, inputNum, outputNum int) ([]TrainingData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open samples")
	}
	defer f.Close()

	samples, err := ReadSamples(f, inputNum, outputNum)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return samples, nil
}

// ReadSamples parses one sample per line: inputNum input values followed by outputNum
// expected values, comma separated. Blank lines and lines starting with '#' are skipped.
func ReadSamples(reader io.Reader, inputNum, outputNum int) ([]TrainingData, error) {
	scanner := bufio.NewScanner(reader)
	var samples []TrainingData
	var lineNum int
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		splits := strings.Split(text, ",")
		if len(splits) != inputNum+outputNum {
			return samples, &InvalidLineError{
				Line:     lineNum,
				Got:      len(splits),
				Expected: inputNum + outputNum,
			}
		}

		values := make([]float64, len(splits))
		for i, split := range splits {
			num, err := strconv.ParseFloat(strings.TrimSpace(split), 64)
			if err != nil {
				field := "input"
				if i >= inputNum {
					field = "target"
				}
				return samples, errors.Wrapf(err, "line %d: parsing %s", lineNum, field)
			}
			values[i] = num
		}
		samples = append(samples, TrainingData{
			VectorIn:  values[:inputNum:inputNum],
			VectorOut: values[inputNum:],
		})
	}
	if err := scanner.Err(); err != nil {
		return samples, errors.Wrap(err, "scan samples")
	}
	return samples, nil
}

// InvalidLineError reports a sample line with the wrong number of values.
type InvalidLineError struct {
	Line     int
	Got      int
	Expected int
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d", e.Line, e.Expected, e.Got)
}

// NormalizeSamples rescales every input and output column to [0, 1] using the column's
// minimum and maximum. Constant columns become 0.
func NormalizeSamples(samples []TrainingData) []TrainingData {
	if len(samples) == 0 {
		return nil
	}
	ins := columns(samples, func(s TrainingData) []float64 { return s.VectorIn })
	outs := columns(samples, func(s TrainingData) []float64 { return s.VectorOut })

	normalized := make([]TrainingData, len(samples))
	for i, s := range samples {
		normalized[i] = TrainingData{
			VectorIn:  rescale(s.VectorIn, ins),
			VectorOut: rescale(s.VectorOut, outs),
		}
	}
	return normalized
}

type span struct{ min, max float64 }

func columns(samples []TrainingData, pick func(TrainingData) []float64) []span {
	width := len(pick(samples[0]))
	spans := make([]span, width)
	col := make([]float64, len(samples))
	for j := 0; j < width; j++ {
		for i, s := range samples {
			col[i] = pick(s)[j]
		}
		spans[j] = span{min: floats.Min(col), max: floats.Max(col)}
	}
	return spans
}

func rescale(v []float64, spans []span) []float64 {
	out := make([]float64, len(v))
	for j, x := range v {
		d := spans[j].max - spans[j].min
		if d == 0 {
			continue
		}
		out[j] = (x - spans[j].min) / d
	}
	return out
}
