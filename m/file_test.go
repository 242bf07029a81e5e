package m

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSamples(t *testing.T) {
	input := `# sleep, study, score
0.3,1.0,0.75

 0.5 , 0.2, 0.82
`
	samples, err := ReadSamples(strings.NewReader(input), 2, 1)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, []float64{0.3, 1.0}, samples[0].VectorIn)
	assert.Equal(t, []float64{0.75}, samples[0].VectorOut)
	assert.Equal(t, []float64{0.5, 0.2}, samples[1].VectorIn)
	assert.Equal(t, []float64{0.82}, samples[1].VectorOut)
}

func TestReadSamplesInvalidLine(t *testing.T) {
	_, err := ReadSamples(strings.NewReader("1,2,3\n1,2\n"), 2, 1)
	var lineErr *InvalidLineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, 2, lineErr.Got)
	assert.Equal(t, 3, lineErr.Expected)
	assert.Equal(t, "at line 2, expected 3 values, got 2", err.Error())
}

func TestReadSamplesBadNumber(t *testing.T) {
	_, err := ReadSamples(strings.NewReader("1,x,3\n"), 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1: parsing input")

	_, err = ReadSamples(strings.NewReader("1,2,y\n"), 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing target")
}

func TestReadSamplesVectorsDoNotAlias(t *testing.T) {
	samples, err := ReadSamples(strings.NewReader("1,2,3\n"), 2, 1)
	require.NoError(t, err)

	samples[0].VectorIn = append(samples[0].VectorIn, 9)
	assert.Equal(t, []float64{3}, samples[0].VectorOut)
}

func TestLoadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(path, []byte("3,4,5,0.1,0.2,0.3\n"), 0o644))

	samples, err := LoadSamples(path, 3, 3)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, BasicSample, samples[0])

	_, err = LoadSamples(filepath.Join(t.TempDir(), "missing.csv"), 3, 3)
	require.Error(t, err)
}

func TestNormalizeSamples(t *testing.T) {
	samples := []TrainingData{
		{VectorIn: []float64{0, 10}, VectorOut: []float64{50}},
		{VectorIn: []float64{6, 10}, VectorOut: []float64{100}},
		{VectorIn: []float64{12, 10}, VectorOut: []float64{0}},
	}
	got := NormalizeSamples(samples)
	require.Len(t, got, 3)
	assert.Equal(t, []float64{0, 0}, got[0].VectorIn)
	assert.Equal(t, []float64{0.5, 0}, got[1].VectorIn)
	assert.Equal(t, []float64{1, 0}, got[2].VectorIn)
	assert.Equal(t, []float64{0.5}, got[0].VectorOut)
	assert.Equal(t, []float64{1}, got[1].VectorOut)
	assert.Equal(t, []float64{0}, got[2].VectorOut)

	assert.Nil(t, NormalizeSamples(nil))
}

func TestSleepLearnDataSet(t *testing.T) {
	require.Len(t, SleepLearnDataSet, 24)
	for i, s := range SleepLearnDataSet {
		require.Len(t, s.VectorIn, 2, "sample %d", i)
		require.Len(t, s.VectorOut, 1, "sample %d", i)
		for _, v := range append(append([]float64(nil), s.VectorIn...), s.VectorOut...) {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}
