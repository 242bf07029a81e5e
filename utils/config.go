package utils

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Built-in data sets accepted in Config.Data. Any other value is read as a CSV path.
const (
	DataBasic = "basic"
	DataSleep = "sleep"
)

// Config holds a training run: topology, data and schedule.
type Config struct {
	Input      int       `yaml:"input"`
	Output     int       `yaml:"output"`
	Hidden     []int     `yaml:"hidden"`
	Epochs     int       `yaml:"epochs"`
	Data       string    `yaml:"data"`
	Normalize  bool      `yaml:"normalize"`
	Test       []float64 `yaml:"test"`
	Seed       uint64    `yaml:"seed"`
	Checkpoint int       `yaml:"checkpoint"`
	Retrain    int       `yaml:"retrain"`
}

// Overrides captures CLI supplied values. Zero values leave the config untouched.
type Overrides struct {
	Input      int
	Output     int
	Hidden     []int
	Epochs     int
	Data       string
	Normalize  bool
	Test       []float64
	Seed       uint64
	Checkpoint int
	Retrain    int
}

// Default is the basic example: 3 inputs, one hidden layer of 5, 3 outputs, trained
// 5000 times on BasicSample.
func Default() Config {
	return Config{
		Input:      3,
		Output:     3,
		Hidden:     []int{5},
		Epochs:     5000,
		Data:       DataBasic,
		Test:       []float64{3, 4, 5},
		Checkpoint: 500,
	}
}

// SleepExample trains 2-5-4-1 on the sleep/study data set.
func SleepExample() Config {
	return Config{
		Input:      2,
		Output:     1,
		Hidden:     []int{5, 4},
		Epochs:     1000,
		Data:       DataSleep,
		Test:       []float64{0.8, 0.3},
		Checkpoint: 100,
	}
}

// Load reads a YAML config. Missing keys are filled from the built-in example named by
// data (basic when data is missing too), see fillDefaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// fillDefaults completes a decoded config from the matching example. The example's
// topology, hidden layers and test vector are only taken when the file sets neither
// input nor output, so a custom topology never inherits a test vector of another size.
func (c *Config) fillDefaults() {
	if c.Data == "" {
		c.Data = DataBasic
	}
	base := Default()
	if c.Data == DataSleep {
		base = SleepExample()
	}

	if c.Input == 0 && c.Output == 0 {
		c.Input, c.Output = base.Input, base.Output
		if c.Hidden == nil {
			c.Hidden = base.Hidden
		}
		if c.Test == nil {
			c.Test = base.Test
		}
	}
	if c.Epochs == 0 {
		c.Epochs = base.Epochs
	}
	if c.Checkpoint == 0 {
		c.Checkpoint = base.Checkpoint
	}
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Input > 0 {
		c.Input = o.Input
	}
	if o.Output > 0 {
		c.Output = o.Output
	}
	if o.Hidden != nil {
		c.Hidden = o.Hidden
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.Data != "" {
		c.Data = o.Data
	}
	if o.Normalize {
		c.Normalize = true
	}
	if o.Test != nil {
		c.Test = o.Test
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Checkpoint > 0 {
		c.Checkpoint = o.Checkpoint
	}
	if o.Retrain > 0 {
		c.Retrain = o.Retrain
	}
}

// Validate verifies the config is runnable and fills defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Input <= 0 {
		return errors.Errorf("input must be > 0 (got %d)", c.Input)
	}
	if c.Output <= 0 {
		return errors.Errorf("output must be > 0 (got %d)", c.Output)
	}
	for i, n := range c.Hidden {
		if n <= 0 {
			return errors.Errorf("hidden layer %d must be > 0 (got %d)", i, n)
		}
	}
	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.Retrain < 0 {
		return errors.Errorf("retrain must be >= 0 (got %d)", c.Retrain)
	}
	switch c.Data {
	case "":
		return errors.New("data must be set")
	case DataBasic:
		if c.Input != 3 || c.Output != 3 {
			return errors.Errorf("data %q needs input 3 and output 3 (got %d and %d)", DataBasic, c.Input, c.Output)
		}
	case DataSleep:
		if c.Input != 2 || c.Output != 1 {
			return errors.Errorf("data %q needs input 2 and output 1 (got %d and %d)", DataSleep, c.Input, c.Output)
		}
	}
	if c.Test != nil && len(c.Test) != c.Input {
		return errors.Errorf("test vector has %d values, input is %d", len(c.Test), c.Input)
	}
	if c.Checkpoint <= 0 {
		c.Checkpoint = c.Epochs
	}
	return nil
}

// Architecture lists every layer size, input and output included.
func (c *Config) Architecture() []int {
	arch := make([]int, 0, len(c.Hidden)+2)
	arch = append(arch, c.Input)
	arch = append(arch, c.Hidden...)
	return append(arch, c.Output)
}

// ParseArchitecture parses whitespace separated layer sizes, e.g. "5 4".
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(archStr)
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		arch[i] = n
	}
	return arch, nil
}

// ParseVector parses whitespace or comma separated numbers, e.g. "0.8 0.3".
func ParseVector(s string) ([]float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	v := make([]float64, len(parts))
	for i, p := range parts {
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		v[i] = x
	}
	return v, nil
}
