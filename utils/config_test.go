package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input: 2
output: 1
hidden: [5, 4]
epochs: 1000
data: sleep
test: [0.8, 0.3]
seed: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []int{2, 5, 4, 1}, cfg.Architecture())
	assert.Equal(t, DataSleep, cfg.Data)
	assert.Equal(t, []float64{0.8, 0.3}, cfg.Test)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.Checkpoint, "missing keys come from the sleep example")
}

func TestLoadEmptyFileIsDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadSleepWithoutTest(t *testing.T) {
	cfg, err := Load(writeConfig(t, "input: 2\noutput: 1\nhidden: [5, 4]\ndata: sleep\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []int{2, 5, 4, 1}, cfg.Architecture())
	assert.Nil(t, cfg.Test)
	assert.Equal(t, SleepExample().Epochs, cfg.Epochs)
}

func TestLoadDataOnlyUsesExample(t *testing.T) {
	cfg, err := Load(writeConfig(t, "data: sleep\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, SleepExample(), *cfg)

	cfg, err = Load(writeConfig(t, "input: 4\noutput: 2\ndata: samples.csv\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{4, 2}, cfg.Architecture())
	assert.Nil(t, cfg.Test)
	assert.Equal(t, Default().Epochs, cfg.Epochs)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "learning_rate: 0.1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "learning_rate")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, Default(), cfg)

	cfg.ApplyOverrides(Overrides{
		Hidden:  []int{7, 3},
		Epochs:  10,
		Seed:    9,
		Retrain: 2,
	})
	assert.Equal(t, []int{3, 7, 3, 3}, cfg.Architecture())
	assert.Equal(t, 10, cfg.Epochs)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, 2, cfg.Retrain)
	assert.Equal(t, DataBasic, cfg.Data)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero input", func(c *Config) { c.Input = 0 }, "input must be > 0"},
		{"negative output", func(c *Config) { c.Output = -1 }, "output must be > 0"},
		{"bad hidden", func(c *Config) { c.Hidden = []int{5, 0} }, "hidden layer 1"},
		{"zero epochs", func(c *Config) { c.Epochs = 0 }, "epochs must be > 0"},
		{"negative retrain", func(c *Config) { c.Retrain = -1 }, "retrain"},
		{"no data", func(c *Config) { c.Data = "" }, "data must be set"},
		{"basic sizes", func(c *Config) { c.Input = 2; c.Test = nil }, `data "basic" needs input 3`},
		{"sleep sizes", func(c *Config) { c.Data = DataSleep }, `data "sleep" needs input 2`},
		{"test length", func(c *Config) { c.Test = []float64{1} }, "test vector has 1 values"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	var nilCfg *Config
	require.Error(t, nilCfg.Validate())

	cfg := SleepExample()
	cfg.Checkpoint = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, cfg.Epochs, cfg.Checkpoint)

	csv := Config{Input: 4, Output: 2, Epochs: 1, Data: "samples.csv"}
	require.NoError(t, csv.Validate())
}

func TestParseArchitecture(t *testing.T) {
	arch, err := ParseArchitecture(" 5  4 ")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4}, arch)

	arch, err = ParseArchitecture("")
	require.NoError(t, err)
	assert.Empty(t, arch)

	_, err = ParseArchitecture("5 x")
	require.Error(t, err)
}

func TestParseVector(t *testing.T) {
	v, err := ParseVector("0.8, 0.3")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.8, 0.3}, v)

	v, err = ParseVector("3 4\t5")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5}, v)

	_, err = ParseVector("1,a")
	require.Error(t, err)
}
