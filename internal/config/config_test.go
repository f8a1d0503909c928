package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "test-key",
		"max_iterations": 5,
		"similarity_threshold": 0.9,
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, 0.9, cfg.SimilarityThreshold)
	assert.True(t, cfg.Verbose)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Ranges(t *testing.T) {
	valid := &Config{MaxIterations: 3, SimilarityThreshold: 0.97}
	assert.NoError(t, valid.Validate())

	zero := &Config{}
	assert.NoError(t, zero.Validate())

	tooMany := &Config{MaxIterations: 50}
	err := tooMany.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxIterations")

	badThreshold := &Config{SimilarityThreshold: 1.5}
	assert.Error(t, badThreshold.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{APIKey: "explicit", MaxIterations: 2}
	merged := cfg.MergeWithDefaults(Config{
		APIKey:              "default",
		MaxIterations:       3,
		SimilarityThreshold: 0.97,
	})

	assert.Equal(t, "explicit", merged.APIKey)
	assert.Equal(t, 2, merged.MaxIterations)
	assert.Equal(t, 0.97, merged.SimilarityThreshold)
}
