package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractorTimeoutSeconds_DefaultsWhenUnset(t *testing.T) {
	t.Setenv("SDK_CHAT_EXTRACTOR_TIMEOUT", "")
	ResetExtractorTimeoutCache()
	assert.Equal(t, defaultExtractorTimeoutSeconds, ExtractorTimeoutSeconds())
}

func TestExtractorTimeoutSeconds_InvalidFallsBack(t *testing.T) {
	t.Setenv("SDK_CHAT_EXTRACTOR_TIMEOUT", "not-a-number")
	ResetExtractorTimeoutCache()
	assert.Equal(t, defaultExtractorTimeoutSeconds, ExtractorTimeoutSeconds())
}

func TestExtractorTimeoutSeconds_ValidValueCached(t *testing.T) {
	t.Setenv("SDK_CHAT_EXTRACTOR_TIMEOUT", "45")
	ResetExtractorTimeoutCache()
	assert.Equal(t, 45, ExtractorTimeoutSeconds())

	t.Setenv("SDK_CHAT_EXTRACTOR_TIMEOUT", "90")
	assert.Equal(t, 45, ExtractorTimeoutSeconds(), "cached value should not change until reset")

	ResetExtractorTimeoutCache()
	assert.Equal(t, 90, ExtractorTimeoutSeconds())
}

func TestToolPathOverride(t *testing.T) {
	t.Setenv("SDK_CHAT_MYTOOL_PATH", "/usr/local/bin/mytool")
	v, ok := ToolPathOverride("mytool")
	assert.True(t, ok)
	assert.Equal(t, "/usr/local/bin/mytool", v)

	t.Setenv("SDK_CHAT_OTHERTOOL_PATH", "")
	_, ok = ToolPathOverride("othertool")
	assert.False(t, ok)
}

func TestDockerImage_Default(t *testing.T) {
	t.Setenv("SDK_CHAT_GO_IMAGE", "")
	assert.Equal(t, "api-extractor-go:latest", DockerImage("go"))
}

func TestDockerImage_Override(t *testing.T) {
	t.Setenv("SDK_CHAT_PYTHON_IMAGE", "custom/python-extractor:v2")
	assert.Equal(t, "custom/python-extractor:v2", DockerImage("python"))
}
