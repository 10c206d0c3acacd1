package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbe_RuntimeInterpreterTier(t *testing.T) {
	ClearCache()
	cfg := ExtractorConfig{
		Language:              "testlang",
		NativeBinaryName:      "no-such-native-binary-xyz",
		RuntimeToolName:       "testruntime",
		RuntimeCandidates:     []string{"sh"},
		RuntimeValidationArgs: []string{"-c", "exit 0"},
		DisableDockerFallback: true,
	}
	res := Probe(context.Background(), cfg, false)
	assert.Equal(t, RuntimeInterpreter, res.Mode)
	assert.Equal(t, "sh", res.ExecutablePath)
}

func TestProbe_DockerFallback(t *testing.T) {
	ClearCache()
	cfg := ExtractorConfig{
		Language:          "testlang2",
		NativeBinaryName:  "no-such-native-binary-xyz",
		RuntimeToolName:   "no-such-runtime-xyz",
		RuntimeCandidates: []string{"no-such-runtime-xyz"},
		DockerImage:       "api-extractor-testlang2:latest",
	}
	res := Probe(context.Background(), cfg, false)
	assert.Equal(t, Docker, res.Mode)
	assert.Equal(t, "api-extractor-testlang2:latest", res.DockerImageName)
}

func TestProbe_Unavailable(t *testing.T) {
	ClearCache()
	cfg := ExtractorConfig{
		Language:              "testlang3",
		NativeBinaryName:      "no-such-native-binary-xyz",
		RuntimeToolName:       "no-such-runtime-xyz",
		RuntimeCandidates:     []string{"no-such-runtime-xyz"},
		DisableDockerFallback: true,
	}
	res := Probe(context.Background(), cfg, false)
	assert.Equal(t, Unavailable, res.Mode)
	assert.Contains(t, res.UnavailableReason, "testlang3")
}

func TestProbe_CachesAcrossCalls(t *testing.T) {
	ClearCache()
	cfg := ExtractorConfig{
		Language:              "testlang4",
		NativeBinaryName:      "no-such-native-binary-xyz",
		RuntimeToolName:       "testruntime4",
		RuntimeCandidates:     []string{"sh"},
		RuntimeValidationArgs: []string{"-c", "exit 0"},
		DisableDockerFallback: true,
	}
	first := Probe(context.Background(), cfg, false)
	second := Probe(context.Background(), cfg, false)
	assert.Equal(t, first, second)
}

func TestClearCache_InvalidatesEntries(t *testing.T) {
	ClearCache()
	cfg := ExtractorConfig{Language: "testlang5", DisableDockerFallback: true}
	_ = Probe(context.Background(), cfg, false)
	ClearCache()
	shared.mu.Lock()
	n := len(shared.cache)
	shared.mu.Unlock()
	assert.Equal(t, 0, n)
}
