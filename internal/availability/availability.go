// Package availability implements the three-tier extractor-tool probe
// (native binary -> runtime interpreter -> container image) with process-
// wide memoization (spec.md §4.5).
package availability

import (
	"context"
	"fmt"
	"sync"

	"github.com/oxhq/apiindex/internal/config"
	"github.com/oxhq/apiindex/internal/toolresolve"
)

// Mode is the tier that produced a usable handle, or Unavailable.
type Mode int

const (
	Unavailable Mode = iota
	NativeBinary
	RuntimeInterpreter
	Docker
)

// ExtractorConfig names the tools an extractor for one language may use.
type ExtractorConfig struct {
	Language              string
	NativeBinaryName      string
	RuntimeToolName       string
	RuntimeCandidates     []string
	NativeValidationArgs  []string
	RuntimeValidationArgs []string
	DockerImage           string
	// DisableDockerFallback skips the Docker tier entirely, so Probe can
	// report Unavailable when neither a native binary nor a runtime was
	// found. Used in tests and for languages with no container fallback.
	DisableDockerFallback bool
}

// Result is the outcome of a probe.
type Result struct {
	Mode             Mode
	ExecutablePath   string
	DockerImageName  string
	Warning          string
	UnavailableReason string
}

func defaultArgs(args []string, fallback string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{fallback}
}

type cacheKey struct {
	language         string
	nativeBinaryName string
	runtimeToolName  string
}

type provider struct {
	mu    sync.Mutex
	cache map[cacheKey]Result
}

var shared = &provider{cache: make(map[cacheKey]Result)}

// Probe checks availability for cfg, consulting the process-wide cache
// unless forceRecheck is set. Once a refreshed result is published, later
// calls observe it.
func Probe(ctx context.Context, cfg ExtractorConfig, forceRecheck bool) Result {
	key := cacheKey{cfg.Language, cfg.NativeBinaryName, cfg.RuntimeToolName}

	shared.mu.Lock()
	if !forceRecheck {
		if cached, ok := shared.cache[key]; ok {
			shared.mu.Unlock()
			return cached
		}
	}
	shared.mu.Unlock()

	result := probeUncached(ctx, cfg)

	shared.mu.Lock()
	shared.cache[key] = result
	shared.mu.Unlock()

	return result
}

func probeUncached(ctx context.Context, cfg ExtractorConfig) Result {
	nativeArgs := defaultArgs(cfg.NativeValidationArgs, "--help")
	if cfg.NativeBinaryName != "" {
		if r, _ := toolresolve.ResolveDetailed(ctx, cfg.NativeBinaryName, []string{cfg.NativeBinaryName}, nativeArgs); r != nil {
			return Result{Mode: NativeBinary, ExecutablePath: r.Command, Warning: r.Warning}
		}
	}

	runtimeArgs := defaultArgs(cfg.RuntimeValidationArgs, "--version")
	if cfg.RuntimeToolName != "" {
		r, _ := toolresolve.ResolveDetailed(ctx, cfg.RuntimeToolName, cfg.RuntimeCandidates, runtimeArgs)
		if r != nil {
			return Result{Mode: RuntimeInterpreter, ExecutablePath: r.Command, Warning: r.Warning}
		}
	}

	if !cfg.DisableDockerFallback {
		image := cfg.DockerImage
		if image == "" {
			image = config.DockerImage(cfg.Language)
		}
		if image != "" {
			return Result{Mode: Docker, DockerImageName: image}
		}
	}

	return Result{
		Mode: Unavailable,
		UnavailableReason: fmt.Sprintf(
			"no %s extractor available: install the native %s binary, a %s runtime, or configure a container image",
			cfg.Language, cfg.NativeBinaryName, cfg.RuntimeToolName,
		),
	}
}

// ClearCache invalidates all cached probe results.
func ClearCache() {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	shared.cache = make(map[cacheKey]Result)
}
