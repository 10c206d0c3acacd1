// Package extract runs a per-language extractor against a source tree and
// converts its raw output into the shared apimodel index types (spec.md
// §4.8). Four of the five languages shell out to an external analyzer via
// internal/sandbox; the fifth, C#, parses in-process with go-tree-sitter
// (extract_dotnet.go).
package extract

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/oxhq/apiindex/internal/apierr"
	"github.com/oxhq/apiindex/internal/apimodel"
	"github.com/oxhq/apiindex/internal/availability"
	"github.com/oxhq/apiindex/internal/config"
	"github.com/oxhq/apiindex/internal/sandbox"
	"github.com/oxhq/apiindex/internal/stdlib"
)

// Result is ExtractorResult<Raw> from spec.md §4.8: either a success (with
// an index and a possibly-empty warnings list) or a failure (with an
// error). ToBase erases the generic Raw type.
type Result[T any] struct {
	Raw      T
	Index    apimodel.Index
	Warnings []string
	Err      error
}

func (r Result[T]) Ok() bool { return r.Err == nil }

// ToBase erases the generic result to an interface-typed result, preserving
// warnings and the constructed Index.
func (r Result[T]) ToBase() Result[apimodel.Index] {
	return Result[apimodel.Index]{Index: r.Index, Warnings: r.Warnings, Err: r.Err}
}

// Config names how to run one language's external analyzer.
type Config struct {
	Language     stdlib.Language
	Availability availability.ExtractorConfig
	Args         func(sourcePath string) []string
	Timeout      int // seconds; zero means config.ExtractorTimeoutSeconds()
}

// runExternal probes availability, invokes the resolved tool via the
// sandbox, and returns its raw stdout, warnings from stderr, and any
// launch/timeout/cancellation/non-zero-exit error.
func runExternal(ctx context.Context, cfg Config, sourcePath string) ([]byte, []string, error) {
	probe := availability.Probe(ctx, cfg.Availability, false)
	if probe.Mode == availability.Unavailable {
		return nil, nil, apierr.New(apierr.KindUnavailable, probe.UnavailableReason)
	}

	timeoutSeconds := cfg.Timeout
	if timeoutSeconds <= 0 {
		timeoutSeconds = config.ExtractorTimeoutSeconds()
	}

	args := cfg.Args(sourcePath)
	opts := sandbox.Options{Timeout: secondsToDuration(timeoutSeconds)}

	switch probe.Mode {
	case availability.NativeBinary, availability.RuntimeInterpreter:
		opts.Program = probe.ExecutablePath
		opts.Args = args
	case availability.Docker:
		opts.Program = "docker"
		opts.Args = append([]string{"run", "--rm", probe.DockerImageName}, args...)
	default:
		return nil, nil, apierr.New(apierr.KindUnavailable, probe.UnavailableReason)
	}

	res, err := sandbox.Execute(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	warnings := splitWarnings(res.Stderr)
	if res.TimedOut {
		return nil, warnings, apierr.New(apierr.KindTimeout, "extractor timed out after "+strconv.Itoa(timeoutSeconds)+"s")
	}
	if res.ExitCode != 0 {
		return nil, warnings, apierr.New(apierr.KindSourceError, "extractor exited with code "+strconv.Itoa(res.ExitCode))
	}
	return []byte(res.Stdout), warnings, nil
}

func secondsToDuration(seconds int) (d time.Duration) {
	return time.Duration(seconds) * time.Second
}

func splitWarnings(stderr string) []string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// filterDependencies drops built-in/stdlib entries from deps per the
// classifier (spec.md §4.7 invariant 4). A type name is dropped from its
// dependency's Types list when the classifier recognizes it as stdlib or
// builtin for lang; a dependency left with no Types after filtering is
// dropped entirely when it originally carried any (it referenced nothing
// but built-ins).
func filterDependencies(lang stdlib.Language, deps []apimodel.DependencyInfo) []apimodel.DependencyInfo {
	out := make([]apimodel.DependencyInfo, 0, len(deps))
	for _, d := range deps {
		if stdlib.IsKnown(lang, d.Package, "") {
			continue
		}
		kept := make([]string, 0, len(d.Types))
		for _, name := range d.Types {
			if !stdlib.IsKnown(lang, d.Package, name) {
				kept = append(kept, name)
			}
		}
		if len(d.Types) > 0 && len(kept) == 0 {
			continue
		}
		out = append(out, apimodel.DependencyInfo{Package: d.Package, Types: kept})
	}
	return out
}

// ExtractGo runs the Go extractor against sourcePath. Before invoking the
// compiled analyzer it evicts any cached binary left over from a previous
// embedded-source hash (spec.md §4.8); the eviction failing is logged as a
// warning rather than aborting extraction, since a stale binary left on
// disk doesn't affect correctness, only cache hygiene.
func ExtractGo(ctx context.Context, cfg Config, sourcePath string) Result[apimodel.GoApiIndex] {
	var warnings []string
	if err := EvictStaleNativeBinaries(GoExtractorCacheDir(), embeddedGoAnalyzerHash); err != nil {
		warnings = append(warnings, "go extractor cache eviction: "+err.Error())
	}

	raw, runWarnings, err := runExternal(ctx, cfg, sourcePath)
	warnings = append(warnings, runWarnings...)
	if err != nil {
		return Result[apimodel.GoApiIndex]{Err: err, Warnings: warnings}
	}
	var parsed apimodel.GoApiIndex
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result[apimodel.GoApiIndex]{Err: apierr.Wrap(apierr.KindDeserialization, "go extractor output", err), Warnings: warnings}
	}
	parsed.Dependencies = filterDependencies(stdlib.Go, parsed.Dependencies)
	return Result[apimodel.GoApiIndex]{Raw: parsed, Index: apimodel.NewGoIndex(parsed), Warnings: warnings}
}

// ExtractJava runs the Java extractor against sourcePath.
func ExtractJava(ctx context.Context, cfg Config, sourcePath string) Result[apimodel.JavaApiIndex] {
	raw, warnings, err := runExternal(ctx, cfg, sourcePath)
	if err != nil {
		return Result[apimodel.JavaApiIndex]{Err: err, Warnings: warnings}
	}
	var parsed apimodel.JavaApiIndex
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result[apimodel.JavaApiIndex]{Err: apierr.Wrap(apierr.KindDeserialization, "java extractor output", err), Warnings: warnings}
	}
	parsed.Dependencies = filterDependencies(stdlib.Java, parsed.Dependencies)
	return Result[apimodel.JavaApiIndex]{Raw: parsed, Index: apimodel.NewJavaIndex(parsed), Warnings: warnings}
}

// ExtractPython runs the Python extractor against sourcePath.
func ExtractPython(ctx context.Context, cfg Config, sourcePath string) Result[apimodel.PythonApiIndex] {
	raw, warnings, err := runExternal(ctx, cfg, sourcePath)
	if err != nil {
		return Result[apimodel.PythonApiIndex]{Err: err, Warnings: warnings}
	}
	var parsed apimodel.PythonApiIndex
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result[apimodel.PythonApiIndex]{Err: apierr.Wrap(apierr.KindDeserialization, "python extractor output", err), Warnings: warnings}
	}
	parsed.Dependencies = filterDependencies(stdlib.Python, parsed.Dependencies)
	return Result[apimodel.PythonApiIndex]{Raw: parsed, Index: apimodel.NewPythonIndex(parsed), Warnings: warnings}
}

// ExtractTypeScript runs the TypeScript extractor against sourcePath.
func ExtractTypeScript(ctx context.Context, cfg Config, sourcePath string) Result[apimodel.TypeScriptApiIndex] {
	raw, warnings, err := runExternal(ctx, cfg, sourcePath)
	if err != nil {
		return Result[apimodel.TypeScriptApiIndex]{Err: err, Warnings: warnings}
	}
	var parsed apimodel.TypeScriptApiIndex
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Result[apimodel.TypeScriptApiIndex]{Err: apierr.Wrap(apierr.KindDeserialization, "typescript extractor output", err), Warnings: warnings}
	}
	parsed.Dependencies = filterDependencies(stdlib.TypeScript, parsed.Dependencies)
	return Result[apimodel.TypeScriptApiIndex]{Raw: parsed, Index: apimodel.NewTypeScriptIndex(parsed), Warnings: warnings}
}

// DefaultConfig builds the availability/invocation config for lang, with
// environment-overridable tool paths per spec.md §6 (consulted inside
// internal/toolresolve, which internal/availability calls).
func DefaultConfig(lang stdlib.Language) Config {
	switch lang {
	case stdlib.Go:
		return Config{
			Language: stdlib.Go,
			Availability: availability.ExtractorConfig{
				Language:         "go",
				NativeBinaryName: "api-extractor-go",
			},
			Args: func(path string) []string { return []string{"-path", path} },
		}
	case stdlib.Java:
		return Config{
			Language: stdlib.Java,
			Availability: availability.ExtractorConfig{
				Language:          "java",
				NativeBinaryName:  "api-extractor-java",
				RuntimeToolName:   "java",
				RuntimeCandidates: []string{"java"},
			},
			Args: func(path string) []string { return []string{"-jar", "api-extractor.jar", path} },
		}
	case stdlib.Python:
		return Config{
			Language: stdlib.Python,
			Availability: availability.ExtractorConfig{
				Language:          "python",
				NativeBinaryName:  "api-extractor-python",
				RuntimeToolName:   "python3",
				RuntimeCandidates: []string{"python3", "python"},
			},
			Args: func(path string) []string { return []string{"-m", "api_extractor", path} },
		}
	case stdlib.TypeScript:
		return Config{
			Language: stdlib.TypeScript,
			Availability: availability.ExtractorConfig{
				Language:          "typescript",
				NativeBinaryName:  "api-extractor-ts",
				RuntimeToolName:   "node",
				RuntimeCandidates: []string{"node"},
			},
			Args: func(path string) []string { return []string{"api-extractor-ts.js", path} },
		}
	default:
		return Config{Language: lang}
	}
}
