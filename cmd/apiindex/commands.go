package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/oxhq/apiindex/internal/apimodel"
	"github.com/oxhq/apiindex/internal/cache"
	"github.com/oxhq/apiindex/internal/config"
	"github.com/oxhq/apiindex/internal/diagnostics"
	"github.com/oxhq/apiindex/internal/extract"
	"github.com/oxhq/apiindex/internal/fingerprint"
	"github.com/oxhq/apiindex/internal/format"
	"github.com/oxhq/apiindex/internal/runstore"
	"github.com/oxhq/apiindex/internal/stdlib"
	"github.com/oxhq/apiindex/internal/usage"
)

var extensionsByLanguage = map[string]map[string]struct{}{
	"go":         {".go": {}},
	"java":       {".java": {}},
	"python":     {".py": {}},
	"typescript": {".ts": {}, ".tsx": {}},
	"dotnet":     {".cs": {}},
}

func fingerprintFor(language string) cache.FingerprintFunc {
	exts := extensionsByLanguage[language]
	return func(path string) (string, error) {
		return fingerprint.Compute(path, exts)
	}
}

func logWarnings(language string, warnings []string) {
	for _, w := range warnings {
		slog.Warn("extractor warning", "language", language, "warning", w)
	}
}

var (
	goCache = cache.New(fingerprintFor("go"), func(ctx context.Context, path string) (apimodel.Index, error) {
		res := extract.ExtractGo(ctx, extract.DefaultConfig(stdlib.Go), path)
		logWarnings("go", res.Warnings)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Index, nil
	})
	javaCache = cache.New(fingerprintFor("java"), func(ctx context.Context, path string) (apimodel.Index, error) {
		res := extract.ExtractJava(ctx, extract.DefaultConfig(stdlib.Java), path)
		logWarnings("java", res.Warnings)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Index, nil
	})
	pythonCache = cache.New(fingerprintFor("python"), func(ctx context.Context, path string) (apimodel.Index, error) {
		res := extract.ExtractPython(ctx, extract.DefaultConfig(stdlib.Python), path)
		logWarnings("python", res.Warnings)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Index, nil
	})
	typeScriptCache = cache.New(fingerprintFor("typescript"), func(ctx context.Context, path string) (apimodel.Index, error) {
		res := extract.ExtractTypeScript(ctx, extract.DefaultConfig(stdlib.TypeScript), path)
		logWarnings("typescript", res.Warnings)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Index, nil
	})
	dotNetCache = cache.New(fingerprintFor("dotnet"), func(ctx context.Context, path string) (apimodel.Index, error) {
		res := extract.ExtractDotNet(ctx, path)
		logWarnings("dotnet", res.Warnings)
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Index, nil
	})
)

func resolveIndex(ctx context.Context, language, sourcePath string) (apimodel.Index, error) {
	switch stdlib.Language(language) {
	case stdlib.Go:
		return goCache.Get(ctx, sourcePath)
	case stdlib.Java:
		return javaCache.Get(ctx, sourcePath)
	case stdlib.Python:
		return pythonCache.Get(ctx, sourcePath)
	case stdlib.TypeScript:
		return typeScriptCache.Get(ctx, sourcePath)
	case stdlib.DotNet:
		return dotNetCache.Get(ctx, sourcePath)
	default:
		return nil, fmt.Errorf("unknown language %q (want go|java|python|typescript|dotnet)", language)
	}
}

// rawOf type-asserts idx back to its concrete raw struct for JSON output
// and digesting, mirroring the same Raw() pattern internal/format uses for
// Go's package-level const/var rendering.
func rawOf(idx apimodel.Index) any {
	switch idx.Language() {
	case "go":
		return idx.(interface{ Raw() apimodel.GoApiIndex }).Raw()
	case "java":
		return idx.(interface{ Raw() apimodel.JavaApiIndex }).Raw()
	case "python":
		return idx.(interface{ Raw() apimodel.PythonApiIndex }).Raw()
	case "typescript":
		return idx.(interface{ Raw() apimodel.TypeScriptApiIndex }).Raw()
	case "dotnet":
		return idx.(interface{ Raw() apimodel.DotNetApiIndex }).Raw()
	default:
		return nil
	}
}

func newExtractCommand(sourcePath, language *string) *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the API index and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *language == "" {
				return fmt.Errorf("--language is required")
			}
			ctx := cmd.Context()
			start := time.Now()
			idx, err := resolveIndex(ctx, *language, *sourcePath)
			duration := time.Since(start)

			if record {
				recordRun(ctx, *language, *sourcePath, idx, duration, err)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rawOf(idx))
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "persist this run to the run store")
	return cmd
}

func recordRun(ctx context.Context, language, sourcePath string, idx apimodel.Index, duration time.Duration, extractErr error) {
	store, err := runstore.Open(config.LoadRunStore())
	if err != nil {
		slog.Error("run store unavailable", "error", err)
		return
	}
	defer store.Close()

	in := runstore.RunInput{
		Language:   language,
		SourcePath: sourcePath,
		Duration:   duration,
		Success:    extractErr == nil,
	}
	if extractErr != nil {
		in.ErrorMessage = extractErr.Error()
	}
	if idx != nil {
		in.PackageName = idx.PackageName()
		in.DiagnosticsCount = len(idx.Diagnostics())
		if raw := rawOf(idx); raw != nil {
			if b, err := json.Marshal(raw); err == nil {
				sum := sha256.Sum256(b)
				in.IndexDigest = hex.EncodeToString(sum[:])
			}
		}
	}
	if fp, err := fingerprint.Compute(sourcePath, extensionsByLanguage[language]); err == nil {
		in.FingerprintDigest = fp
	}

	if _, err := store.Record(ctx, in); err != nil {
		slog.Error("recording run failed", "error", err)
	}
}

func newFormatCommand(sourcePath, language *string) *cobra.Command {
	var (
		budget          int
		diffAgainst     string
		coverageSource  string
		coverageExclude []string
		output          string
	)

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Render a budgeted textual stub of the API index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *language == "" {
				return fmt.Errorf("--language is required")
			}
			ctx := cmd.Context()
			idx, err := resolveIndex(ctx, *language, *sourcePath)
			if err != nil {
				return err
			}

			var rendered string
			var truncated bool
			if coverageSource != "" {
				usageIdx, err := usage.AnalyzeWithExclusions(ctx, coverageSource, idx, coverageExclude)
				if err != nil {
					return fmt.Errorf("analyzing usage: %w", err)
				}
				rendered, truncated = format.FormatWithCoverage(idx, usageIdx, budget)
			} else {
				rendered, truncated = format.Format(idx, budget)
			}
			if truncated {
				slog.Warn("stub truncated by budget", "budget", budget)
			}

			if diffAgainst != "" {
				prior, err := os.ReadFile(diffAgainst)
				if err != nil {
					return fmt.Errorf("reading --diff-against: %w", err)
				}
				diff := difflib.UnifiedDiff{
					A:        difflib.SplitLines(string(prior)),
					B:        difflib.SplitLines(rendered),
					FromFile: diffAgainst,
					ToFile:   "current",
					Context:  3,
				}
				text, err := difflib.GetUnifiedDiffString(diff)
				if err != nil {
					return fmt.Errorf("rendering diff: %w", err)
				}
				rendered = text
			}

			if output != "" {
				return os.WriteFile(output, []byte(rendered), 0o644)
			}
			fmt.Println(rendered)
			return nil
		},
	}
	cmd.Flags().IntVar(&budget, "budget", 0, "character budget, 0 means unlimited")
	cmd.Flags().StringVar(&diffAgainst, "diff-against", "", "path to a previously saved rendering to diff against")
	cmd.Flags().StringVar(&coverageSource, "coverage-source", "", "client source tree to compute a coverage summary against")
	cmd.Flags().StringSliceVar(&coverageExclude, "coverage-exclude", nil, "glob patterns (doublestar syntax) of coverage-source files to skip")
	cmd.Flags().StringVar(&output, "output", "", "write rendering to this file instead of stdout")
	return cmd
}

func newUsageCommand(sourcePath, language *string) *cobra.Command {
	var (
		clientSource string
		exclude      []string
	)

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Match a client source tree's call sites against the API index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *language == "" {
				return fmt.Errorf("--language is required")
			}
			if clientSource == "" {
				return fmt.Errorf("--client-source is required")
			}
			ctx := cmd.Context()
			idx, err := resolveIndex(ctx, *language, *sourcePath)
			if err != nil {
				return err
			}
			usageIdx, err := usage.AnalyzeWithExclusions(ctx, clientSource, idx, exclude)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(usageIdx)
		},
	}
	cmd.Flags().StringVar(&clientSource, "client-source", "", "client source tree to scan for API call sites")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns (doublestar syntax) of client files to skip, e.g. **/*_test.go")
	return cmd
}

func newDiagnosticsCommand(sourcePath, language *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnostics",
		Short: "Evaluate the fixed diagnostic rule set against the API index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *language == "" {
				return fmt.Errorf("--language is required")
			}
			idx, err := resolveIndex(cmd.Context(), *language, *sourcePath)
			if err != nil {
				return err
			}
			diags := diagnostics.Evaluate(idx)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(diags)
		},
	}
	return cmd
}
