// Package toolresolve locates an executable analyzer tool by environment
// override, then PATH, then a list of well-known candidate names
// (spec.md §4.4).
package toolresolve

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/oxhq/apiindex/internal/config"
	"github.com/oxhq/apiindex/internal/sandbox"
)

// standardLocations are the prefixes a resolved absolute path is expected
// to live under; anything else earns a non-fatal warning.
var standardLocations = []string{
	"/usr/bin",
	"/usr/local/bin",
	"/opt",
	`C:\Program Files`,
	`C:\Program Files (x86)`,
}

// Result is the detailed resolution outcome.
type Result struct {
	Command     string
	AbsPath     string
	Warning     string
}

func validates(ctx context.Context, command string, validationArgs []string) bool {
	path, err := exec.LookPath(command)
	if err != nil {
		return false
	}
	res, err := sandbox.Execute(ctx, sandbox.Options{
		Program: path,
		Args:    validationArgs,
		Timeout: 5 * time.Second,
	})
	return err == nil && res.ExitCode == 0
}

// Resolve returns a usable command string for toolName, or "" if none of
// the candidates validate. It is the simple form of §4.4: an invalid env
// override falls back to PATH/candidates silently.
func Resolve(ctx context.Context, toolName string, candidateNames []string, validationArgs []string) string {
	r, warn := ResolveDetailed(ctx, toolName, candidateNames, validationArgs)
	if r == nil && warn != "" {
		for _, candidate := range candidateNames {
			if validates(ctx, candidate, validationArgs) {
				return candidate
			}
		}
	}
	if r == nil {
		return ""
	}
	return r.Command
}

// ResolveDetailed is the detailed form of §4.4: it additionally reports the
// absolute path and a non-fatal warning when the resolved binary is outside
// a standard location, or an explicit warning when an env override is set
// but does not validate.
func ResolveDetailed(ctx context.Context, toolName string, candidateNames []string, validationArgs []string) (*Result, string) {
	envVar := "SDK_CHAT_" + strings.ToUpper(toolName) + "_PATH"
	if override, ok := config.ToolPathOverride(toolName); ok {
		if validates(ctx, override, validationArgs) {
			abs, _ := exec.LookPath(override)
			return &Result{Command: override, AbsPath: abs, Warning: warnIfNonStandard(abs)}, ""
		}
		return nil, "environment variable " + envVar + " is set but does not point to a usable executable"
	}

	for _, candidate := range candidateNames {
		if validates(ctx, candidate, validationArgs) {
			abs, _ := exec.LookPath(candidate)
			return &Result{Command: candidate, AbsPath: abs, Warning: warnIfNonStandard(abs)}, ""
		}
	}

	return nil, ""
}

func warnIfNonStandard(absPath string) string {
	if absPath == "" {
		return ""
	}
	for _, loc := range standardLocations {
		if strings.HasPrefix(absPath, loc) {
			return ""
		}
	}
	return "resolved executable " + absPath + " is outside standard tool locations"
}
