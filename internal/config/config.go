// Package config loads the engine's environment-variable configuration
// (spec.md §6), following the teacher's os.Getenv + strconv + defaulting
// style. An optional local .env file is loaded first via godotenv, purely
// as a developer convenience -- it never overrides variables already set
// in the process environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// loadDotEnv loads a .env file from the working directory, if present, once
// per process. Missing files are not an error.
func loadDotEnv() {
	envOnce.Do(func() {
		_ = godotenv.Load()
	})
}

const defaultExtractorTimeoutSeconds = 300

var (
	timeoutMu     sync.Mutex
	timeoutCached bool
	timeoutValue  int
)

// ExtractorTimeoutSeconds reads SDK_CHAT_EXTRACTOR_TIMEOUT (spec.md §6).
// Invalid or missing values fall back to 300. The resolved value is cached
// process-wide; call ResetExtractorTimeoutCache to force a re-read (tests
// that mutate the environment must not run this in parallel with each
// other, per spec.md §5).
func ExtractorTimeoutSeconds() int {
	timeoutMu.Lock()
	defer timeoutMu.Unlock()
	if timeoutCached {
		return timeoutValue
	}

	loadDotEnv()
	v := os.Getenv("SDK_CHAT_EXTRACTOR_TIMEOUT")
	n := defaultExtractorTimeoutSeconds
	if v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			n = parsed
		}
	}
	timeoutValue = n
	timeoutCached = true
	return n
}

// ResetExtractorTimeoutCache clears the cached timeout value so the next
// call to ExtractorTimeoutSeconds re-reads the environment.
func ResetExtractorTimeoutCache() {
	timeoutMu.Lock()
	defer timeoutMu.Unlock()
	timeoutCached = false
}

// ToolPathOverride reads SDK_CHAT_{TOOL}_PATH for the given tool name.
func ToolPathOverride(toolName string) (string, bool) {
	loadDotEnv()
	key := "SDK_CHAT_" + strings.ToUpper(toolName) + "_PATH"
	v := os.Getenv(key)
	return v, v != ""
}

// DockerImage reads SDK_CHAT_{LANG}_IMAGE, defaulting to
// "api-extractor-{lang}:latest" per spec.md §6.
func DockerImage(lang string) string {
	loadDotEnv()
	key := "SDK_CHAT_" + strings.ToUpper(lang) + "_IMAGE"
	if v := os.Getenv(key); v != "" {
		return v
	}
	return "api-extractor-" + strings.ToLower(lang) + ":latest"
}

// RunStore holds the Run Store's (SPEC_FULL.md §4.15, C14) connection
// configuration.
type RunStore struct {
	DSN   string
	Debug bool
}

// LoadRunStore reads SDK_CHAT_RUNSTORE_DSN and SDK_CHAT_RUNSTORE_DEBUG,
// defaulting to a local SQLite file under the OS temp directory.
func LoadRunStore() RunStore {
	loadDotEnv()
	dsn := os.Getenv("SDK_CHAT_RUNSTORE_DSN")
	if dsn == "" {
		dsn = os.TempDir() + "/apiindex-runstore.db"
	}
	debug := false
	if v := os.Getenv("SDK_CHAT_RUNSTORE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			debug = b
		}
	}
	return RunStore{DSN: dsn, Debug: debug}
}
