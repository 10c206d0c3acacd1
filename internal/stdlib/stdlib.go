// Package stdlib classifies a referenced symbol's home package/namespace
// as standard-library or a bare built-in for each of the five supported
// languages (spec.md §4.7). The extractor consults this before adding a
// symbol to an index's dependencies list.
package stdlib

import "strings"

var goPrimitives = map[string]struct{}{
	"bool": {}, "int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {}, "uintptr": {},
	"float32": {}, "float64": {}, "complex64": {}, "complex128": {},
	"string": {}, "byte": {}, "rune": {}, "error": {}, "any": {},
}

// IsGoStdlib reports whether importPath's first path element contains no
// dot (stdlib imports are short names like "context" or "io/fs"; external
// imports are domain-qualified like "github.com/...").
func IsGoStdlib(importPath string) bool {
	first := importPath
	if i := strings.IndexByte(importPath, '/'); i >= 0 {
		first = importPath[:i]
	}
	return !strings.Contains(first, ".")
}

// IsGoBuiltin reports whether name is a bare Go primitive type.
func IsGoBuiltin(name string) bool {
	_, ok := goPrimitives[name]
	return ok
}

var javaPrimitives = map[string]struct{}{
	"int": {}, "long": {}, "double": {}, "boolean": {}, "char": {},
	"byte": {}, "float": {}, "short": {}, "void": {},
}

var javaBuiltinSimpleNames = map[string]struct{}{
	"String": {}, "Object": {}, "Integer": {}, "Long": {}, "Double": {}, "Boolean": {},
	"Character": {}, "Byte": {}, "Float": {}, "Short": {}, "Number": {}, "Void": {},
	"List": {}, "Map": {}, "Set": {}, "Collection": {}, "Iterable": {}, "Iterator": {},
	"Optional": {}, "Comparator": {}, "Comparable": {},
	"InputStream": {}, "OutputStream": {}, "Reader": {}, "Writer": {}, "IOException": {},
	"CompletableFuture": {}, "Future": {}, "ExecutorService": {}, "Executor": {},
	"Instant": {}, "Duration": {}, "LocalDate": {}, "LocalDateTime": {}, "ZonedDateTime": {},
}

var javaStdlibPrefixes = []string{"java.", "javax.", "jdk.", "sun."}

// IsJavaStdlib reports whether pkg begins with a recognized JDK prefix.
func IsJavaStdlib(pkg string) bool {
	for _, p := range javaStdlibPrefixes {
		if strings.HasPrefix(pkg, p) {
			return true
		}
	}
	return false
}

// IsJavaBuiltin reports whether name is a primitive or a simple name that
// resolves to java.lang/util/io/concurrent/time without import.
func IsJavaBuiltin(name string) bool {
	if _, ok := javaPrimitives[name]; ok {
		return true
	}
	_, ok := javaBuiltinSimpleNames[name]
	return ok
}

var pythonStdlibModules = map[string]struct{}{
	"typing": {}, "datetime": {}, "enum": {}, "dataclasses": {}, "collections": {},
	"abc": {}, "os": {}, "sys": {}, "json": {}, "io": {}, "re": {}, "functools": {},
	"itertools": {}, "pathlib": {}, "contextlib": {}, "asyncio": {}, "logging": {},
	"uuid": {}, "decimal": {}, "math": {}, "copy": {}, "threading": {}, "time": {},
	"collections.abc": {}, "types": {}, "warnings": {}, "inspect": {},
}

var pythonBuiltinTypingForms = map[string]struct{}{
	"Optional": {}, "List": {}, "Dict": {}, "Tuple": {}, "Any": {}, "Union": {},
}

// IsPythonStdlib reports whether module's top-level name is a recognized
// stdlib module.
func IsPythonStdlib(module string) bool {
	top := module
	if i := strings.IndexByte(module, '.'); i >= 0 {
		top = module[:i]
	}
	if _, ok := pythonStdlibModules[module]; ok {
		return true
	}
	_, ok := pythonStdlibModules[top]
	return ok
}

// IsPythonBuiltin reports whether name is a typing-syntax built-in form.
func IsPythonBuiltin(name string) bool {
	_, ok := pythonBuiltinTypingForms[name]
	return ok
}

var dotNetPrimitives = map[string]struct{}{
	"string": {}, "int": {}, "bool": {}, "long": {}, "double": {}, "float": {},
	"decimal": {}, "byte": {}, "char": {}, "object": {}, "void": {},
}

// IsDotNetStdlib reports whether namespace begins with System or
// Microsoft.Extensions.
func IsDotNetStdlib(namespace string) bool {
	return strings.HasPrefix(namespace, "System") || strings.HasPrefix(namespace, "Microsoft.Extensions")
}

// IsDotNetBuiltin reports whether name is a primitive alias.
func IsDotNetBuiltin(name string) bool {
	_, ok := dotNetPrimitives[name]
	return ok
}

var tsBuiltinGlobals = map[string]struct{}{
	"string": {}, "number": {}, "boolean": {}, "void": {}, "undefined": {}, "null": {},
	"any": {}, "unknown": {}, "never": {}, "bigint": {}, "symbol": {}, "object": {},
	"Promise": {}, "Array": {}, "Map": {}, "Set": {}, "Record": {}, "Date": {}, "RegExp": {},
	"Uint8Array": {}, "ArrayBuffer": {}, "Error": {}, "AbortSignal": {}, "AsyncIterable": {},
	"Iterator": {}, "Iterable": {},
}

// IsTypeScriptBuiltin reports whether name is a primitive or a recognized
// lib.d.ts global. TypeScript has no module-prefix stdlib concept, so this
// is the whole classifier for the language.
func IsTypeScriptBuiltin(name string) bool {
	_, ok := tsBuiltinGlobals[name]
	return ok
}

// Language is the closed set of supported extraction languages, used to
// dispatch to the per-language classifier below.
type Language string

const (
	Go         Language = "go"
	Java       Language = "java"
	Python     Language = "python"
	DotNet     Language = "dotnet"
	TypeScript Language = "typescript"
)

// IsKnown reports whether home (a package/namespace/module, or for
// TypeScript a bare global name) is standard-library or built-in for lang,
// i.e. a name that must be excluded from dependencies per spec.md §4.7
// invariant 4.
func IsKnown(lang Language, home, name string) bool {
	switch lang {
	case Go:
		return IsGoStdlib(home) || IsGoBuiltin(name)
	case Java:
		return IsJavaStdlib(home) || IsJavaBuiltin(name)
	case Python:
		return IsPythonStdlib(home) || IsPythonBuiltin(name)
	case DotNet:
		return IsDotNetStdlib(home) || IsDotNetBuiltin(name)
	case TypeScript:
		return IsTypeScriptBuiltin(name)
	default:
		return false
	}
}
