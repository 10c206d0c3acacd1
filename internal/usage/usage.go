// Package usage walks a source tree and attributes call sites to the API
// surface described by an apimodel.Index, producing a coverage report
// (spec.md §4.12). Receiver types are inferred with a layered strategy:
// typed-receiver first (constructor assignment, declared property type, or
// a chained property access in scope), then a unique-method-name fallback
// (including a shared-ancestor root) when the receiver's type can't be
// determined; calls on an unrecognized receiver never match.
package usage

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/apiindex/internal/apimodel"
)

// OperationUsage is one covered (client_type, operation) pair, anchored to
// its first observed call site.
type OperationUsage struct {
	ClientType string
	Operation  string
	File       string
	Line       int
}

// UncoveredOperation is a client-type operation with no observed call site.
type UncoveredOperation struct {
	ClientType string
	Operation  string
	Signature  string
}

// Index is the usage analyzer's result.
type Index struct {
	FileCount           int
	CoveredOperations   []OperationUsage
	UncoveredOperations []UncoveredOperation
}

var traversalExclusions = map[string]struct{}{
	"bin": {}, "obj": {}, "node_modules": {}, "vendor": {},
	".git": {}, "target": {}, ".venv": {},
}

var extensionsByLanguage = map[string][]string{
	"dotnet":     {".cs"},
	"python":     {".py"},
	"typescript": {".ts", ".tsx"},
	"go":         {".go"},
	"java":       {".java"},
}

// clientMethod is one behavior-bearing operation on one client type (or
// interface subclient, or top-level function module), used to build both
// the method-name index (strategy 2) and the uncovered list.
type clientMethod struct {
	clientType string
	name       string
	signature  string
}

// collectClientMethods gathers every operation the analyzer can attribute a
// call site to: client-type methods, interface-subclient methods (spec.md
// §4.12 "Interface subclients"), and module-level top-level functions
// ("Top-level functions").
func collectClientMethods(idx apimodel.Index) []clientMethod {
	var out []clientMethod
	for _, t := range idx.AllTypes() {
		switch raw := any(t).(type) {
		case apimodel.TypeInfo:
			if !t.IsClientType() {
				continue
			}
			for _, m := range raw.Members {
				if m.Kind == "method" || m.Kind == "ctor" || m.Kind == "operator" {
					out = append(out, clientMethod{raw.Name, m.Name, m.Signature})
				}
			}
		case apimodel.PyClassInfo:
			if !t.IsClientType() {
				continue
			}
			for _, m := range raw.Methods {
				out = append(out, clientMethod{raw.Name, m.Name, m.Signature})
			}
		case apimodel.TSClassInfo:
			if !t.IsClientType() {
				continue
			}
			for _, m := range raw.Methods {
				out = append(out, clientMethod{raw.Name, m.Name, m.Sig})
			}
		case apimodel.GoStructInfo:
			if !t.IsClientType() {
				continue
			}
			for _, m := range raw.Methods {
				out = append(out, clientMethod{raw.Name, m.Name, m.Signature})
			}
		case apimodel.JavaClassInfo:
			if !t.IsClientType() {
				continue
			}
			for _, m := range raw.Methods {
				out = append(out, clientMethod{raw.Name, m.Name, m.Signature})
			}
		case apimodel.TSInterfaceInfo:
			// Interfaces are never client types of their own, but a
			// property typed as an interface resolves its calls here.
			for _, m := range raw.Methods {
				out = append(out, clientMethod{raw.Name, m.Name, m.Sig})
			}
		case apimodel.GoIfaceInfo:
			for _, m := range raw.Methods {
				out = append(out, clientMethod{raw.Name, m.Name, m.Signature})
			}
		}
	}
	out = append(out, collectTopLevelFunctions(idx)...)
	return out
}

// collectTopLevelFunctions gathers Python, Go, and TypeScript module-level
// functions into the same coverage stream, bucketed by owning module
// (spec.md §4.12 "Top-level functions").
func collectTopLevelFunctions(idx apimodel.Index) []clientMethod {
	var out []clientMethod
	if raw, ok := idx.(interface{ Raw() apimodel.PythonApiIndex }); ok {
		for _, m := range raw.Raw().Modules {
			for _, fn := range m.Functions {
				out = append(out, clientMethod{m.Name, fn.Name, fn.Signature})
			}
		}
	}
	if raw, ok := idx.(interface{ Raw() apimodel.GoApiIndex }); ok {
		for _, p := range raw.Raw().Packages {
			for _, fn := range p.Functions {
				out = append(out, clientMethod{p.Name, fn.Name, fn.Signature})
			}
		}
	}
	if raw, ok := idx.(interface{ Raw() apimodel.TypeScriptApiIndex }); ok {
		for _, m := range raw.Raw().Modules {
			for _, fn := range m.Functions {
				out = append(out, clientMethod{m.Name, fn.Name, fn.Sig})
			}
		}
	}
	return out
}

// propertyTypesByOwner maps, for every modeled type, its property/field
// names to their declared type (last path segment), the lookup strategy
// 1(b)/1(c) need to resolve a subclient's type without re-running the call
// through a constructor assignment.
func propertyTypesByOwner(idx apimodel.Index) map[string]map[string]string {
	out := make(map[string]map[string]string)
	set := func(owner, prop, typ string) {
		if typ == "" {
			return
		}
		if out[owner] == nil {
			out[owner] = make(map[string]string)
		}
		out[owner][prop] = lastSegment(typ)
	}
	for _, t := range idx.AllTypes() {
		switch raw := any(t).(type) {
		case apimodel.TSClassInfo:
			for _, p := range raw.Properties {
				set(raw.Name, p.Name, p.Type)
			}
		case apimodel.TSInterfaceInfo:
			for _, p := range raw.Properties {
				set(raw.Name, p.Name, p.Type)
			}
		case apimodel.GoStructInfo:
			for _, f := range raw.Fields {
				set(raw.Name, f.Name, f.Type)
			}
		case apimodel.JavaClassInfo:
			for _, f := range raw.Fields {
				set(raw.Name, f.Name, f.Type)
			}
		case apimodel.PyClassInfo:
			for _, p := range raw.Properties {
				set(raw.Name, p.Name, p.Type)
			}
		case apimodel.TypeInfo:
			for _, m := range raw.Members {
				if m.Kind == "property" || m.Kind == "field" {
					set(raw.Name, m.Name, m.Signature)
				}
			}
		}
	}
	return out
}

// baseChainOf maps a type's name to its immediate base/extends/implements
// name, for strategy 2's common-ancestor fallback.
func baseChainOf(idx apimodel.Index) map[string]string {
	out := make(map[string]string)
	for _, t := range idx.AllTypes() {
		refs := t.References()
		if len(refs.BaseLike) > 0 {
			out[t.TypeName()] = lastSegment(refs.BaseLike[0])
		}
	}
	return out
}

// findRoot walks a base chain to its topmost ancestor, stopping at cycles.
func findRoot(name string, baseOf map[string]string) string {
	seen := make(map[string]struct{})
	cur := name
	for {
		if _, ok := seen[cur]; ok {
			return cur
		}
		seen[cur] = struct{}{}
		next, ok := baseOf[cur]
		if !ok || next == "" || next == cur {
			return cur
		}
		cur = next
	}
}

// receiverAssign matches `name = new Type(` / `name := Type{` style
// constructions across the five languages closely enough to seed the
// typed-receiver strategy; it deliberately favors common idioms over
// exhaustive grammar coverage.
var receiverAssign = regexp.MustCompile(`(?:var\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*[:=]{1,2}\s*new\s+([A-Za-z_][A-Za-z0-9_.]*)\s*\(`)
var goReceiverAssign = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*:?=\s*&?([A-Za-z_][A-Za-z0-9_.]*)\s*\{`)
var pyReceiverAssign = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\(`)

// propertyAssign matches `name = owner.Property` with no call parens,
// seeding strategy 1(b): a variable assigned from a property/field whose
// declared type is known resolves through that type, not a constructor.
var propertyAssign = regexp.MustCompile(`(?:var\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*[:=]{1,2}\s*([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)\s*;?\s*$`)

// chainedCall matches `receiver.method(` and, when present, the longer
// `owner.property.method(` chain used without an intermediate variable
// (strategy 1(c), e.g. `client.Widgets.ListWidgets()`).
var chainedCall = regexp.MustCompile(`(?:([A-Za-z_][A-Za-z0-9_]*)\.)?([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// bareCall matches a function name called with no receiver at all, the
// call shape a module-level function is invoked with.
var bareCall = regexp.MustCompile(`(?:^|[^.A-Za-z0-9_])([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

func lastSegment(typeName string) string {
	if i := strings.LastIndexByte(typeName, '.'); i >= 0 {
		return typeName[i+1:]
	}
	return typeName
}

// Analyze walks sourceTreePath for files matching idx's language, inferring
// call-site receiver types and matching calls against idx's client-type API
// surface.
func Analyze(ctx context.Context, sourceTreePath string, idx apimodel.Index) (Index, error) {
	return AnalyzeWithExclusions(ctx, sourceTreePath, idx, nil)
}

// AnalyzeWithExclusions behaves like Analyze but skips any file matching one
// of excludeGlobs, tried first against the path relative to sourceTreePath
// and then, for a pattern containing no '/', against the basename, the same
// two-step fallback the teacher's
// file walker uses for its include/exclude patterns.
func AnalyzeWithExclusions(ctx context.Context, sourceTreePath string, idx apimodel.Index, excludeGlobs []string) (Index, error) {
	methods := collectClientMethods(idx)
	propTypes := propertyTypesByOwner(idx)
	baseOf := baseChainOf(idx)

	methodsByName := make(map[string][]clientMethod)
	for _, m := range methods {
		methodsByName[m.name] = append(methodsByName[m.name], m)
	}

	methodsByType := make(map[string]map[string]clientMethod)
	for _, m := range methods {
		if methodsByType[m.clientType] == nil {
			methodsByType[m.clientType] = make(map[string]clientMethod)
		}
		methodsByType[m.clientType][m.name] = m
	}

	exts := extensionsByLanguage[idx.Language()]

	result := Index{}
	covered := make(map[[2]string]OperationUsage)
	coveredOrder := make([][2]string, 0)

	err := filepath.WalkDir(sourceTreePath, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if _, skip := traversalExclusions[d.Name()]; skip && path != sourceTreePath {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasAnyExt(path, exts) {
			return nil
		}
		if matchesAnyGlob(sourceTreePath, path, excludeGlobs) {
			return nil
		}
		result.FileCount++
		return scanFile(path, idx.Language(), methodsByName, methodsByType, propTypes, baseOf, func(clientType, op string, line int) {
			key := [2]string{clientType, op}
			if _, exists := covered[key]; !exists {
				covered[key] = OperationUsage{ClientType: clientType, Operation: op, File: path, Line: line}
				coveredOrder = append(coveredOrder, key)
			}
		})
	})
	if err != nil {
		return Index{}, err
	}

	for _, key := range coveredOrder {
		result.CoveredOperations = append(result.CoveredOperations, covered[key])
	}

	for _, m := range methods {
		key := [2]string{m.clientType, m.name}
		if _, ok := covered[key]; ok {
			continue
		}
		result.UncoveredOperations = append(result.UncoveredOperations, UncoveredOperation{
			ClientType: m.clientType, Operation: m.name, Signature: m.signature,
		})
	}

	return result, nil
}

func hasAnyExt(path string, exts []string) bool {
	for _, e := range exts {
		if strings.HasSuffix(path, e) {
			return true
		}
	}
	return false
}

func matchesAnyGlob(root, path string, globs []string) bool {
	if len(globs) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pattern := range globs {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if matched, err := doublestar.Match(pattern, base); err == nil && matched {
				return true
			}
		}
	}
	return false
}

func scanFile(
	path, lang string,
	methodsByName map[string][]clientMethod,
	methodsByType map[string]map[string]clientMethod,
	propTypes map[string]map[string]string,
	baseOf map[string]string,
	record func(clientType, op string, line int),
) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	receiverTypes := make(map[string]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch lang {
		case "go":
			if m := goReceiverAssign.FindStringSubmatch(line); m != nil {
				receiverTypes[m[1]] = lastSegment(m[2])
			}
		case "python":
			if m := pyReceiverAssign.FindStringSubmatch(line); m != nil {
				receiverTypes[m[1]] = lastSegment(m[2])
			}
		default:
			if m := receiverAssign.FindStringSubmatch(line); m != nil {
				receiverTypes[m[1]] = lastSegment(m[2])
			}
		}
		// Strategy 1(b): a variable assigned from a known receiver's
		// property/field inherits the property's declared type.
		if m := propertyAssign.FindStringSubmatch(line); m != nil {
			name, owner, prop := m[1], m[2], m[3]
			if ownerType, known := receiverTypes[owner]; known {
				if typ, ok := propTypes[ownerType][prop]; ok {
					receiverTypes[name] = typ
				}
			}
		}

		for _, m := range chainedCall.FindAllStringSubmatch(line, -1) {
			owner, receiver, method := m[1], m[2], m[3]

			// Strategy 1(c): chained property.method() with no
			// intermediate variable, resolved via the owner's declared
			// property type.
			if owner != "" {
				if ownerType, known := receiverTypes[owner]; known {
					if subType, ok := propTypes[ownerType][receiver]; ok {
						if byName, ok := methodsByType[subType]; ok {
							if _, ok := byName[method]; ok {
								record(subType, method, lineNo)
								continue
							}
						}
					}
				}
			}

			// Strategy 1(a): direct typed receiver.
			if typ, known := receiverTypes[receiver]; known {
				if byName, ok := methodsByType[typ]; ok {
					if _, ok := byName[method]; ok {
						record(typ, method, lineNo)
						continue
					}
				}
			}

			// Strategy 2: unique method name, or shared-ancestor root.
			candidates := methodsByName[method]
			root := uniqueRoot(candidates, baseOf)
			if root != "" {
				record(root, method, lineNo)
			}
		}

		// Top-level functions are called with no receiver at all; match
		// them the same way a receiverless strategy-2 lookup would.
		for _, m := range bareCall.FindAllStringSubmatch(line, -1) {
			name := m[1]
			root := uniqueRoot(methodsByName[name], baseOf)
			if root != "" {
				record(root, name, lineNo)
			}
		}
	}
	return scanner.Err()
}

// uniqueRoot returns the single client type name candidates all resolve to.
// If more than one type defines the name but every candidate's base chain
// converges on the same topmost ancestor, that ancestor is the root
// (spec.md §4.12 strategy 2). Otherwise there is no unique root and the
// call is dropped.
func uniqueRoot(candidates []clientMethod, baseOf map[string]string) string {
	if len(candidates) == 0 {
		return ""
	}
	seen := make(map[string]struct{})
	for _, c := range candidates {
		seen[c.clientType] = struct{}{}
	}
	if len(seen) == 1 {
		for t := range seen {
			return t
		}
	}

	roots := make(map[string]struct{})
	for t := range seen {
		roots[findRoot(t, baseOf)] = struct{}{}
	}
	if len(roots) == 1 {
		for r := range roots {
			return r
		}
	}
	return ""
}

// GroupCoveredByClient groups covered operations by client type, preserving
// each type's first-seen call order, for formatter rendering.
func GroupCoveredByClient(idx Index) map[string][]OperationUsage {
	out := make(map[string][]OperationUsage)
	for _, op := range idx.CoveredOperations {
		out[op.ClientType] = append(out[op.ClientType], op)
	}
	return out
}
