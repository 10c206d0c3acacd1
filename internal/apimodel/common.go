// Package apimodel holds the five per-language API model trees (DotNet,
// Python, TypeScript, Go, Java) described in spec.md §3/§4.6. Each tree is a
// set of plain, JSON-serializable structs; they share a capability surface
// through the NamedType and Index interfaces so the resolver, formatter,
// usage analyzer, and diagnostics post-processor can operate generically
// across languages (spec.md §9, "Polymorphism over a capability set").
package apimodel

// Diagnostic is one entry in an index's diagnostics list (spec.md §4.13).
type Diagnostic struct {
	ID     string `json:"id"`
	Level  string `json:"level"`
	Target string `json:"target,omitempty"`
	Text   string `json:"text"`
}

// DependencyInfo names an external package and the subset of its types
// encountered in signatures (spec.md §3, invariant 4).
type DependencyInfo struct {
	Package string   `json:"package"`
	Types   []string `json:"types,omitempty"`
}

// Truncation priority tiers (spec.md §3, invariant 7). PriorityModelReachable
// is not returned by IntrinsicPriority or stored by an extractor; the
// formatter gives one-hop-reachable types their own tier without reading
// TruncationPriority.
const (
	PriorityClient         = 0
	PriorityError          = 1
	PriorityModelReachable = 2
	PriorityOther          = 3
)

// ReferenceSource is the raw material the cross-reference resolver (C10)
// tokenizes. BaseLike holds base/extends/implements/embeds entries, which
// the resolver reduces to the prefix before a generic/argument opener
// before tokenizing; Signatures holds full member signatures, return types,
// and field/property/enum-backing types, tokenized in full.
type ReferenceSource struct {
	BaseLike   []string
	Signatures []string
}

// NamedType is the common capability set required of every named type
// (class, interface, record/struct, enum, delegate, alias, annotation)
// across all five languages (spec.md §3).
type NamedType interface {
	TypeName() string
	QualifiedName() string
	Doc() string
	IsEntryPoint() bool
	IsDeprecatedType() bool
	IsErrorType() bool
	IsClientType() bool
	IsModelType() bool
	TruncationPriority() int
	References() ReferenceSource
}

// IntrinsicPriority derives a type's truncation_priority from capability
// alone (spec.md §3, invariant 7): client first, then error, then
// everything else. No type is promoted to PriorityModelReachable; the
// formatter orders one-hop-reachable types through its own tiers instead.
func IntrinsicPriority(entryPoint, isError, hasBehavior bool) int {
	switch {
	case entryPoint && hasBehavior:
		return PriorityClient
	case isError:
		return PriorityError
	default:
		return PriorityOther
	}
}

// IsClientOf reports is_client_type (spec.md §3, invariant 6): an entry
// point with at least one behavior-bearing member.
func IsClientOf(entryPoint bool, behaviorMemberCount int) bool {
	return entryPoint && behaviorMemberCount > 0
}

// IsModelOf reports is_model_type (spec.md §3, invariant 6): has
// fields/properties but no public behavior-bearing methods beyond
// accessors.
func IsModelOf(fieldCount, behaviorMemberCount int) bool {
	return fieldCount > 0 && behaviorMemberCount == 0
}

// Index is the common shape of a language's top-level API index: a package
// identifier, its dependencies, and its diagnostics, plus every named type
// in the index flattened into stable (insertion) order. The per-language
// adapters returned by NewDotNetIndex, NewPythonIndex, ... implement this by
// walking their own namespace/module/package tree.
type Index interface {
	Language() string
	PackageName() string
	Version() string
	AllTypes() []NamedType
	Dependencies() []DependencyInfo
	Diagnostics() []Diagnostic
	// WithDiagnostics returns a new Index value with diags appended to the
	// existing diagnostics list; the receiver is left unmodified (spec.md
	// §3, invariant 2: observably immutable).
	WithDiagnostics(diags []Diagnostic) Index
}
