package apimodel

// DotNetApiIndex is the root of a C# package's extracted API surface
// (spec.md §4.6).
type DotNetApiIndex struct {
	Package      string           `json:"package"`
	Version      string           `json:"version,omitempty"`
	Namespaces   []NamespaceInfo  `json:"namespaces"`
	Dependencies []DependencyInfo `json:"dependencies,omitempty"`
	Diagnostics  []Diagnostic     `json:"diagnostics,omitempty"`
}

// NamespaceInfo groups types under one C# namespace, in extraction order.
type NamespaceInfo struct {
	Name  string     `json:"name"`
	Types []TypeInfo `json:"types"`
}

// DotNetTypeKind is the closed set of kinds a DotNet TypeInfo may have.
type DotNetTypeKind string

const (
	DotNetClass     DotNetTypeKind = "class"
	DotNetInterface DotNetTypeKind = "interface"
	DotNetStruct    DotNetTypeKind = "struct"
	DotNetRecord    DotNetTypeKind = "record"
	DotNetEnum      DotNetTypeKind = "enum"
	DotNetDelegate  DotNetTypeKind = "delegate"
)

// TypeInfo is a single C# type: class, interface, struct, record, enum, or
// delegate.
type TypeInfo struct {
	Name           string         `json:"name"`
	QualifiedID    string         `json:"qualifiedId,omitempty"`
	Kind           DotNetTypeKind `json:"kind"`
	Base           string         `json:"base,omitempty"`
	Interfaces     []string       `json:"interfaces,omitempty"`
	Members        []MemberInfo   `json:"members,omitempty"`
	Values         []string       `json:"values,omitempty"`
	EntryPoint     bool           `json:"entryPoint,omitempty"`
	IsDeprecated   bool           `json:"isDeprecated,omitempty"`
	IsErrorFlag    bool           `json:"isError,omitempty"`
	DocComment     string         `json:"doc,omitempty"`
}

// MemberInfo is a method, property, field, constructor, event, operator, or
// const on a DotNet type.
type MemberInfo struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"` // method|property|field|ctor|event|operator|const
	Signature string `json:"signature,omitempty"`
	IsStatic  bool   `json:"isStatic,omitempty"`
	IsAsync   bool   `json:"isAsync,omitempty"`
	Doc       string `json:"doc,omitempty"`
}

func (m MemberInfo) isBehaviorBearing() bool {
	switch m.Kind {
	case "method", "ctor", "operator":
		return true
	default:
		return false
	}
}

func (t TypeInfo) TypeName() string      { return t.Name }
func (t TypeInfo) QualifiedName() string { return t.QualifiedID }
func (t TypeInfo) Doc() string           { return t.DocComment }
func (t TypeInfo) IsEntryPoint() bool    { return t.EntryPoint }
func (t TypeInfo) IsDeprecatedType() bool { return t.IsDeprecated }

// IsErrorType holds per spec.md §3 invariant 5: structural evidence only
// (the type's Base entry; the in-process extractor sets it when the base
// name ends in "Exception") -- never derived from the type's own name.
func (t TypeInfo) IsErrorType() bool { return t.IsErrorFlag }

func (t TypeInfo) behaviorMemberCount() int {
	n := 0
	for _, m := range t.Members {
		if m.isBehaviorBearing() {
			n++
		}
	}
	return n
}

func (t TypeInfo) fieldCount() int {
	n := 0
	for _, m := range t.Members {
		if m.Kind == "property" || m.Kind == "field" {
			n++
		}
	}
	return n
}

func (t TypeInfo) IsClientType() bool { return IsClientOf(t.EntryPoint, t.behaviorMemberCount()) }
func (t TypeInfo) IsModelType() bool  { return IsModelOf(t.fieldCount(), t.behaviorMemberCount()) }

func (t TypeInfo) TruncationPriority() int {
	return IntrinsicPriority(t.EntryPoint, t.IsErrorFlag, t.behaviorMemberCount() > 0)
}

func (t TypeInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	if t.Base != "" {
		rs.BaseLike = append(rs.BaseLike, t.Base)
	}
	rs.BaseLike = append(rs.BaseLike, t.Interfaces...)
	for _, m := range t.Members {
		if m.Signature != "" {
			rs.Signatures = append(rs.Signatures, m.Signature)
		}
	}
	return rs
}

// dotNetIndexAdapter implements Index over a DotNetApiIndex.
type dotNetIndexAdapter struct {
	idx DotNetApiIndex
}

// NewDotNetIndex wraps raw as the common Index interface.
func NewDotNetIndex(raw DotNetApiIndex) Index { return dotNetIndexAdapter{idx: raw} }

func (a dotNetIndexAdapter) Language() string    { return "dotnet" }
func (a dotNetIndexAdapter) PackageName() string { return a.idx.Package }
func (a dotNetIndexAdapter) Version() string     { return a.idx.Version }

func (a dotNetIndexAdapter) AllTypes() []NamedType {
	var out []NamedType
	for _, ns := range a.idx.Namespaces {
		for _, t := range ns.Types {
			out = append(out, t)
		}
	}
	return out
}

func (a dotNetIndexAdapter) Dependencies() []DependencyInfo { return a.idx.Dependencies }
func (a dotNetIndexAdapter) Diagnostics() []Diagnostic      { return a.idx.Diagnostics }

func (a dotNetIndexAdapter) WithDiagnostics(diags []Diagnostic) Index {
	next := a.idx
	merged := make([]Diagnostic, 0, len(a.idx.Diagnostics)+len(diags))
	merged = append(merged, a.idx.Diagnostics...)
	merged = append(merged, diags...)
	next.Diagnostics = merged
	return dotNetIndexAdapter{idx: next}
}

// Raw returns the underlying DotNetApiIndex for language-specific rendering.
func (a dotNetIndexAdapter) Raw() DotNetApiIndex { return a.idx }
