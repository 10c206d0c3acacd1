package apimodel

// JavaApiIndex is the root of a Java package's extracted API surface.
type JavaApiIndex struct {
	Package      string           `json:"package"`
	Version      string           `json:"version,omitempty"`
	Packages     []JavaPackageInfo `json:"packages"`
	Dependencies []DependencyInfo `json:"dependencies,omitempty"`
	Diagnostics  []Diagnostic     `json:"diagnostics,omitempty"`
}

// JavaPackageInfo groups types under one Java package.
type JavaPackageInfo struct {
	Name        string          `json:"name"`
	Classes     []JavaClassInfo `json:"classes,omitempty"`
	Interfaces  []JavaClassInfo `json:"interfaces,omitempty"`
	Enums       []JavaEnumInfo  `json:"enums,omitempty"`
	Annotations []JavaClassInfo `json:"annotations,omitempty"`
}

// JavaKind is the closed set of kinds a JavaClassInfo may represent.
type JavaKind string

const (
	JavaClass      JavaKind = "class"
	JavaInterface  JavaKind = "interface"
	JavaRecord     JavaKind = "record"
	JavaAnnotation JavaKind = "annotation"
)

// JavaClassInfo is a class, interface, record, or annotation type.
// IsErrorFlag is set by the extractor from the transitive extends chain
// (Throwable/Exception/Error), never from the type's own name.
type JavaClassInfo struct {
	Name         string           `json:"name"`
	ID           string           `json:"id,omitempty"`
	Kind         JavaKind         `json:"kind"`
	Extends      string           `json:"extends,omitempty"`
	Implements   []string         `json:"implements,omitempty"`
	Methods      []JavaMethodInfo `json:"methods,omitempty"`
	Fields       []JavaFieldInfo  `json:"fields,omitempty"`
	Constructors []JavaMethodInfo `json:"constructors,omitempty"`
	EntryPoint   bool             `json:"entryPoint,omitempty"`
	IsDeprecated bool             `json:"isDeprecated,omitempty"`
	IsErrorFlag  bool             `json:"isError,omitempty"`
	DocComment   string           `json:"doc,omitempty"`
}

// JavaMethodInfo is a method or constructor, with its declared modifiers
// (public, static, abstract, default, ...).
type JavaMethodInfo struct {
	Name      string   `json:"name"`
	Signature string   `json:"sig,omitempty"`
	Ret       string   `json:"ret,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// JavaFieldInfo is a field on a class or record component.
type JavaFieldInfo struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// JavaEnumInfo is a Java enum and its constants.
type JavaEnumInfo struct {
	Name         string   `json:"name"`
	Values       []string `json:"values,omitempty"`
	Implements   []string `json:"implements,omitempty"`
	IsDeprecated bool     `json:"isDeprecated,omitempty"`
	DocComment   string   `json:"doc,omitempty"`
}

func (c JavaClassInfo) TypeName() string       { return c.Name }
func (c JavaClassInfo) QualifiedName() string  { return c.ID }
func (c JavaClassInfo) Doc() string            { return c.DocComment }
func (c JavaClassInfo) IsEntryPoint() bool     { return c.EntryPoint }
func (c JavaClassInfo) IsDeprecatedType() bool { return c.IsDeprecated }
func (c JavaClassInfo) IsErrorType() bool      { return c.IsErrorFlag }

func (c JavaClassInfo) behaviorMemberCount() int {
	return len(c.Methods) + len(c.Constructors)
}

func (c JavaClassInfo) IsClientType() bool {
	return IsClientOf(c.EntryPoint, c.behaviorMemberCount())
}

func (c JavaClassInfo) IsModelType() bool {
	return IsModelOf(len(c.Fields), c.behaviorMemberCount())
}

func (c JavaClassInfo) TruncationPriority() int {
	return IntrinsicPriority(c.EntryPoint, c.IsErrorFlag, c.behaviorMemberCount() > 0)
}

func (c JavaClassInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	if c.Extends != "" {
		rs.BaseLike = append(rs.BaseLike, c.Extends)
	}
	rs.BaseLike = append(rs.BaseLike, c.Implements...)
	for _, m := range c.Methods {
		if m.Signature != "" {
			rs.Signatures = append(rs.Signatures, m.Signature)
		}
		if m.Ret != "" {
			rs.Signatures = append(rs.Signatures, m.Ret)
		}
	}
	for _, f := range c.Fields {
		if f.Type != "" {
			rs.Signatures = append(rs.Signatures, f.Type)
		}
	}
	for _, ctor := range c.Constructors {
		if ctor.Signature != "" {
			rs.Signatures = append(rs.Signatures, ctor.Signature)
		}
	}
	return rs
}

func (e JavaEnumInfo) TypeName() string       { return e.Name }
func (e JavaEnumInfo) QualifiedName() string  { return e.Name }
func (e JavaEnumInfo) Doc() string            { return e.DocComment }
func (e JavaEnumInfo) IsEntryPoint() bool     { return false }
func (e JavaEnumInfo) IsDeprecatedType() bool { return e.IsDeprecated }
func (e JavaEnumInfo) IsErrorType() bool      { return false }
func (e JavaEnumInfo) IsClientType() bool     { return false }
func (e JavaEnumInfo) IsModelType() bool      { return IsModelOf(len(e.Values), 0) }

func (e JavaEnumInfo) TruncationPriority() int {
	return IntrinsicPriority(false, false, false)
}

func (e JavaEnumInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	rs.BaseLike = append(rs.BaseLike, e.Implements...)
	return rs
}

// javaIndexAdapter implements Index over a JavaApiIndex.
type javaIndexAdapter struct {
	idx JavaApiIndex
}

// NewJavaIndex wraps raw as the common Index interface.
func NewJavaIndex(raw JavaApiIndex) Index { return javaIndexAdapter{idx: raw} }

func (a javaIndexAdapter) Language() string    { return "java" }
func (a javaIndexAdapter) PackageName() string { return a.idx.Package }
func (a javaIndexAdapter) Version() string     { return a.idx.Version }

func (a javaIndexAdapter) AllTypes() []NamedType {
	var out []NamedType
	for _, p := range a.idx.Packages {
		for _, c := range p.Classes {
			out = append(out, c)
		}
		for _, c := range p.Interfaces {
			out = append(out, c)
		}
		for _, c := range p.Annotations {
			out = append(out, c)
		}
		for _, e := range p.Enums {
			out = append(out, e)
		}
	}
	return out
}

func (a javaIndexAdapter) Dependencies() []DependencyInfo { return a.idx.Dependencies }
func (a javaIndexAdapter) Diagnostics() []Diagnostic      { return a.idx.Diagnostics }

func (a javaIndexAdapter) WithDiagnostics(diags []Diagnostic) Index {
	next := a.idx
	merged := make([]Diagnostic, 0, len(a.idx.Diagnostics)+len(diags))
	merged = append(merged, a.idx.Diagnostics...)
	merged = append(merged, diags...)
	next.Diagnostics = merged
	return javaIndexAdapter{idx: next}
}

// Raw returns the underlying JavaApiIndex for language-specific rendering
// (kind-correct keywords, enum constant lists).
func (a javaIndexAdapter) Raw() JavaApiIndex { return a.idx }
