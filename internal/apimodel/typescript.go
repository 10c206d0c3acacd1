package apimodel

// TypeScriptApiIndex is the root of a TypeScript package's extracted API
// surface.
type TypeScriptApiIndex struct {
	Package      string           `json:"package"`
	Version      string           `json:"version,omitempty"`
	Modules      []TSModuleInfo   `json:"modules"`
	Dependencies []DependencyInfo `json:"dependencies,omitempty"`
	Diagnostics  []Diagnostic     `json:"diagnostics,omitempty"`
}

// TSModuleInfo is one TypeScript module (file or export path).
type TSModuleInfo struct {
	Name       string            `json:"name"`
	Classes    []TSClassInfo     `json:"classes,omitempty"`
	Interfaces []TSInterfaceInfo `json:"interfaces,omitempty"`
	Enums      []TSEnumInfo      `json:"enums,omitempty"`
	Types      []TSTypeAliasInfo `json:"types,omitempty"`
	Functions  []TSFunctionInfo  `json:"functions,omitempty"`
}

// TSClassInfo is a single TypeScript class.
type TSClassInfo struct {
	Name         string              `json:"name"`
	ExportPath   string              `json:"exportPath,omitempty"`
	Extends      string              `json:"extends,omitempty"`
	Implements   []string            `json:"implements,omitempty"`
	Methods      []TSMethodInfo      `json:"methods,omitempty"`
	Properties   []TSPropertyInfo    `json:"properties,omitempty"`
	Constructors []TSConstructorInfo `json:"constructors,omitempty"`
	EntryPoint   bool                `json:"entryPoint,omitempty"`
	IsDeprecated bool                `json:"isDeprecated,omitempty"`
	IsErrorFlag  bool                `json:"isError,omitempty"`
	DocComment   string              `json:"doc,omitempty"`
}

// TSInterfaceInfo is a TypeScript interface. Its methods populate the API
// surface for any property typed as this interface (spec.md §4.12,
// "Interface subclients").
type TSInterfaceInfo struct {
	Name         string           `json:"name"`
	Extends      []string         `json:"extends,omitempty"`
	Methods      []TSMethodInfo   `json:"methods,omitempty"`
	Properties   []TSPropertyInfo `json:"properties,omitempty"`
	IsDeprecated bool             `json:"isDeprecated,omitempty"`
	DocComment   string           `json:"doc,omitempty"`
}

// TSEnumInfo is a TypeScript enum.
type TSEnumInfo struct {
	Name         string   `json:"name"`
	Values       []string `json:"values,omitempty"`
	IsDeprecated bool     `json:"isDeprecated,omitempty"`
	DocComment   string   `json:"doc,omitempty"`
}

// TSTypeAliasInfo is a `type X = ...` alias.
type TSTypeAliasInfo struct {
	Name         string `json:"name"`
	Sig          string `json:"sig,omitempty"`
	IsDeprecated bool   `json:"isDeprecated,omitempty"`
	DocComment   string `json:"doc,omitempty"`
}

// TSMethodInfo is a method on a class or interface.
type TSMethodInfo struct {
	Name string `json:"name"`
	Sig  string `json:"sig,omitempty"`
	Ret  string `json:"ret,omitempty"`
}

// TSFunctionInfo is a module-level function.
type TSFunctionInfo struct {
	Name string `json:"name"`
	Sig  string `json:"sig,omitempty"`
	Ret  string `json:"ret,omitempty"`
}

// TSPropertyInfo is a class or interface property.
type TSPropertyInfo struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Doc  string `json:"doc,omitempty"`
}

// TSConstructorInfo is a class constructor.
type TSConstructorInfo struct {
	Sig string `json:"sig,omitempty"`
}

func (c TSClassInfo) TypeName() string       { return c.Name }
func (c TSClassInfo) QualifiedName() string  { return c.ExportPath }
func (c TSClassInfo) Doc() string            { return c.DocComment }
func (c TSClassInfo) IsEntryPoint() bool     { return c.EntryPoint }
func (c TSClassInfo) IsDeprecatedType() bool { return c.IsDeprecated }
func (c TSClassInfo) IsErrorType() bool      { return c.IsErrorFlag }

func (c TSClassInfo) behaviorMemberCount() int {
	return len(c.Methods) + len(c.Constructors)
}

func (c TSClassInfo) IsClientType() bool {
	return IsClientOf(c.EntryPoint, c.behaviorMemberCount())
}

func (c TSClassInfo) IsModelType() bool {
	return IsModelOf(len(c.Properties), c.behaviorMemberCount())
}

func (c TSClassInfo) TruncationPriority() int {
	return IntrinsicPriority(c.EntryPoint, c.IsErrorFlag, c.behaviorMemberCount() > 0)
}

func (c TSClassInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	if c.Extends != "" {
		rs.BaseLike = append(rs.BaseLike, c.Extends)
	}
	rs.BaseLike = append(rs.BaseLike, c.Implements...)
	for _, m := range c.Methods {
		if m.Sig != "" {
			rs.Signatures = append(rs.Signatures, m.Sig)
		}
		if m.Ret != "" {
			rs.Signatures = append(rs.Signatures, m.Ret)
		}
	}
	for _, p := range c.Properties {
		if p.Type != "" {
			rs.Signatures = append(rs.Signatures, p.Type)
		}
	}
	for _, ctor := range c.Constructors {
		if ctor.Sig != "" {
			rs.Signatures = append(rs.Signatures, ctor.Sig)
		}
	}
	return rs
}

func (i TSInterfaceInfo) TypeName() string       { return i.Name }
func (i TSInterfaceInfo) QualifiedName() string  { return i.Name }
func (i TSInterfaceInfo) Doc() string            { return i.DocComment }
func (i TSInterfaceInfo) IsEntryPoint() bool     { return false }
func (i TSInterfaceInfo) IsDeprecatedType() bool { return i.IsDeprecated }
func (i TSInterfaceInfo) IsErrorType() bool      { return false }
func (i TSInterfaceInfo) IsClientType() bool     { return false }

func (i TSInterfaceInfo) IsModelType() bool {
	return IsModelOf(len(i.Properties), len(i.Methods))
}

func (i TSInterfaceInfo) TruncationPriority() int {
	return IntrinsicPriority(false, false, len(i.Methods) > 0)
}

func (i TSInterfaceInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	rs.BaseLike = append(rs.BaseLike, i.Extends...)
	for _, m := range i.Methods {
		if m.Sig != "" {
			rs.Signatures = append(rs.Signatures, m.Sig)
		}
		if m.Ret != "" {
			rs.Signatures = append(rs.Signatures, m.Ret)
		}
	}
	for _, p := range i.Properties {
		if p.Type != "" {
			rs.Signatures = append(rs.Signatures, p.Type)
		}
	}
	return rs
}

func (e TSEnumInfo) TypeName() string       { return e.Name }
func (e TSEnumInfo) QualifiedName() string  { return e.Name }
func (e TSEnumInfo) Doc() string            { return e.DocComment }
func (e TSEnumInfo) IsEntryPoint() bool     { return false }
func (e TSEnumInfo) IsDeprecatedType() bool { return e.IsDeprecated }
func (e TSEnumInfo) IsErrorType() bool      { return false }
func (e TSEnumInfo) IsClientType() bool     { return false }
func (e TSEnumInfo) IsModelType() bool      { return IsModelOf(len(e.Values), 0) }

func (e TSEnumInfo) TruncationPriority() int {
	return IntrinsicPriority(false, false, false)
}

func (e TSEnumInfo) References() ReferenceSource { return ReferenceSource{} }

func (t TSTypeAliasInfo) TypeName() string       { return t.Name }
func (t TSTypeAliasInfo) QualifiedName() string  { return t.Name }
func (t TSTypeAliasInfo) Doc() string            { return t.DocComment }
func (t TSTypeAliasInfo) IsEntryPoint() bool     { return false }
func (t TSTypeAliasInfo) IsDeprecatedType() bool { return t.IsDeprecated }
func (t TSTypeAliasInfo) IsErrorType() bool      { return false }
func (t TSTypeAliasInfo) IsClientType() bool     { return false }
func (t TSTypeAliasInfo) IsModelType() bool      { return false }

func (t TSTypeAliasInfo) TruncationPriority() int {
	return IntrinsicPriority(false, false, false)
}

func (t TSTypeAliasInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	if t.Sig != "" {
		rs.Signatures = append(rs.Signatures, t.Sig)
	}
	return rs
}

type typeScriptIndexAdapter struct {
	idx TypeScriptApiIndex
}

// NewTypeScriptIndex wraps raw as the common Index interface.
func NewTypeScriptIndex(raw TypeScriptApiIndex) Index { return typeScriptIndexAdapter{idx: raw} }

func (a typeScriptIndexAdapter) Language() string    { return "typescript" }
func (a typeScriptIndexAdapter) PackageName() string { return a.idx.Package }
func (a typeScriptIndexAdapter) Version() string     { return a.idx.Version }

func (a typeScriptIndexAdapter) AllTypes() []NamedType {
	var out []NamedType
	for _, m := range a.idx.Modules {
		for _, c := range m.Classes {
			out = append(out, c)
		}
		for _, i := range m.Interfaces {
			out = append(out, i)
		}
		for _, e := range m.Enums {
			out = append(out, e)
		}
		for _, t := range m.Types {
			out = append(out, t)
		}
	}
	return out
}

func (a typeScriptIndexAdapter) Dependencies() []DependencyInfo { return a.idx.Dependencies }
func (a typeScriptIndexAdapter) Diagnostics() []Diagnostic      { return a.idx.Diagnostics }

func (a typeScriptIndexAdapter) WithDiagnostics(diags []Diagnostic) Index {
	next := a.idx
	merged := make([]Diagnostic, 0, len(a.idx.Diagnostics)+len(diags))
	merged = append(merged, a.idx.Diagnostics...)
	merged = append(merged, diags...)
	next.Diagnostics = merged
	return typeScriptIndexAdapter{idx: next}
}

func (a typeScriptIndexAdapter) Raw() TypeScriptApiIndex { return a.idx }
