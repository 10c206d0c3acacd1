package apimodel

// GoApiIndex is the root of a Go package's extracted API surface.
type GoApiIndex struct {
	Package      string           `json:"package"`
	Version      string           `json:"version,omitempty"`
	Packages     []GoPackageInfo  `json:"packages"`
	Dependencies []DependencyInfo `json:"dependencies,omitempty"`
	Diagnostics  []Diagnostic     `json:"diagnostics,omitempty"`
}

// GoPackageInfo is a single Go package's exported surface.
type GoPackageInfo struct {
	Name       string           `json:"name"`
	Structs    []GoStructInfo   `json:"structs,omitempty"`
	Interfaces []GoIfaceInfo    `json:"interfaces,omitempty"`
	Types      []GoTypeAlias    `json:"types,omitempty"`
	Functions  []GoFuncInfo     `json:"functions,omitempty"`
	Constants  []GoConstInfo    `json:"constants,omitempty"`
	Variables  []GoVarInfo      `json:"variables,omitempty"`
}

// GoStructInfo is a single exported Go struct. IsErrorFlag is set by the
// extractor when the struct has an `Error() string` method with no
// parameters -- structural evidence, never the struct's own name.
type GoStructInfo struct {
	Name         string        `json:"name"`
	ID           string        `json:"id,omitempty"`
	Fields       []GoFieldInfo `json:"fields,omitempty"`
	Methods      []GoFuncInfo  `json:"methods,omitempty"`
	Embeds       []string      `json:"embeds,omitempty"`
	TypeParams   []string      `json:"typeParams,omitempty"`
	EntryPoint   bool          `json:"entryPoint,omitempty"`
	IsDeprecated bool          `json:"isDeprecated,omitempty"`
	IsErrorFlag  bool          `json:"isError,omitempty"`
	DocComment   string        `json:"doc,omitempty"`
}

// GoIfaceInfo is an exported Go interface.
type GoIfaceInfo struct {
	Name         string       `json:"name"`
	Methods      []GoFuncInfo `json:"methods,omitempty"`
	Embeds       []string     `json:"embeds,omitempty"`
	IsDeprecated bool         `json:"isDeprecated,omitempty"`
	DocComment   string       `json:"doc,omitempty"`
}

// GoTypeAlias is a `type X = Y` or `type X Y` declaration.
type GoTypeAlias struct {
	Name         string `json:"name"`
	Underlying   string `json:"underlying,omitempty"`
	IsDeprecated bool   `json:"isDeprecated,omitempty"`
	DocComment   string `json:"doc,omitempty"`
}

// GoFuncInfo is a free function or a method (Receiver non-empty).
type GoFuncInfo struct {
	Name       string   `json:"name"`
	Signature  string   `json:"sig,omitempty"`
	Ret        string    `json:"ret,omitempty"`
	Receiver   string   `json:"receiver,omitempty"`
	TypeParams []string `json:"typeParams,omitempty"`
	Params     []string `json:"params,omitempty"`
	IsMethod   bool     `json:"isMethod,omitempty"`
	DocComment string   `json:"doc,omitempty"`
}

// GoFieldInfo is an exported struct field.
type GoFieldInfo struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// GoConstInfo is an exported top-level constant.
type GoConstInfo struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// GoVarInfo is an exported top-level variable.
type GoVarInfo struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

func (s GoStructInfo) hasErrorMethod() bool {
	for _, m := range s.Methods {
		if m.Name == "Error" && len(m.Params) == 0 {
			return true
		}
	}
	return s.IsErrorFlag
}

func (s GoStructInfo) TypeName() string      { return s.Name }
func (s GoStructInfo) QualifiedName() string { return s.ID }
func (s GoStructInfo) Doc() string           { return s.DocComment }
func (s GoStructInfo) IsEntryPoint() bool    { return s.EntryPoint }
func (s GoStructInfo) IsDeprecatedType() bool { return s.IsDeprecated }

// IsErrorType is structural: an `Error() string` method with no args, or
// the extractor's own equivalent structural determination -- never the
// struct's name (spec.md §3 invariant 5).
func (s GoStructInfo) IsErrorType() bool { return s.hasErrorMethod() }

func (s GoStructInfo) behaviorMemberCount() int { return len(s.Methods) }

func (s GoStructInfo) IsClientType() bool {
	return IsClientOf(s.EntryPoint, s.behaviorMemberCount())
}

func (s GoStructInfo) IsModelType() bool {
	return IsModelOf(len(s.Fields), s.behaviorMemberCount())
}

func (s GoStructInfo) TruncationPriority() int {
	return IntrinsicPriority(s.EntryPoint, s.hasErrorMethod(), s.behaviorMemberCount() > 0)
}

func (s GoStructInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	rs.BaseLike = append(rs.BaseLike, s.Embeds...)
	for _, f := range s.Fields {
		if f.Type != "" {
			rs.Signatures = append(rs.Signatures, f.Type)
		}
	}
	for _, m := range s.Methods {
		if m.Signature != "" {
			rs.Signatures = append(rs.Signatures, m.Signature)
		}
		if m.Ret != "" {
			rs.Signatures = append(rs.Signatures, m.Ret)
		}
		rs.Signatures = append(rs.Signatures, m.Params...)
	}
	return rs
}

func (i GoIfaceInfo) hasErrorMethod() bool {
	for _, m := range i.Methods {
		if m.Name == "Error" && len(m.Params) == 0 {
			return true
		}
	}
	return false
}

func (i GoIfaceInfo) TypeName() string       { return i.Name }
func (i GoIfaceInfo) QualifiedName() string  { return i.Name }
func (i GoIfaceInfo) Doc() string            { return i.DocComment }
func (i GoIfaceInfo) IsEntryPoint() bool     { return false }
func (i GoIfaceInfo) IsDeprecatedType() bool { return i.IsDeprecated }

// IsErrorType is structural, same rule as GoStructInfo: an `Error() string`
// method with no args (spec.md §3 invariant 5).
func (i GoIfaceInfo) IsErrorType() bool { return i.hasErrorMethod() }

func (i GoIfaceInfo) IsClientType() bool { return false }

func (i GoIfaceInfo) IsModelType() bool { return false }

func (i GoIfaceInfo) TruncationPriority() int {
	return IntrinsicPriority(false, i.hasErrorMethod(), len(i.Methods) > 0)
}

func (i GoIfaceInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	rs.BaseLike = append(rs.BaseLike, i.Embeds...)
	for _, m := range i.Methods {
		if m.Signature != "" {
			rs.Signatures = append(rs.Signatures, m.Signature)
		}
		if m.Ret != "" {
			rs.Signatures = append(rs.Signatures, m.Ret)
		}
		rs.Signatures = append(rs.Signatures, m.Params...)
	}
	return rs
}

func (a GoTypeAlias) TypeName() string       { return a.Name }
func (a GoTypeAlias) QualifiedName() string  { return a.Name }
func (a GoTypeAlias) Doc() string            { return a.DocComment }
func (a GoTypeAlias) IsEntryPoint() bool     { return false }
func (a GoTypeAlias) IsDeprecatedType() bool { return a.IsDeprecated }
func (a GoTypeAlias) IsErrorType() bool      { return false }
func (a GoTypeAlias) IsClientType() bool     { return false }
func (a GoTypeAlias) IsModelType() bool      { return false }

func (a GoTypeAlias) TruncationPriority() int {
	return IntrinsicPriority(false, false, false)
}

func (a GoTypeAlias) References() ReferenceSource {
	rs := ReferenceSource{}
	if a.Underlying != "" {
		rs.Signatures = append(rs.Signatures, a.Underlying)
	}
	return rs
}

// goIndexAdapter implements Index over a GoApiIndex.
type goIndexAdapter struct {
	idx GoApiIndex
}

// NewGoIndex wraps raw as the common Index interface.
func NewGoIndex(raw GoApiIndex) Index { return goIndexAdapter{idx: raw} }

func (a goIndexAdapter) Language() string    { return "go" }
func (a goIndexAdapter) PackageName() string { return a.idx.Package }
func (a goIndexAdapter) Version() string     { return a.idx.Version }

func (a goIndexAdapter) AllTypes() []NamedType {
	var out []NamedType
	for _, p := range a.idx.Packages {
		for _, s := range p.Structs {
			out = append(out, s)
		}
		for _, i := range p.Interfaces {
			out = append(out, i)
		}
		for _, t := range p.Types {
			out = append(out, t)
		}
	}
	return out
}

func (a goIndexAdapter) Dependencies() []DependencyInfo { return a.idx.Dependencies }
func (a goIndexAdapter) Diagnostics() []Diagnostic      { return a.idx.Diagnostics }

func (a goIndexAdapter) WithDiagnostics(diags []Diagnostic) Index {
	next := a.idx
	merged := make([]Diagnostic, 0, len(a.idx.Diagnostics)+len(diags))
	merged = append(merged, a.idx.Diagnostics...)
	merged = append(merged, diags...)
	next.Diagnostics = merged
	return goIndexAdapter{idx: next}
}

// Raw returns the underlying GoApiIndex for language-specific rendering
// (receiver grouping, type params, const/var blocks).
func (a goIndexAdapter) Raw() GoApiIndex { return a.idx }
