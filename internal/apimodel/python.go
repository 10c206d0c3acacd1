package apimodel

// PythonApiIndex is the root of a Python package's extracted API surface.
type PythonApiIndex struct {
	Package      string           `json:"package"`
	Version      string           `json:"version,omitempty"`
	Modules      []PyModuleInfo   `json:"modules"`
	Dependencies []DependencyInfo `json:"dependencies,omitempty"`
	Diagnostics  []Diagnostic     `json:"diagnostics,omitempty"`
}

// PyModuleInfo is one Python module's classes and top-level functions.
type PyModuleInfo struct {
	Name      string       `json:"name"`
	Classes   []PyClassInfo `json:"classes,omitempty"`
	Functions []PyFuncInfo  `json:"functions,omitempty"`
}

// PyClassInfo is a single Python class. IsErrorFlag is computed by the
// extractor from the transitive base chain (Exception/BaseException), never
// from the class's own name (spec.md §3 invariant 5).
type PyClassInfo struct {
	Name         string           `json:"name"`
	ID           string           `json:"id,omitempty"`
	Base         string           `json:"base,omitempty"`
	DocComment   string           `json:"doc,omitempty"`
	Methods      []PyMethodInfo   `json:"methods,omitempty"`
	Properties   []PyPropertyInfo `json:"properties,omitempty"`
	EntryPoint   bool             `json:"entryPoint,omitempty"`
	IsDeprecated bool             `json:"isDeprecated,omitempty"`
	IsErrorFlag  bool             `json:"isError,omitempty"`
}

// PyMethodInfo is a method defined on a Python class.
type PyMethodInfo struct {
	Name           string `json:"name"`
	Signature      string `json:"signature,omitempty"`
	Doc            string `json:"doc,omitempty"`
	IsAsync        bool   `json:"isAsync,omitempty"`
	IsClassMethod  bool   `json:"isClassmethod,omitempty"`
	IsStaticMethod bool   `json:"isStaticmethod,omitempty"`
	Ret            string `json:"ret,omitempty"`
}

// PyFuncInfo is a module-level function.
type PyFuncInfo struct {
	Name      string `json:"name"`
	Signature string `json:"signature,omitempty"`
	Ret       string `json:"ret,omitempty"`
	IsAsync   bool   `json:"isAsync,omitempty"`
}

// PyPropertyInfo is a `@property`-decorated accessor.
type PyPropertyInfo struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	Doc  string `json:"doc,omitempty"`
}

func (c PyClassInfo) TypeName() string       { return c.Name }
func (c PyClassInfo) QualifiedName() string  { return c.ID }
func (c PyClassInfo) Doc() string            { return c.DocComment }
func (c PyClassInfo) IsEntryPoint() bool     { return c.EntryPoint }
func (c PyClassInfo) IsDeprecatedType() bool { return c.IsDeprecated }
func (c PyClassInfo) IsErrorType() bool      { return c.IsErrorFlag }

func (c PyClassInfo) behaviorMemberCount() int {
	return len(c.Methods)
}

func (c PyClassInfo) IsClientType() bool {
	return IsClientOf(c.EntryPoint, c.behaviorMemberCount())
}

func (c PyClassInfo) IsModelType() bool {
	return IsModelOf(len(c.Properties), c.behaviorMemberCount())
}

func (c PyClassInfo) TruncationPriority() int {
	return IntrinsicPriority(c.EntryPoint, c.IsErrorFlag, c.behaviorMemberCount() > 0)
}

func (c PyClassInfo) References() ReferenceSource {
	rs := ReferenceSource{}
	if c.Base != "" {
		rs.BaseLike = append(rs.BaseLike, c.Base)
	}
	for _, m := range c.Methods {
		if m.Signature != "" {
			rs.Signatures = append(rs.Signatures, m.Signature)
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
	return rs
}

type pythonIndexAdapter struct {
	idx PythonApiIndex
}

// NewPythonIndex wraps raw as the common Index interface.
func NewPythonIndex(raw PythonApiIndex) Index { return pythonIndexAdapter{idx: raw} }

func (a pythonIndexAdapter) Language() string    { return "python" }
func (a pythonIndexAdapter) PackageName() string { return a.idx.Package }
func (a pythonIndexAdapter) Version() string     { return a.idx.Version }

func (a pythonIndexAdapter) AllTypes() []NamedType {
	var out []NamedType
	for _, m := range a.idx.Modules {
		for _, c := range m.Classes {
			out = append(out, c)
		}
	}
	return out
}

func (a pythonIndexAdapter) Dependencies() []DependencyInfo { return a.idx.Dependencies }
func (a pythonIndexAdapter) Diagnostics() []Diagnostic      { return a.idx.Diagnostics }

func (a pythonIndexAdapter) WithDiagnostics(diags []Diagnostic) Index {
	next := a.idx
	merged := make([]Diagnostic, 0, len(a.idx.Diagnostics)+len(diags))
	merged = append(merged, a.idx.Diagnostics...)
	merged = append(merged, diags...)
	next.Diagnostics = merged
	return pythonIndexAdapter{idx: next}
}

func (a pythonIndexAdapter) Raw() PythonApiIndex { return a.idx }
