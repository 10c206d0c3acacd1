package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/oxhq/apiindex/internal/apierr"
	"github.com/oxhq/apiindex/internal/apimodel"
)

var dotNetExcludedDirs = map[string]struct{}{
	"bin": {}, "obj": {}, ".git": {}, "node_modules": {},
}

// ExtractDotNet parses every .cs file under sourcePath in-process with
// go-tree-sitter -- the one language whose source parser never leaves the
// host process (spec.md §4.8). There is no external analyzer and no
// sandbox tier here: a malformed file only produces a warning, never a
// failed Result, since the rest of the tree can still be indexed.
func ExtractDotNet(ctx context.Context, sourcePath string) Result[apimodel.DotNetApiIndex] {
	files, err := collectCSharpFiles(sourcePath)
	if err != nil {
		return Result[apimodel.DotNetApiIndex]{Err: apierr.Wrap(apierr.KindSourceError, "walking source tree", err)}
	}

	byNamespace := make(map[string][]apimodel.TypeInfo)
	var order []string
	var warnings []string

	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, "reading "+path+": "+err.Error())
			continue
		}
		tree, err := parser.ParseCtx(ctx, nil, src)
		if err != nil || tree == nil {
			warnings = append(warnings, "parsing "+path+": "+errText(err))
			continue
		}
		walkCompilationUnit(tree.RootNode(), src, "", byNamespace, &order)
	}

	idx := apimodel.DotNetApiIndex{Package: filepath.Base(sourcePath)}
	for _, ns := range order {
		idx.Namespaces = append(idx.Namespaces, apimodel.NamespaceInfo{Name: ns, Types: byNamespace[ns]})
	}

	return Result[apimodel.DotNetApiIndex]{Raw: idx, Index: apimodel.NewDotNetIndex(idx), Warnings: warnings}
}

func errText(err error) string {
	if err == nil {
		return "empty tree"
	}
	return err.Error()
}

func collectCSharpFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root {
				if _, excluded := dotNetExcludedDirs[d.Name()]; excluded {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.HasSuffix(path, ".cs") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

const (
	typeDeclKinds = "class_declaration interface_declaration struct_declaration record_declaration enum_declaration delegate_declaration"
)

func isTypeDeclaration(nodeType string) bool {
	return strings.Contains(typeDeclKinds, nodeType)
}

func walkCompilationUnit(n *sitter.Node, src []byte, namespace string, byNamespace map[string][]apimodel.TypeInfo, order *[]string) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "namespace_declaration", "file_scoped_namespace_declaration":
			full := namespaceName(child, src)
			if namespace != "" && full != "" {
				full = namespace + "." + full
			}
			walkCompilationUnit(child, src, full, byNamespace, order)
		default:
			if isTypeDeclaration(child.Type()) {
				t := buildType(child, src)
				ns := namespace
				if ns == "" {
					ns = "<global>"
				}
				if _, seen := byNamespace[ns]; !seen {
					*order = append(*order, ns)
				}
				byNamespace[ns] = append(byNamespace[ns], t)
			}
		}
	}
}

func namespaceName(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "qualified_name" || c.Type() == "identifier" {
			return c.Content(src)
		}
	}
	return ""
}

func buildType(n *sitter.Node, src []byte) apimodel.TypeInfo {
	kind := dotNetKindFor(n.Type())
	name := typeNameNode(n, src)
	base, ifaces := baseList(n, kind, src)
	members, values := membersOf(n, kind, src)

	return apimodel.TypeInfo{
		Name:        name,
		QualifiedID: name,
		Kind:        kind,
		Base:        base,
		Interfaces:  ifaces,
		Members:     members,
		Values:      values,
		EntryPoint:  looksLikeEntryPoint(kind, members),
		IsDeprecated: hasObsoleteAttribute(n, src),
		IsErrorFlag: looksLikeErrorType(base),
		DocComment:  leadingDocComment(n, src),
	}
}

func dotNetKindFor(nodeType string) apimodel.DotNetTypeKind {
	switch nodeType {
	case "interface_declaration":
		return apimodel.DotNetInterface
	case "struct_declaration":
		return apimodel.DotNetStruct
	case "record_declaration":
		return apimodel.DotNetRecord
	case "enum_declaration":
		return apimodel.DotNetEnum
	case "delegate_declaration":
		return apimodel.DotNetDelegate
	default:
		return apimodel.DotNetClass
	}
}

func typeNameNode(n *sitter.Node, src []byte) string {
	if n.Type() == "delegate_declaration" {
		var last string
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c.Type() == "parameter_list" {
				break
			}
			if c.Type() == "identifier" {
				last = c.Content(src)
			}
		}
		return last
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "identifier" {
			return c.Content(src)
		}
	}
	return ""
}

// baseList splits a type's `: A, B, C` clause into a base class and an
// interfaces list. C# puts the base class first when present; since the
// grammar does not resolve symbols, an entry is treated as the base class
// only when it does not follow the "I" + uppercase interface convention.
func baseList(n *sitter.Node, kind apimodel.DotNetTypeKind, src []byte) (string, []string) {
	var entries []string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "base_list" {
			continue
		}
		for j := 0; j < int(c.ChildCount()); j++ {
			e := c.Child(j)
			switch e.Type() {
			case "identifier", "qualified_name", "generic_name":
				entries = append(entries, e.Content(src))
			}
		}
	}
	if len(entries) == 0 {
		return "", nil
	}
	if kind == apimodel.DotNetInterface || looksLikeInterfaceName(entries[0]) {
		return "", entries
	}
	return entries[0], entries[1:]
}

func looksLikeInterfaceName(name string) bool {
	return len(name) >= 2 && name[0] == 'I' && name[1] >= 'A' && name[1] <= 'Z'
}

func membersOf(n *sitter.Node, kind apimodel.DotNetTypeKind, src []byte) ([]apimodel.MemberInfo, []string) {
	var members []apimodel.MemberInfo
	var values []string

	if kind == apimodel.DotNetRecord {
		members = append(members, primaryConstructorMembers(n, src)...)
	}

	var body *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "declaration_list" || c.Type() == "enum_member_declaration_list" {
			body = c
			break
		}
	}
	if body == nil {
		return members, values
	}

	for i := 0; i < int(body.ChildCount()); i++ {
		m := body.Child(i)
		switch m.Type() {
		case "method_declaration":
			members = append(members, buildMethodMember(m, src))
		case "constructor_declaration":
			members = append(members, buildSimpleMember(m, src, "ctor"))
		case "property_declaration":
			members = append(members, buildSimpleMember(m, src, "property"))
		case "field_declaration":
			members = append(members, buildFieldMembers(m, src)...)
		case "event_declaration", "event_field_declaration":
			members = append(members, buildSimpleMember(m, src, "event"))
		case "operator_declaration", "conversion_operator_declaration":
			members = append(members, buildOperatorMember(m, src))
		case "enum_member_declaration":
			if name := identifierChild(m, src); name != "" {
				values = append(values, name)
			}
		}
	}
	return members, values
}

func primaryConstructorMembers(n *sitter.Node, src []byte) []apimodel.MemberInfo {
	var out []apimodel.MemberInfo
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() != "parameter_list" {
			continue
		}
		for j := 0; j < int(c.ChildCount()); j++ {
			p := c.Child(j)
			if p.Type() != "parameter" {
				continue
			}
			name := identifierChild(p, src)
			if name == "" {
				continue
			}
			out = append(out, apimodel.MemberInfo{Name: name, Kind: "property", Signature: p.Content(src)})
		}
	}
	return out
}

func identifierChild(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "identifier" {
			return c.Content(src)
		}
	}
	return ""
}

func hasModifier(n *sitter.Node, src []byte, word string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "modifier" && c.Content(src) == word {
			return true
		}
	}
	return false
}

// headerSignature returns the member's declaration text up to (but not
// including) its body, so a method's block or a property's accessor list
// never ends up inside the rendered/tokenized signature.
func headerSignature(n *sitter.Node, src []byte) string {
	end := n.EndByte()
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "block", "arrow_expression_clause", "accessor_list":
			end = c.StartByte()
		}
		if end != n.EndByte() {
			break
		}
	}
	text := strings.TrimSpace(string(src[n.StartByte():end]))
	return strings.TrimSpace(strings.TrimSuffix(text, ";"))
}

func buildMethodMember(n *sitter.Node, src []byte) apimodel.MemberInfo {
	return apimodel.MemberInfo{
		Name:      identifierChild(n, src),
		Kind:      "method",
		Signature: headerSignature(n, src),
		IsStatic:  hasModifier(n, src, "static"),
		IsAsync:   hasModifier(n, src, "async"),
		Doc:       leadingDocComment(n, src),
	}
}

func buildSimpleMember(n *sitter.Node, src []byte, kind string) apimodel.MemberInfo {
	return apimodel.MemberInfo{
		Name:      identifierChild(n, src),
		Kind:      kind,
		Signature: headerSignature(n, src),
		IsStatic:  hasModifier(n, src, "static"),
		Doc:       leadingDocComment(n, src),
	}
}

func buildOperatorMember(n *sitter.Node, src []byte) apimodel.MemberInfo {
	return apimodel.MemberInfo{
		Name:      "operator",
		Kind:      "operator",
		Signature: headerSignature(n, src),
		IsStatic:  true,
		Doc:       leadingDocComment(n, src),
	}
}

func buildFieldMembers(n *sitter.Node, src []byte) []apimodel.MemberInfo {
	var out []apimodel.MemberInfo
	isStatic := hasModifier(n, src, "static")
	doc := leadingDocComment(n, src)
	sig := headerSignature(n, src)

	var decl *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == "variable_declaration" {
			decl = c
			break
		}
	}
	if decl == nil {
		return out
	}
	for i := 0; i < int(decl.ChildCount()); i++ {
		c := decl.Child(i)
		if c.Type() != "variable_declarator" {
			continue
		}
		name := identifierChild(c, src)
		if name == "" {
			continue
		}
		out = append(out, apimodel.MemberInfo{Name: name, Kind: "field", Signature: sig, IsStatic: isStatic, Doc: doc})
	}
	return out
}

// leadingDocComment collects contiguous `///` comment siblings immediately
// preceding n, in source order.
func leadingDocComment(n *sitter.Node, src []byte) string {
	var lines []string
	for sib := n.PrevSibling(); sib != nil && sib.Type() == "comment"; sib = sib.PrevSibling() {
		text := strings.TrimSpace(sib.Content(src))
		if !strings.HasPrefix(text, "///") {
			break
		}
		lines = append([]string{strings.TrimSpace(strings.TrimPrefix(text, "///"))}, lines...)
	}
	return strings.Join(lines, "\n")
}

func hasObsoleteAttribute(n *sitter.Node, src []byte) bool {
	for sib := n.PrevSibling(); sib != nil; sib = sib.PrevSibling() {
		if sib.Type() != "attribute_list" {
			break
		}
		if strings.Contains(sib.Content(src), "Obsolete") {
			return true
		}
	}
	return false
}

// looksLikeEntryPoint approximates spec.md's "curated root" flag when no
// external curation signal exists: a class with both a constructor and a
// method is a plausible client entry point, the same shape the in-process
// parser can see unaided. Member visibility is not checked.
func looksLikeEntryPoint(kind apimodel.DotNetTypeKind, members []apimodel.MemberInfo) bool {
	if kind != apimodel.DotNetClass {
		return false
	}
	hasCtor, hasMethod := false, false
	for _, m := range members {
		switch m.Kind {
		case "ctor":
			hasCtor = true
		case "method":
			hasMethod = true
		}
	}
	return hasCtor && hasMethod
}

func looksLikeErrorType(base string) bool {
	return strings.HasSuffix(base, "Exception")
}
