package format

import (
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
)

// normalizeExportPath strips a leading "./" before concatenation with the
// package name; "." alone collapses to the empty prefix.
func normalizeExportPath(p string) string {
	if p == "." {
		return ""
	}
	return strings.TrimPrefix(p, "./")
}

func renderTypeScriptType(idx apimodel.Index, nt apimodel.NamedType) string {
	switch t := nt.(type) {
	case apimodel.TSClassInfo:
		return renderTSClass(idx, t)
	case apimodel.TSInterfaceInfo:
		return renderTSInterface(t)
	case apimodel.TSEnumInfo:
		return renderTSEnum(t)
	case apimodel.TSTypeAliasInfo:
		return renderTSTypeAlias(t)
	default:
		return nt.TypeName() + "\n"
	}
}

func renderTSClass(idx apimodel.Index, c apimodel.TSClassInfo) string {
	var b strings.Builder
	if raw, ok := idx.(interface{ Raw() apimodel.TypeScriptApiIndex }); ok {
		full := raw.Raw()
		exportPath := normalizeExportPath(c.ExportPath)
		if exportPath != "" {
			b.WriteString("// ")
			b.WriteString(full.Package)
			if exportPath != "" {
				b.WriteString("/")
				b.WriteString(exportPath)
			}
			b.WriteString("\n")
		}
	}

	header := "export class " + c.Name
	if c.Extends != "" {
		header += " extends " + c.Extends
	}
	if len(c.Implements) > 0 {
		header += " implements " + strings.Join(c.Implements, ", ")
	}
	b.WriteString(header)
	b.WriteString(" {\n")

	for _, p := range c.Properties {
		b.WriteString("  ")
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteString(": ")
			b.WriteString(p.Type)
		}
		b.WriteString(";\n")
	}
	for _, ctor := range c.Constructors {
		b.WriteString("  constructor")
		b.WriteString(ctor.Sig)
		b.WriteString(";\n")
	}
	for _, m := range c.Methods {
		b.WriteString("  ")
		b.WriteString(m.Name)
		b.WriteString(m.Sig)
		if m.Ret != "" {
			b.WriteString(": ")
			b.WriteString(m.Ret)
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func renderTSInterface(i apimodel.TSInterfaceInfo) string {
	var b strings.Builder
	if i.DocComment != "" {
		for _, line := range strings.Split(strings.TrimRight(i.DocComment, "\n"), "\n") {
			b.WriteString("// ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	header := "export interface " + i.Name
	if len(i.Extends) > 0 {
		header += " extends " + strings.Join(i.Extends, ", ")
	}
	b.WriteString(header)
	b.WriteString(" {\n")

	for _, p := range i.Properties {
		b.WriteString("  ")
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteString(": ")
			b.WriteString(p.Type)
		}
		b.WriteString(";\n")
	}
	for _, m := range i.Methods {
		b.WriteString("  ")
		b.WriteString(m.Name)
		b.WriteString(m.Sig)
		if m.Ret != "" {
			b.WriteString(": ")
			b.WriteString(m.Ret)
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func renderTSEnum(e apimodel.TSEnumInfo) string {
	var b strings.Builder
	if e.DocComment != "" {
		for _, line := range strings.Split(strings.TrimRight(e.DocComment, "\n"), "\n") {
			b.WriteString("// ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("export enum ")
	b.WriteString(e.Name)
	b.WriteString(" {\n")
	for _, v := range e.Values {
		b.WriteString("  ")
		b.WriteString(v)
		b.WriteString(",\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func renderTSTypeAlias(t apimodel.TSTypeAliasInfo) string {
	var b strings.Builder
	if t.DocComment != "" {
		for _, line := range strings.Split(strings.TrimRight(t.DocComment, "\n"), "\n") {
			b.WriteString("// ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("export type ")
	b.WriteString(t.Name)
	b.WriteString(" = ")
	b.WriteString(t.Sig)
	b.WriteString(";\n")
	return b.String()
}
