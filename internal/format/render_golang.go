package format

import (
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
)

func renderGoType(nt apimodel.NamedType) string {
	switch t := nt.(type) {
	case apimodel.GoStructInfo:
		return renderGoStruct(t)
	case apimodel.GoIfaceInfo:
		return renderGoIface(t)
	case apimodel.GoTypeAlias:
		return renderGoTypeAlias(t)
	default:
		return nt.TypeName() + "\n"
	}
}

func renderGoStruct(s apimodel.GoStructInfo) string {
	var b strings.Builder
	if s.DocComment != "" {
		for _, line := range strings.Split(strings.TrimRight(s.DocComment, "\n"), "\n") {
			b.WriteString("// ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("type ")
	b.WriteString(s.Name)
	b.WriteString(typeParamsSuffix(s.TypeParams))
	b.WriteString(" struct {\n")
	for _, embed := range s.Embeds {
		b.WriteString("\t")
		b.WriteString(embed)
		b.WriteString("\n")
	}
	for _, f := range s.Fields {
		b.WriteString("\t")
		b.WriteString(f.Name)
		b.WriteString(" ")
		b.WriteString(f.Type)
		if f.Tag != "" {
			b.WriteString(" `")
			b.WriteString(f.Tag)
			b.WriteString("`")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	for _, m := range s.Methods {
		b.WriteString(renderGoFunc(m, s.Name))
	}

	return b.String()
}

func renderGoIface(i apimodel.GoIfaceInfo) string {
	var b strings.Builder
	if i.DocComment != "" {
		for _, line := range strings.Split(strings.TrimRight(i.DocComment, "\n"), "\n") {
			b.WriteString("// ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("type ")
	b.WriteString(i.Name)
	b.WriteString(" interface {\n")
	for _, embed := range i.Embeds {
		b.WriteString("\t")
		b.WriteString(embed)
		b.WriteString("\n")
	}
	for _, m := range i.Methods {
		b.WriteString("\t")
		b.WriteString(m.Name)
		b.WriteString("(")
		b.WriteString(strings.Join(m.Params, ", "))
		b.WriteString(")")
		if m.Ret != "" {
			b.WriteString(" ")
			b.WriteString(m.Ret)
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func renderGoTypeAlias(a apimodel.GoTypeAlias) string {
	var b strings.Builder
	if a.DocComment != "" {
		for _, line := range strings.Split(strings.TrimRight(a.DocComment, "\n"), "\n") {
			b.WriteString("// ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("type ")
	b.WriteString(a.Name)
	b.WriteString(" ")
	b.WriteString(a.Underlying)
	b.WriteString("\n")
	return b.String()
}

func typeParamsSuffix(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "[" + strings.Join(params, ", ") + "]"
}

// renderGoFunc renders a func/method per spec.md §4.11: constructors
// (empty receiver) as `func Name(...) Ret` with no parenthesized receiver;
// methods as `func (Receiver) Name(...) Ret`.
func renderGoFunc(f apimodel.GoFuncInfo, structName string) string {
	var b strings.Builder
	b.WriteString("func ")
	if f.Receiver != "" {
		b.WriteString("(")
		b.WriteString(f.Receiver)
		b.WriteString(") ")
	}
	b.WriteString(f.Name)
	b.WriteString(typeParamsSuffix(f.TypeParams))
	b.WriteString("(")
	b.WriteString(strings.Join(f.Params, ", "))
	b.WriteString(")")
	if f.Ret != "" {
		b.WriteString(" ")
		b.WriteString(f.Ret)
	}
	b.WriteString("\n")
	return b.String()
}

// renderGoPackageLevel renders the var/const groups and free functions that
// don't belong to any struct's NamedType stub.
func renderGoPackageLevel(pkg apimodel.GoPackageInfo) string {
	var b strings.Builder
	if len(pkg.Constants) > 0 {
		b.WriteString("const (\n")
		for _, c := range pkg.Constants {
			b.WriteString("\t")
			b.WriteString(c.Name)
			if c.Type != "" {
				b.WriteString(" ")
				b.WriteString(c.Type)
			}
			if c.Value != "" {
				b.WriteString(" = ")
				b.WriteString(c.Value)
			}
			b.WriteString("\n")
		}
		b.WriteString(")\n")
	}
	if len(pkg.Variables) > 0 {
		b.WriteString("var (\n")
		for _, v := range pkg.Variables {
			b.WriteString("\t")
			b.WriteString(v.Name)
			if v.Type != "" {
				b.WriteString(" ")
				b.WriteString(v.Type)
			}
			b.WriteString("\n")
		}
		b.WriteString(")\n")
	}
	for _, fn := range pkg.Functions {
		b.WriteString(renderGoFunc(fn, ""))
	}
	return b.String()
}
