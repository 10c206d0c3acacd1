package format

import (
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
)

// javaKeyword maps a JavaClassInfo's kind to the correct declaration
// keyword, so a class is never mislabeled as an interface (spec.md §4.11).
func javaKeyword(kind apimodel.JavaKind) string {
	switch kind {
	case apimodel.JavaInterface:
		return "interface"
	case apimodel.JavaRecord:
		return "record"
	case apimodel.JavaAnnotation:
		return "@interface"
	default:
		return "class"
	}
}

func renderJavaType(nt apimodel.NamedType) string {
	switch t := nt.(type) {
	case apimodel.JavaClassInfo:
		return renderJavaClass(t)
	case apimodel.JavaEnumInfo:
		return renderJavaEnum(t)
	default:
		return nt.TypeName() + "\n"
	}
}

func renderJavaEnum(e apimodel.JavaEnumInfo) string {
	var b strings.Builder
	if e.DocComment != "" {
		b.WriteString("/** ")
		b.WriteString(e.DocComment)
		b.WriteString(" */\n")
	}

	header := "public enum " + e.Name
	if len(e.Implements) > 0 {
		header += " implements " + strings.Join(e.Implements, ", ")
	}
	b.WriteString(header)
	b.WriteString(" {\n")
	b.WriteString("    ")
	b.WriteString(strings.Join(e.Values, ", "))
	b.WriteString(";\n")
	b.WriteString("}\n")
	return b.String()
}

func renderJavaClass(c apimodel.JavaClassInfo) string {
	var b strings.Builder
	if c.DocComment != "" {
		b.WriteString("/** ")
		b.WriteString(c.DocComment)
		b.WriteString(" */\n")
	}

	header := "public " + javaKeyword(c.Kind) + " " + c.Name
	if c.Extends != "" {
		header += " extends " + c.Extends
	}
	if len(c.Implements) > 0 {
		header += " implements " + strings.Join(c.Implements, ", ")
	}
	b.WriteString(header)
	b.WriteString(" {\n")

	for _, f := range c.Fields {
		b.WriteString("    ")
		b.WriteString(f.Type)
		b.WriteString(" ")
		b.WriteString(f.Name)
		b.WriteString(";\n")
	}
	for _, ctor := range c.Constructors {
		b.WriteString("    ")
		b.WriteString(strings.Join(ctor.Modifiers, " "))
		if len(ctor.Modifiers) > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.Name)
		b.WriteString(ctor.Signature)
		b.WriteString(";\n")
	}
	for _, m := range c.Methods {
		b.WriteString("    ")
		if len(m.Modifiers) > 0 {
			b.WriteString(strings.Join(m.Modifiers, " "))
			b.WriteString(" ")
		}
		if m.Ret != "" {
			b.WriteString(m.Ret)
			b.WriteString(" ")
		}
		b.WriteString(m.Name)
		b.WriteString(m.Signature)
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
