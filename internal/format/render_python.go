package format

import (
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
)

func renderPythonType(nt apimodel.NamedType) string {
	c, ok := nt.(apimodel.PyClassInfo)
	if !ok {
		return nt.TypeName() + "\n"
	}

	var b strings.Builder
	header := "class " + c.Name
	if c.Base != "" {
		header += "(" + c.Base + ")"
	}
	b.WriteString(header)
	b.WriteString(":\n")

	// The docstring renders inside the class body, never before `class X:`.
	if c.DocComment != "" {
		b.WriteString("    \"\"\"")
		b.WriteString(c.DocComment)
		b.WriteString("\"\"\"\n")
	}

	for _, p := range c.Properties {
		b.WriteString("    @property\n")
		b.WriteString("    def ")
		b.WriteString(p.Name)
		b.WriteString("(self)")
		if p.Type != "" {
			b.WriteString(" -> ")
			b.WriteString(p.Type)
		}
		b.WriteString(": ...\n")
	}

	for _, m := range c.Methods {
		if m.IsClassMethod {
			b.WriteString("    @classmethod\n")
		}
		if m.IsStaticMethod {
			b.WriteString("    @staticmethod\n")
		}
		b.WriteString("    ")
		if m.IsAsync {
			b.WriteString("async ")
		}
		b.WriteString("def ")
		b.WriteString(m.Name)
		b.WriteString(m.Signature)
		if m.Ret != "" {
			b.WriteString(" -> ")
			b.WriteString(m.Ret)
		}
		b.WriteString(": ...\n")
	}

	if len(c.Properties) == 0 && len(c.Methods) == 0 {
		b.WriteString("    ...\n")
	}

	return b.String()
}
