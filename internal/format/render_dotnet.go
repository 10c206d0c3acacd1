package format

import (
	"strings"

	"github.com/oxhq/apiindex/internal/apimodel"
)

func renderDotNetType(nt apimodel.NamedType) string {
	t, ok := nt.(apimodel.TypeInfo)
	if !ok {
		return nt.TypeName() + "\n"
	}

	var b strings.Builder
	if t.DocComment != "" {
		for _, line := range strings.Split(strings.TrimRight(t.DocComment, "\n"), "\n") {
			b.WriteString("/// ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if t.IsDeprecated {
		b.WriteString("[Obsolete]\n")
	}

	header := "public " + string(t.Kind) + " " + t.Name
	if t.Base != "" || len(t.Interfaces) > 0 {
		parts := []string{}
		if t.Base != "" {
			parts = append(parts, t.Base)
		}
		parts = append(parts, t.Interfaces...)
		header += " : " + strings.Join(parts, ", ")
	}
	b.WriteString(header)
	b.WriteString("\n{\n")

	statics, instances := splitDotNetMembers(t.Members)
	for _, m := range statics {
		writeDotNetMember(&b, m)
	}
	for _, m := range instances {
		writeDotNetMember(&b, m)
	}
	for _, v := range t.Values {
		b.WriteString("    ")
		b.WriteString(v)
		b.WriteString(",\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func splitDotNetMembers(members []apimodel.MemberInfo) (statics, instances []apimodel.MemberInfo) {
	for _, m := range members {
		if m.Kind == "property" && m.IsStatic {
			statics = append(statics, m)
		}
	}
	for _, m := range members {
		if m.Kind == "property" && m.IsStatic {
			continue
		}
		instances = append(instances, m)
	}
	return statics, instances
}

func writeDotNetMember(b *strings.Builder, m apimodel.MemberInfo) {
	if m.Doc != "" {
		b.WriteString("    /// ")
		b.WriteString(m.Doc)
		b.WriteString("\n")
	}
	b.WriteString("    ")
	if m.IsStatic {
		b.WriteString("static ")
	}
	if m.IsAsync {
		b.WriteString("async ")
	}
	b.WriteString(m.Name)
	if m.Signature != "" {
		b.WriteString(m.Signature)
	}
	b.WriteString(";\n")
}
