package domain

import (
	"fmt"
	"strings"

	m "github.com/packwright/packwright/internal/model"
)

// GenerateConditionDecls renders the condition constants declaration file:
// one declare-module block per condition group, or one unnamed block of
// top-level constants for a flat spec. Each label becomes a boolean constant
// with a canonicalized name.
func GenerateConditionDecls(pkgName string, spec *m.ConditionSpec) string {
	if spec == nil {
		return ""
	}

	var b strings.Builder

	if spec.Kind == m.SpecFlat {
		for _, label := range spec.Labels {
			fmt.Fprintf(&b, "export const %s: boolean;\n", canonicalConstName(label))
		}

		return b.String()
	}

	for i, group := range spec.Groups {
		if i > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "declare module %q {\n", pkgName+"/"+group.Name)

		for _, label := range group.Labels {
			fmt.Fprintf(&b, "    export const %s: boolean;\n", canonicalConstName(label))
		}

		b.WriteString("}\n")
	}

	return b.String()
}

// canonicalConstName upper-cases a label and maps every non-alphanumeric
// rune to an underscore.
func canonicalConstName(label string) string {
	var b strings.Builder

	for _, r := range strings.ToUpper(label) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}

		b.WriteByte('_')
	}

	return b.String()
}
