// Package domain implements the conditional multi-target build pipeline:
// condition enumeration, module scanning, entry resolution, build
// orchestration, output classification and export synthesis.
package domain

import "strings"

// scriptExtensions is the known script-extension set, longest first so that
// compound extensions strip correctly (".mts" before ".ts").
var scriptExtensions = []string{".mts", ".cts", ".mjs", ".cjs", ".ts", ".js"}

// declarationExtensions in cross-compatibility order, most compatible first.
var declarationExtensions = []string{".d.ts", ".d.mts", ".d.cts"}

// ScriptExtensions returns the extension set handed to the source walker and
// the bundler's resolution aliasing.
func ScriptExtensions() []string {
	out := make([]string, len(scriptExtensions))
	copy(out, scriptExtensions)

	return out
}

// stripScriptExtension removes the longest matching script extension and
// reports which one matched.
func stripScriptExtension(name string) (base, ext string, ok bool) {
	for _, candidate := range scriptExtensions {
		if strings.HasSuffix(name, candidate) {
			return strings.TrimSuffix(name, candidate), candidate, true
		}
	}

	return name, "", false
}

// stripOutputExtension reduces an output file name to its stem: declaration
// extensions first, then script extensions.
func stripOutputExtension(name string) string {
	for _, candidate := range declarationExtensions {
		if strings.HasSuffix(name, candidate) {
			return strings.TrimSuffix(name, candidate)
		}
	}

	base, _, _ := stripScriptExtension(name)

	return base
}

// fileRole classifies one output file by suffix.
type fileRole int

const (
	roleOther fileRole = iota
	roleDeclaration
	roleESM
	roleCJS
	// roleAmbiguous is a plain .js file, usable as ESM or CJS fallback only
	// when the dedicated suffix is absent.
	roleAmbiguous
)

func classifyFile(name string) fileRole {
	for _, candidate := range declarationExtensions {
		if strings.HasSuffix(name, candidate) {
			return roleDeclaration
		}
	}

	switch {
	case strings.HasSuffix(name, ".mjs"):
		return roleESM
	case strings.HasSuffix(name, ".cjs"):
		return roleCJS
	case strings.HasSuffix(name, ".js"):
		return roleAmbiguous
	default:
		return roleOther
	}
}
