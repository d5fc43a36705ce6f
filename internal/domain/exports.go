package domain

import (
	"path"
	"strings"

	m "github.com/packwright/packwright/internal/model"
	"github.com/packwright/packwright/internal/ojson"
)

// PackageTypeCommonJS and PackageTypeModule are the two recognized values of
// the manifest's "type" field. Anything else is treated as commonjs.
const (
	PackageTypeCommonJS = "commonjs"
	PackageTypeModule   = "module"
)

// SynthesisOptions configures export synthesis for one invocation.
type SynthesisOptions struct {
	Spec *m.ConditionSpec

	// EmitTypes includes declaration paths in the exports map, picking the
	// declaration dialect per branch when the pass emitted more than one.
	// When false no "types" key appears in exports at all.
	EmitTypes bool

	// PackageType is the manifest's "type" field, deciding how plain .js
	// artifacts and their declarations are interpreted.
	PackageType string
}

type synthesizer struct {
	groups *m.OutputGroups
	opts   SynthesisOptions
}

// SynthesizeExports converts the classified output groups into the nested
// conditional export map, honoring condition-group order and default-fallback
// chains. Entries and branches that produced no output are pruned silently.
// The result is deterministic for a fixed accumulator.
func SynthesizeExports(subpaths []string, groups *m.OutputGroups, opts SynthesisOptions) *ojson.Object {
	s := &synthesizer{groups: groups, opts: opts}

	exports := ojson.New()

	for _, subpath := range subpaths {
		if value := s.entryValue(subpath); value != nil {
			exports.Set(subpath, value)
		}
	}

	return exports
}

func (s *synthesizer) entryValue(subpath string) *ojson.Object {
	if s.opts.Spec == nil {
		return s.leaf(subpath, "")
	}

	if s.opts.Spec.Kind == m.SpecFlat {
		return s.flatValue(subpath)
	}

	return s.groupValue(subpath, s.opts.Spec.Groups, m.Combination{})
}

// flatValue emits one key per label that produced output. The default key
// resolves from the default label's own build when declared, falling back to
// the unconditional-equivalent group otherwise.
func (s *synthesizer) flatValue(subpath string) *ojson.Object {
	obj := ojson.New()

	hasDefaultLabel := false

	for _, label := range s.opts.Spec.Labels {
		if label == m.DefaultLabel {
			hasDefaultLabel = true
		}

		combo := m.Combination{{Group: label}}
		if leaf := s.leaf(subpath, combo.Key()); leaf != nil {
			obj.Set(label, leaf)
		}
	}

	if !hasDefaultLabel {
		// Flat enumeration builds one pass per label and never populates the
		// "" group itself, so this prunes unless the accumulator was also fed
		// an unconditional pass.
		if leaf := s.leaf(subpath, ""); leaf != nil {
			obj.Set(m.DefaultLabel, leaf)
		}
	}

	if obj.Len() == 0 {
		return nil
	}

	return obj
}

// groupValue recursively builds one nesting level per condition group, in
// group-declaration order. Empty branches are pruned, not reported.
func (s *synthesizer) groupValue(subpath string, groups []m.ConditionGroup, prefix m.Combination) *ojson.Object {
	if len(groups) == 0 {
		return s.leaf(subpath, prefix.Key())
	}

	group := groups[0]
	obj := ojson.New()

	for _, label := range group.Labels {
		child := s.groupValue(subpath, groups[1:], prefix.With(m.Assignment{Group: group.Name, Label: label}))
		if child != nil && child.Len() > 0 {
			obj.Set(label, child)
		}
	}

	if obj.Len() == 0 {
		return nil
	}

	return obj
}

// leafArtifacts is the classified file set of one (entry, combination) pair.
type leafArtifacts struct {
	declarations []string
	esm          string
	cjs          string
}

func (s *synthesizer) leaf(subpath, comboKey string) *ojson.Object {
	files := s.groups.Files(subpath, comboKey)
	if len(files) == 0 {
		return nil
	}

	arts := resolveLeafArtifacts(files)
	entry := s.resolveEntry(arts)

	if entry.IsZero() {
		return nil
	}

	obj := ojson.New()

	if s.opts.EmitTypes {
		importDecl := pickDeclaration(arts.declarations, declPreference(scriptExt(entry.Import), s.opts.PackageType))
		requireDecl := pickDeclaration(arts.declarations, declPreference(scriptExt(entry.Require), s.opts.PackageType))

		if splitTypes(entry, importDecl, requireDecl) {
			if entry.Import != "" {
				obj.Set("import", branchObject(importDecl, entry.Import))
			}

			if entry.Require != "" {
				obj.Set("require", branchObject(requireDecl, entry.Require))
			}

			if entry.Default != "" {
				obj.Set("default", exportPath(entry.Default))
			}

			return obj
		}

		if shared := pickDeclaration(arts.declarations, declarationExtensions); shared != "" {
			obj.Set("types", exportPath(shared))
		}
	}

	if entry.Import != "" {
		obj.Set("import", exportPath(entry.Import))
	}

	if entry.Require != "" {
		obj.Set("require", exportPath(entry.Require))
	}

	if entry.Default != "" {
		obj.Set("default", exportPath(entry.Default))
	}

	return obj
}

// resolveEntry selects the scripts for one leaf and derives the default
// fallback from the import value, or the require value when no ESM artifact
// exists.
func (s *synthesizer) resolveEntry(arts leafArtifacts) m.ExportEntry {
	entry := m.ExportEntry{Import: arts.esm, Require: arts.cjs}

	if entry.Import != "" {
		entry.Default = entry.Import
	} else {
		entry.Default = entry.Require
	}

	return entry
}

// splitTypes reports whether the two branches need distinct declaration
// dialects. A single shared declaration keeps the flatter shared-types shape.
func splitTypes(entry m.ExportEntry, importDecl, requireDecl string) bool {
	if entry.Import == "" || entry.Require == "" {
		return false
	}

	return importDecl != "" && requireDecl != "" && importDecl != requireDecl
}

// branchObject builds a per-branch object with the types key ordered first
// for tooling compatibility.
func branchObject(decl, script string) *ojson.Object {
	obj := ojson.New()

	if decl != "" {
		obj.Set("types", exportPath(decl))
	}

	obj.Set("default", exportPath(script))

	return obj
}

// resolveLeafArtifacts classifies the file set of one leaf. Dedicated
// suffixes win; a plain .js file serves as ESM or CJS fallback only when the
// dedicated suffix is absent.
func resolveLeafArtifacts(files []m.Path) leafArtifacts {
	var arts leafArtifacts

	ambiguous := ""

	for _, file := range files {
		name := string(file)

		switch classifyFile(name) {
		case roleDeclaration:
			arts.declarations = append(arts.declarations, name)
		case roleESM:
			if arts.esm == "" {
				arts.esm = name
			}
		case roleCJS:
			if arts.cjs == "" {
				arts.cjs = name
			}
		case roleAmbiguous:
			if ambiguous == "" {
				ambiguous = name
			}
		case roleOther:
		}
	}

	if arts.esm == "" {
		arts.esm = ambiguous
	}

	if arts.cjs == "" {
		arts.cjs = ambiguous
	}

	return arts
}

// pickDeclaration returns the first declaration matching the extension
// preference order.
func pickDeclaration(declarations []string, preference []string) string {
	for _, ext := range preference {
		for _, decl := range declarations {
			if strings.HasSuffix(decl, ext) {
				return decl
			}
		}
	}

	return ""
}

// declPreference orders declaration extensions by how closely they match the
// module kind of the script they accompany.
func declPreference(ext, packageType string) []string {
	switch ext {
	case ".mjs":
		return []string{".d.mts", ".d.ts", ".d.cts"}
	case ".cjs":
		return []string{".d.cts", ".d.ts", ".d.mts"}
	default:
		if packageType == PackageTypeModule {
			return []string{".d.ts", ".d.mts", ".d.cts"}
		}

		return []string{".d.ts", ".d.cts", ".d.mts"}
	}
}

func scriptExt(file string) string {
	_, ext, _ := stripScriptExtension(file)

	return ext
}

// exportPath renders an output path the way consumers see it: relative to
// the package root with a leading "./".
func exportPath(p string) string {
	return "./" + path.Clean(p)
}

// LegacyFields holds the derived package-root fallback fields. Derivable is
// false when the condition shape cannot guarantee an unambiguous default, in
// which case all three fields must be removed rather than guessed.
type LegacyFields struct {
	Main      string
	Module    string
	Types     string
	Derivable bool
}

// DeriveLegacyFields walks the default chain of the already-built export
// tree for the root entry and derives main/module/types. Legacy fields are
// only attempted when either no conditions exist, a flat spec declares the
// default label, or every group of a grouped spec declares it.
func DeriveLegacyFields(exports *ojson.Object, groups *m.OutputGroups, opts SynthesisOptions) LegacyFields {
	rootValue, ok := exports.Get(".")
	if !ok {
		return LegacyFields{}
	}

	node, ok := rootValue.(*ojson.Object)
	if !ok {
		return LegacyFields{}
	}

	comboKey, shapeOK := defaultChainKey(opts.Spec)
	if !shapeOK {
		return LegacyFields{}
	}

	// The chain must exist in the built tree: one default branch per group
	// (one for a flat spec). A pruned branch means the fields are omitted,
	// not guessed.
	depth := defaultChainDepth(opts.Spec)
	for i := 0; i < depth; i++ {
		child, ok := node.Get(m.DefaultLabel)
		if !ok {
			return LegacyFields{}
		}

		node, ok = child.(*ojson.Object)
		if !ok {
			return LegacyFields{}
		}
	}

	files := groups.Files(".", comboKey)
	arts := resolveLeafArtifacts(files)

	if arts.esm == "" && arts.cjs == "" {
		return LegacyFields{}
	}

	fields := LegacyFields{Derivable: true}

	main := arts.cjs
	if main == "" {
		main = arts.esm
	}

	fields.Main = exportPath(main)

	if arts.esm != "" {
		fields.Module = exportPath(arts.esm)
	}

	if decl := pickDeclaration(arts.declarations, declarationExtensions); decl != "" {
		fields.Types = exportPath(decl)
	} else if probed := probeDeclaration(main, groups, opts.PackageType); probed != "" {
		fields.Types = exportPath(probed)
	}

	return fields
}

// defaultChainKey returns the combination key of the all-default pass, and
// whether the condition-spec shape permits unambiguous derivation at all.
func defaultChainKey(spec *m.ConditionSpec) (string, bool) {
	if spec == nil {
		return "", true
	}

	if spec.Kind == m.SpecFlat {
		for _, label := range spec.Labels {
			if label == m.DefaultLabel {
				combo := m.Combination{{Group: m.DefaultLabel}}
				return combo.Key(), true
			}
		}

		return "", false
	}

	combo := m.Combination{}

	for _, group := range spec.Groups {
		if !containsLabel(group.Labels, m.DefaultLabel) {
			return "", false
		}

		combo = combo.With(m.Assignment{Group: group.Name, Label: m.DefaultLabel})
	}

	return combo.Key(), true
}

func defaultChainDepth(spec *m.ConditionSpec) int {
	if spec == nil {
		return 0
	}

	if spec.Kind == m.SpecFlat {
		return 1
	}

	return len(spec.Groups)
}

// probeDeclaration heuristically locates a declaration for the chosen script
// among all files produced for the root entry: the script's extension is
// stripped and declaration candidates are probed in dialect order.
func probeDeclaration(script string, groups *m.OutputGroups, packageType string) string {
	base, ext, ok := stripScriptExtension(script)
	if !ok {
		return ""
	}

	produced := make(map[string]struct{})
	for _, file := range groups.AllFiles(".") {
		produced[string(file)] = struct{}{}
	}

	for _, candidate := range declPreference(ext, packageType) {
		probe := base + candidate
		if _, found := produced[probe]; found {
			return probe
		}
	}

	return ""
}

func containsLabel(labels []string, want string) bool {
	for _, label := range labels {
		if label == want {
			return true
		}
	}

	return false
}
