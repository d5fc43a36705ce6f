package domain

import (
	"path"
	"strings"

	m "github.com/packwright/packwright/internal/model"
)

// Enumerate expands a condition spec into the exhaustive, ordered list of
// combinations to build. A nil spec yields the single empty combination (the
// unconditional build); callers that care about the difference check spec
// presence, not the combination count.
func Enumerate(spec *m.ConditionSpec) []m.Combination {
	if spec == nil {
		return []m.Combination{{}}
	}

	if spec.Kind == m.SpecFlat {
		combos := make([]m.Combination, 0, len(spec.Labels))
		for _, label := range spec.Labels {
			combos = append(combos, m.Combination{{Group: label}})
		}

		return combos
	}

	var combos []m.Combination

	enumerateGroups(spec.Groups, m.Combination{}, &combos)

	return combos
}

// enumerateGroups walks the cartesian product in group-declaration order,
// labels in declaration order within each group. The recursion depth equals
// the group count.
func enumerateGroups(groups []m.ConditionGroup, prefix m.Combination, out *[]m.Combination) {
	if len(groups) == 0 {
		*out = append(*out, prefix)
		return
	}

	group := groups[0]
	for _, label := range group.Labels {
		enumerateGroups(groups[1:], prefix.With(m.Assignment{Group: group.Name, Label: label}), out)
	}
}

// SuffixCandidates builds the module-resolution file-suffix candidates for a
// combination: every ordering of every non-empty subset of the active
// labels, most specific first, followed by the empty suffix. With active
// labels {ios, cocos} the bundler then prefers module.ios.cocos.ts over
// module.ios.ts over module.ts.
func SuffixCandidates(combo m.Combination) []string {
	labels := combo.ActiveLabels()

	var out []string

	for size := len(labels); size >= 1; size-- {
		for _, subset := range subsets(labels, size) {
			for _, perm := range permutations(subset) {
				out = append(out, "."+strings.Join(perm, "."))
			}
		}
	}

	return append(out, "")
}

// PassOutDir derives the output-directory prefix for one pass: the base out
// dir, suffixed by the joined active labels when conditions are in play.
func PassOutDir(base string, combo m.Combination) string {
	labels := combo.ActiveLabels()
	if len(labels) == 0 {
		return base
	}

	return path.Join(base, strings.Join(labels, "-"))
}

// subsets returns all subsets of the given size, preserving element order.
func subsets(labels []string, size int) [][]string {
	if size == 0 {
		return [][]string{{}}
	}

	if len(labels) < size {
		return nil
	}

	var out [][]string

	for i := 0; i+size <= len(labels); i++ {
		for _, rest := range subsets(labels[i+1:], size-1) {
			subset := make([]string, 0, size)
			subset = append(subset, labels[i])
			subset = append(subset, rest...)
			out = append(out, subset)
		}
	}

	return out
}

// permutations returns all orderings of labels, the declaration order first.
func permutations(labels []string) [][]string {
	if len(labels) <= 1 {
		return [][]string{labels}
	}

	var out [][]string

	for i := range labels {
		rest := make([]string, 0, len(labels)-1)
		rest = append(rest, labels[:i]...)
		rest = append(rest, labels[i+1:]...)

		for _, perm := range permutations(rest) {
			ordered := make([]string, 0, len(labels))
			ordered = append(ordered, labels[i])
			ordered = append(ordered, perm...)
			out = append(out, ordered)
		}
	}

	return out
}
