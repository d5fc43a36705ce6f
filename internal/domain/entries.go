package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	m "github.com/packwright/packwright/internal/model"
)

// ResolveEntries turns the public source modules into the entry map and the
// ordered subpath list used by synthesis. Two files resolving to the same
// subpath is a fatal configuration error.
func ResolveEntries(modules []m.SourceModule) (m.EntryMap, []string, error) {
	var roots []m.SourceModule

	for _, module := range modules {
		if module.Visibility == m.VisibilityPublic {
			roots = append(roots, module)
		}
	}

	entries := make(m.EntryMap, len(roots))

	var order []string

	if len(roots) == 0 {
		return entries, order, nil
	}

	files := make([]m.Path, 0, len(roots))
	for _, root := range roots {
		files = append(files, root.Origin)
	}

	ancestor := commonAncestor(files)

	for _, root := range roots {
		subpath := toEntrySubPath(root.Origin, ancestor)
		if root.Overridden {
			subpath = root.Override
		}

		if existing, ok := entries[subpath]; ok {
			return nil, nil, fmt.Errorf("subpath %q is claimed by both %s and %s", subpath, existing, root.Origin)
		}

		entries[subpath] = root.Origin
		order = append(order, subpath)
	}

	return entries, order, nil
}

// ResolveBins collects the binary targets declared by the scanned modules.
// Binary identifiers are explicit strings; a duplicate id is fatal.
func ResolveBins(modules []m.SourceModule) (m.BinMap, []string, error) {
	bins := make(m.BinMap)

	var order []string

	for _, module := range modules {
		for _, id := range module.BinIDs {
			if existing, ok := bins[id]; ok {
				return nil, nil, fmt.Errorf("binary %q is claimed by both %s and %s", id, existing, module.Origin)
			}

			bins[id] = module.Origin
			order = append(order, id)
		}
	}

	return bins, order, nil
}

// commonAncestor computes the deepest directory containing every file. A
// single file yields its own containing directory, so a lone root module
// resolves to subpath ".".
func commonAncestor(files []m.Path) m.Path {
	ancestor := filepath.Dir(string(files[0]))

	for _, file := range files[1:] {
		dir := filepath.Dir(string(file))

		for !isAncestorOf(ancestor, dir) {
			parent := filepath.Dir(ancestor)
			if parent == ancestor {
				break
			}

			ancestor = parent
		}
	}

	return m.Path(ancestor)
}

func isAncestorOf(ancestor, dir string) bool {
	if ancestor == dir {
		return true
	}

	prefix := ancestor
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return strings.HasPrefix(dir, prefix)
}

// toEntrySubPath derives the automatic subpath of a file below the common
// ancestor: extension stripped (longest known extension first), a trailing
// "/index" folded to the parent, the empty result mapped to ".".
func toEntrySubPath(file, ancestor m.Path) string {
	rel, err := filepath.Rel(string(ancestor), string(file))
	if err != nil {
		rel = filepath.Base(string(file))
	}

	rel = filepath.ToSlash(rel)
	rel, _, _ = stripScriptExtension(rel)

	switch {
	case rel == "index":
		rel = ""
	case strings.HasSuffix(rel, "/index"):
		rel = strings.TrimSuffix(rel, "/index")
	}

	if rel == "" || rel == "." {
		return "."
	}

	return "./" + rel
}
