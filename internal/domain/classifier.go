package domain

import (
	"path"
	"path/filepath"

	m "github.com/packwright/packwright/internal/model"
)

// Classify scans every build result and records each chunk whose stem matches
// a known entry's base name into the accumulator, keyed by the entry's
// subpath and the pass's combination key.
func Classify(results []m.BuildResult, entries m.EntryMap, acc *m.OutputGroups) {
	stems := entryStems(entries)

	for _, result := range results {
		key := result.Combination.Key()

		for _, chunk := range result.Chunks {
			stem := stripOutputExtension(path.Base(filepath.ToSlash(chunk.FileName)))

			for _, subpath := range stems[stem] {
				acc.Add(subpath, key, m.Path(path.Join(string(result.OutDir), chunk.FileName)))
			}
		}
	}
}

// BinFile returns the primary entry output of a binary pass.
func BinFile(result m.BinResult) (m.Path, bool) {
	for _, chunk := range result.Chunks {
		if chunk.IsEntry {
			return m.Path(path.Join(string(result.OutDir), chunk.FileName)), true
		}
	}

	return "", false
}

// entryStems indexes entry subpaths by the base name of their source file.
func entryStems(entries m.EntryMap) map[string][]string {
	stems := make(map[string][]string, len(entries))

	for subpath, file := range entries {
		base := path.Base(filepath.ToSlash(string(file)))
		base, _, _ = stripScriptExtension(base)
		stems[base] = append(stems[base], subpath)
	}

	return stems
}
