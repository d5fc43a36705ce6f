package model

// Path represents a file system path.
type Path string

// Visibility classifies a scanned source module.
type Visibility string

const (
	// VisibilityPublic marks a root module, eligible to become a package
	// entry point.
	VisibilityPublic Visibility = "public"

	// VisibilityInternal marks a module that must never be exported.
	VisibilityInternal Visibility = "internal"

	// VisibilityInherit is the default when a file carries no marker; the
	// module follows its importer and is not a root candidate.
	VisibilityInherit Visibility = "inherit"
)

// SourceModule is a scanned source file with the annotations extracted from
// its leading documentation block. Immutable; discarded after entry
// resolution.
type SourceModule struct {
	Origin     Path
	Visibility Visibility

	// Override is the explicit subpath override, normalized. Overridden
	// distinguishes an explicit "." from no annotation at all.
	Override   string
	Overridden bool

	// BinIDs lists the binary entry identifiers declared by the file. A bare
	// binary marker falls back to the package name.
	BinIDs []string
}

// EntryMap maps a canonical subpath ("." or "./...") to exactly one source
// file. No two files may resolve to the same subpath.
type EntryMap map[string]Path

// BinMap maps a binary identifier to its source file.
type BinMap map[string]Path
