package domain

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/packwright/packwright/internal/adapter"
	"github.com/packwright/packwright/internal/logger"
	m "github.com/packwright/packwright/internal/model"
)

// Doc-block markers recognized by the scanner.
const (
	markerModule   = "@module"
	markerPublic   = "@public"
	markerInternal = "@internal"
	markerPath     = "@path"
	markerBin      = "@bin"
)

// Scanner classifies candidate source files by the markers in their leading
// documentation block.
type Scanner struct {
	fs     adapter.SourceFS
	parser adapter.ScriptParser
}

// NewScanner constructs a Scanner backed by the given adapters.
func NewScanner(fs adapter.SourceFS, parser adapter.ScriptParser) *Scanner {
	return &Scanner{fs: fs, parser: parser}
}

// Scan reads and classifies every candidate file. Files are processed
// concurrently; the result keeps the input order. A file whose doc block
// fails to parse is logged and skipped, never aborting the scan, but a
// malformed path-override annotation is a configuration error and fatal.
func (s *Scanner) Scan(ctx context.Context, files []m.Path, pkgName string) ([]m.SourceModule, error) {
	log := logger.ForComponent("scanner")

	modules := make([]m.SourceModule, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := s.fs.ReadFile(file)
			if err != nil {
				log.Warn("skipping unreadable file", "path", file, "err", err)
				modules[i] = m.SourceModule{Origin: file, Visibility: m.VisibilityInherit}

				return nil
			}

			doc, err := s.parser.LeadingDoc(src)
			if err != nil {
				log.Warn("skipping file with unparsable doc block", "path", file, "err", err)
				modules[i] = m.SourceModule{Origin: file, Visibility: m.VisibilityInherit}

				return nil
			}

			module, err := parseMarkers(file, doc, pkgName)
			if err != nil {
				return err
			}

			modules[i] = module

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return modules, nil
}

// parseMarkers interprets the doc-block markers for one file. A module is
// public only when the block carries both the module and the public marker.
func parseMarkers(file m.Path, doc, pkgName string) (m.SourceModule, error) {
	module := m.SourceModule{Origin: file, Visibility: m.VisibilityInherit}

	var hasModule, hasPublic bool

	for _, line := range strings.Split(doc, "\n") {
		fields := strings.Fields(line)

		for j, field := range fields {
			switch field {
			case markerModule:
				hasModule = true
			case markerPublic:
				hasPublic = true
			case markerInternal:
				module.Visibility = m.VisibilityInternal
			case markerPath:
				value := ""
				if j+1 < len(fields) && !strings.HasPrefix(fields[j+1], "@") {
					value = fields[j+1]
				}

				normalized, err := normalizeSubpathOverride(value)
				if err != nil {
					return m.SourceModule{}, fmt.Errorf("%s: %w", file, err)
				}

				module.Override = normalized
				module.Overridden = true
			case markerBin:
				id := pkgName
				if j+1 < len(fields) && !strings.HasPrefix(fields[j+1], "@") {
					id = fields[j+1]
				}

				module.BinIDs = append(module.BinIDs, id)
			}
		}
	}

	if hasModule && hasPublic && module.Visibility != m.VisibilityInternal {
		module.Visibility = m.VisibilityPublic
	}

	return module, nil
}

// normalizeSubpathOverride canonicalizes an explicit @path value: "", "." and
// "./" collapse to "."; anything else must start with "./" and loses its
// trailing slash.
func normalizeSubpathOverride(value string) (string, error) {
	if value == "" || value == "." || value == "./" {
		return ".", nil
	}

	if !strings.HasPrefix(value, "./") {
		return "", fmt.Errorf("invalid subpath override %q: must start with \"./\"", value)
	}

	return strings.TrimSuffix(value, "/"), nil
}
