package domain

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/packwright/packwright/internal/adapter"
	"github.com/packwright/packwright/internal/config"
	"github.com/packwright/packwright/internal/controller"
	"github.com/packwright/packwright/internal/logger"
	m "github.com/packwright/packwright/internal/model"
	"github.com/packwright/packwright/internal/ojson"
)

// BundlerFactory builds a Bundler bound to the given command line and
// working directory.
type BundlerFactory func(argv []string, dir string) adapter.Bundler

// BuildArgs parameterizes one build invocation.
type BuildArgs struct {
	Root m.Path
}

// EntriesArgs parameterizes entry listing.
type EntriesArgs struct {
	Root m.Path
}

// CombinationsArgs parameterizes combination listing.
type CombinationsArgs struct {
	Root m.Path
}

// Workflow defines the top-level CLI operations.
type Workflow interface {
	Build(ctx context.Context, args BuildArgs) error
	Entries(ctx context.Context, args EntriesArgs) error
	Combinations(args CombinationsArgs) error
}

type workflow struct {
	fs         adapter.SourceFS
	parser     adapter.ScriptParser
	store      adapter.ManifestStore
	ui         controller.UI
	newBundler BundlerFactory
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(fs adapter.SourceFS, parser adapter.ScriptParser, store adapter.ManifestStore, ui controller.UI, newBundler BundlerFactory) Workflow {
	return &workflow{
		fs:         fs,
		parser:     parser,
		store:      store,
		ui:         ui,
		newBundler: newBundler,
	}
}

// project is the loaded per-invocation state shared by the operations.
type project struct {
	root     m.Path
	cfg      *config.Config
	manifest *ojson.Object
	pkgName  string
	pkgType  string
}

func (w *workflow) loadProject(root m.Path) (*project, error) {
	cfg, err := config.Load(string(root))
	if err != nil {
		return nil, err
	}

	manifest, err := w.store.Load(root)
	if err != nil {
		return nil, err
	}

	name, _ := manifest.GetString("name")

	pkgType, _ := manifest.GetString("type")
	if pkgType != PackageTypeModule {
		pkgType = PackageTypeCommonJS
	}

	return &project{root: root, cfg: cfg, manifest: manifest, pkgName: name, pkgType: pkgType}, nil
}

func (w *workflow) scanModules(ctx context.Context, p *project) ([]m.SourceModule, error) {
	files, err := w.fs.Glob(p.root, p.cfg.Patterns, ScriptExtensions())
	if err != nil {
		return nil, err
	}

	scanner := NewScanner(w.fs, w.parser)

	return scanner.Scan(ctx, files, p.pkgName)
}

// Build runs the full pipeline: scan, resolve, one bundler pass per
// combination and binary target, classify, synthesize, rewrite the manifest.
func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	p, err := w.loadProject(args.Root)
	if err != nil {
		return err
	}

	modules, err := w.scanModules(ctx, p)
	if err != nil {
		return err
	}

	entries, entryOrder, err := ResolveEntries(modules)
	if err != nil {
		return err
	}

	if len(entryOrder) == 0 {
		return fmt.Errorf("no public modules found; mark at least one file with %s and %s", markerModule, markerPublic)
	}

	bins, binOrder, err := ResolveBins(modules)
	if err != nil {
		return err
	}

	combos := Enumerate(p.cfg.Conditions)

	if err := w.ui.Start(len(combos) + len(binOrder)); err != nil {
		return err
	}
	defer w.ui.Close()

	orch := NewOrchestrator(w.newBundler(p.cfg.Bundler, string(p.root)), w.ui)

	results, binResults, err := orch.RunPasses(ctx, BuildPlan{
		Root:         p.root,
		OutDir:       p.cfg.OutDir,
		Entries:      entries,
		EntryOrder:   entryOrder,
		Combinations: combos,
		Bins:         bins,
		BinOrder:     binOrder,
		Declarations: true,
	})
	if err != nil {
		return err
	}

	acc := m.NewOutputGroups()
	Classify(results, entries, acc)

	opts := SynthesisOptions{
		Spec:        p.cfg.Conditions,
		EmitTypes:   p.cfg.EmitTypes,
		PackageType: p.pkgType,
	}

	exports := SynthesizeExports(entryOrder, acc, opts)
	p.manifest.Set("exports", exports)

	legacy := DeriveLegacyFields(exports, acc, opts)
	applyLegacyFields(p.manifest, legacy)

	if err := w.applyBinField(p, binOrder, binResults); err != nil {
		return err
	}

	if err := w.store.Save(p.root, p.manifest); err != nil {
		return err
	}

	if p.cfg.Conditions != nil && p.cfg.DeclFile != "" {
		content := GenerateConditionDecls(p.pkgName, p.cfg.Conditions)
		declPath := m.Path(filepath.Join(string(p.root), p.cfg.DeclFile))

		if err := w.fs.WriteFile(declPath, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p.cfg.DeclFile, err)
		}
	}

	return w.ui.DisplayBuildSummary(summaryRows(exports, acc), legacy.Derivable)
}

// Entries lists the resolved entry points and binary targets without
// building anything.
func (w *workflow) Entries(ctx context.Context, args EntriesArgs) error {
	p, err := w.loadProject(args.Root)
	if err != nil {
		return err
	}

	modules, err := w.scanModules(ctx, p)
	if err != nil {
		return err
	}

	entries, entryOrder, err := ResolveEntries(modules)
	if err != nil {
		return err
	}

	bins, binOrder, err := ResolveBins(modules)
	if err != nil {
		return err
	}

	entryRows := make([]controller.EntryRow, 0, len(entryOrder))
	for _, subpath := range entryOrder {
		entryRows = append(entryRows, controller.EntryRow{SubPath: subpath, File: relativeTo(p.root, entries[subpath])})
	}

	binRows := make([]controller.BinRow, 0, len(binOrder))
	for _, id := range binOrder {
		binRows = append(binRows, controller.BinRow{ID: id, File: relativeTo(p.root, bins[id])})
	}

	return w.ui.DisplayEntries(entryRows, binRows)
}

// Combinations lists the build passes the configured conditions enumerate.
func (w *workflow) Combinations(args CombinationsArgs) error {
	p, err := w.loadProject(args.Root)
	if err != nil {
		return err
	}

	combos := Enumerate(p.cfg.Conditions)

	rows := make([]controller.CombinationRow, 0, len(combos))
	for i, combo := range combos {
		rows = append(rows, controller.CombinationRow{
			Index:  i + 1,
			Key:    combo.Key(),
			OutDir: PassOutDir(p.cfg.OutDir, combo),
		})
	}

	return w.ui.DisplayCombinations(rows)
}

// applyLegacyFields rewrites main/module/types: set when derivable, removed
// entirely otherwise.
func applyLegacyFields(manifest *ojson.Object, legacy LegacyFields) {
	if !legacy.Derivable {
		manifest.Delete("main")
		manifest.Delete("module")
		manifest.Delete("types")

		return
	}

	manifest.Set("main", legacy.Main)

	if legacy.Module != "" {
		manifest.Set("module", legacy.Module)
	} else {
		manifest.Delete("module")
	}

	if legacy.Types != "" {
		manifest.Set("types", legacy.Types)
	} else {
		manifest.Delete("types")
	}
}

// applyBinField rewrites the manifest's bin field. A package whose sole
// binary id equals the package name collapses to a single unnamed bin.
func (w *workflow) applyBinField(p *project, binOrder []string, binResults []m.BinResult) error {
	if len(binResults) == 0 {
		return nil
	}

	log := logger.ForComponent("build")

	files := make(map[string]string, len(binResults))

	for _, result := range binResults {
		file, ok := BinFile(result)
		if !ok {
			log.Warn("binary pass produced no entry chunk", "bin", result.ID)
			continue
		}

		files[result.ID] = exportPath(string(file))
	}

	if len(files) == 0 {
		return nil
	}

	if len(binOrder) == 1 && binOrder[0] == p.pkgName {
		p.manifest.Set("bin", files[binOrder[0]])

		return nil
	}

	bin := ojson.New()

	for _, id := range binOrder {
		if file, ok := files[id]; ok {
			bin.Set(id, file)
		}
	}

	p.manifest.Set("bin", bin)

	return nil
}

func summaryRows(exports *ojson.Object, acc *m.OutputGroups) []controller.ExportRow {
	rows := make([]controller.ExportRow, 0, exports.Len())

	for _, subpath := range exports.Keys() {
		branches := 1
		if value, ok := exports.Get(subpath); ok {
			if obj, isObj := value.(*ojson.Object); isObj {
				branches = obj.Len()
			}
		}

		rows = append(rows, controller.ExportRow{
			SubPath:  subpath,
			Branches: branches,
			Files:    len(acc.AllFiles(subpath)),
		})
	}

	return rows
}
