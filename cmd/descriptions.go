package cmd

const rootLongDescription = `Packwright standardizes building and publishing a monorepo-style source
package. It discovers the source modules marked as public entry points, runs
one bundler pass per combination of build-time conditions, and rewrites the
package manifest with a nested conditional export map plus the legacy
main/module/types fields.

Configuration is read from packwright.yaml in the project root.`

const buildLongDescription = `Build runs the full pipeline:

  1. scan the configured source patterns for @module/@public doc markers
  2. resolve entry subpaths and binary targets
  3. run one bundler pass per condition combination (plus one per binary)
  4. classify the emitted artifacts per entry and combination
  5. rewrite package.json exports, main, module, types and bin

A failed pass aborts the whole invocation; nothing is published partially.`

const entriesLongDescription = `Entries scans the configured source patterns and prints the resolved entry
subpaths and binary targets without invoking the bundler. Subpath collisions
are reported exactly as the build would report them.`

const conditionsLongDescription = `Conditions prints the exhaustive list of build passes the configured
condition spec enumerates, with the output directory each pass writes to.
A grouped spec with groups of sizes n1..nk yields n1*...*nk passes.`
