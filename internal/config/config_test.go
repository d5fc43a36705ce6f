package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/packwright/packwright/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "packwright.yaml"), []byte(content), 0o644))

	return dir
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*"}, cfg.Patterns)
	assert.Equal(t, "dist", cfg.OutDir)
	assert.True(t, cfg.EmitTypes)
	assert.Empty(t, cfg.DeclFile)
	assert.Nil(t, cfg.Conditions)
}

func TestLoad_FlatConditions(t *testing.T) {
	dir := writeConfig(t, `
outDir: build
emitTypes: false
bundler: ["node", "tools/bundle.mjs"]
conditions: [node, browser, default]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "build", cfg.OutDir)
	assert.False(t, cfg.EmitTypes)
	assert.Equal(t, []string{"node", "tools/bundle.mjs"}, cfg.Bundler)

	require.NotNil(t, cfg.Conditions)
	assert.Equal(t, m.SpecFlat, cfg.Conditions.Kind)
	assert.Equal(t, []string{"node", "browser", "default"}, cfg.Conditions.Labels)
}

func TestLoad_GroupedConditions_PreservesDeclarationOrder(t *testing.T) {
	dir := writeConfig(t, `
conditions:
  - env: [cocos, node, default]
  - platform: [ios, android, default]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.NotNil(t, cfg.Conditions)
	require.Equal(t, m.SpecGrouped, cfg.Conditions.Kind)
	require.Len(t, cfg.Conditions.Groups, 2)

	assert.Equal(t, "env", cfg.Conditions.Groups[0].Name)
	assert.Equal(t, []string{"cocos", "node", "default"}, cfg.Conditions.Groups[0].Labels)
	assert.Equal(t, "platform", cfg.Conditions.Groups[1].Name)
}

func TestLoad_DefaultLabelNormalizedToLast(t *testing.T) {
	dir := writeConfig(t, `
conditions:
  - env: [default, cocos, node]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"cocos", "node", "default"}, cfg.Conditions.Groups[0].Labels)
}

func TestLoad_FlatDefaultLabelNormalizedToLast(t *testing.T) {
	dir := writeConfig(t, "conditions: [default, node]\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"node", "default"}, cfg.Conditions.Labels)
}

func TestLoad_DuplicateLabelIsError(t *testing.T) {
	dir := writeConfig(t, "conditions: [node, node]\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoad_DuplicateGroupIsError(t *testing.T) {
	dir := writeConfig(t, `
conditions:
  - env: [a]
  - env: [b]
`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate group")
}

func TestLoad_EmptyGroupIsError(t *testing.T) {
	dir := writeConfig(t, `
conditions:
  - env: []
`)

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoad_MalformedGroupIsError(t *testing.T) {
	dir := writeConfig(t, `
conditions:
  - env: [a]
    platform: [b]
`)

	_, err := Load(dir)
	require.Error(t, err)
}

func TestResolveConditions_EmptyListIsNil(t *testing.T) {
	spec, err := resolveConditions([]any{})
	require.NoError(t, err)
	assert.Nil(t, spec)
}
