package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/packwright/packwright/internal/model"
)

func TestGenerateConditionDecls_Flat(t *testing.T) {
	spec := m.NewFlatSpec([]string{"node", "web-worker", "default"})

	decls := GenerateConditionDecls("pkg", spec)

	expected := `export const NODE: boolean;
export const WEB_WORKER: boolean;
export const DEFAULT: boolean;
`
	assert.Equal(t, expected, decls)
}

func TestGenerateConditionDecls_Grouped(t *testing.T) {
	spec := m.NewGroupedSpec([]m.ConditionGroup{
		{Name: "env", Labels: []string{"cocos", "node"}},
		{Name: "platform", Labels: []string{"ios", "android"}},
	})

	decls := GenerateConditionDecls("pkg", spec)

	expected := `declare module "pkg/env" {
    export const COCOS: boolean;
    export const NODE: boolean;
}

declare module "pkg/platform" {
    export const IOS: boolean;
    export const ANDROID: boolean;
}
`
	assert.Equal(t, expected, decls)
}

func TestGenerateConditionDecls_NilSpec(t *testing.T) {
	assert.Empty(t, GenerateConditionDecls("pkg", nil))
}

func TestCanonicalConstName(t *testing.T) {
	assert.Equal(t, "WEB_WORKER", canonicalConstName("web-worker"))
	assert.Equal(t, "V8_12", canonicalConstName("v8.12"))
	assert.Equal(t, "IOS", canonicalConstName("ios"))
}
