package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadingDoc_DocBeforeFirstStatement(t *testing.T) {
	src := []byte(`/**
 * Audio playback helpers.
 *
 * @module
 * @public
 */
export function play() {}
`)

	doc, err := NewLeadingDocParser().LeadingDoc(src)
	require.NoError(t, err)
	assert.Equal(t, "Audio playback helpers.\n\n@module\n@public", doc)
}

func TestLeadingDoc_LastBlockBeforeStatementWins(t *testing.T) {
	src := []byte(`/** File header. */
/** @module @public */
export const x = 1;
`)

	doc, err := NewLeadingDocParser().LeadingDoc(src)
	require.NoError(t, err)
	assert.Equal(t, "@module @public", doc)
}

func TestLeadingDoc_FirstBlockWhenNoStatements(t *testing.T) {
	src := []byte(`/** @module @public */
/** trailing notes */
`)

	doc, err := NewLeadingDocParser().LeadingDoc(src)
	require.NoError(t, err)
	assert.Equal(t, "@module @public", doc)
}

func TestLeadingDoc_SkipsShebangAndLineComments(t *testing.T) {
	src := []byte(`#!/usr/bin/env node
// eslint-disable some-rule
/** @module @public @bin pw */
main();
`)

	doc, err := NewLeadingDocParser().LeadingDoc(src)
	require.NoError(t, err)
	assert.Equal(t, "@module @public @bin pw", doc)
}

func TestLeadingDoc_PlainBlockCommentIsNotDoc(t *testing.T) {
	src := []byte(`/* just a comment */
export const x = 1;
`)

	doc, err := NewLeadingDocParser().LeadingDoc(src)
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestLeadingDoc_NoDocAtAll(t *testing.T) {
	doc, err := NewLeadingDocParser().LeadingDoc([]byte("export const x = 1;\n"))
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestLeadingDoc_StripsByteOrderMark(t *testing.T) {
	src := []byte("\uFEFF/** @module @public */\nexport {};\n")

	doc, err := NewLeadingDocParser().LeadingDoc(src)
	require.NoError(t, err)
	assert.Equal(t, "@module @public", doc)
}

func TestLeadingDoc_UnterminatedBlockComment(t *testing.T) {
	_, err := NewLeadingDocParser().LeadingDoc([]byte("/** never closed\nexport {};\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated")
}

func TestLeadingDoc_DocAfterStatementIsIgnored(t *testing.T) {
	src := []byte(`const x = 1;
/** @module @public */
`)

	doc, err := NewLeadingDocParser().LeadingDoc(src)
	require.NoError(t, err)
	assert.Empty(t, doc)
}
