package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspec-io/docspec/internal/format"
	"github.com/docspec-io/docspec/internal/markdown"
	"github.com/docspec-io/docspec/internal/testutil/golden"
	"github.com/docspec-io/docspec/internal/validate"
)

const sampleFormat = `# DOCSPEC: {{TARGET_FILE}}

Preamble text describing the convention.

## AGENT INSTRUCTIONS

Follow the sections below when editing {{TARGET_FILE}}.

## 1. Purpose

Describe what the document is for.

## 2. Update Triggers

List the changes that make the document stale.
`

func sampleDef(t *testing.T) *format.Definition {
	t.Helper()
	def, err := format.ParseFormat(sampleFormat)
	require.NoError(t, err)
	return def
}

func TestContent_Golden(t *testing.T) {
	got := New(sampleDef(t)).Content("README.md")
	golden.Assert(t, golden.TestdataDir(t), "readme_docspec", got)
}

func TestContent_Idempotent(t *testing.T) {
	g := New(sampleDef(t))
	assert.Equal(t, g.Content("README.md"), g.Content("README.md"))
}

func TestContent_TargetSubstitutedEverywhere(t *testing.T) {
	got := New(sampleDef(t)).Content("docs/GUIDE.md")

	assert.NotContains(t, got, format.TargetPlaceholder)
	assert.NotContains(t, got, format.AgentPlaceholder)
	assert.NotContains(t, got, format.SectionsPlaceholder)
	assert.True(t, strings.HasPrefix(got, "# DOCSPEC: docs/GUIDE.md\n"))
	assert.Contains(t, got, "Follow the sections below when editing docs/GUIDE.md.")
}

func TestContent_RoundTripsThroughParser(t *testing.T) {
	def := sampleDef(t)
	sections := markdown.ParseSections(New(def).Content("README.md"))

	require.Len(t, sections, len(def.Sections))
	for i, spec := range def.Sections {
		assert.Equal(t, spec.Name, sections[i].Name)
		assert.Equal(t, strings.TrimSpace(spec.Boilerplate), markdown.StripSeparators(sections[i].Content))
	}
}

func TestContent_FreshOutputFailsValidation(t *testing.T) {
	def := sampleDef(t)
	res := validate.New(def).Validate(New(def).Content("README.md"))

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, len(def.Sections))
	for _, e := range res.Errors {
		assert.Contains(t, e, "contains only boilerplate text")
	}
}

func TestContent_BlankRunsInBoilerplateSurviveVerbatim(t *testing.T) {
	def, err := format.ParseFormat("# DOCSPEC: {{TARGET_FILE}}\n\n## 1. A\n\nline1\n\n\n\nline2\n")
	require.NoError(t, err)

	got := New(def).Content("README.md")
	assert.Contains(t, got, "line1\n\n\n\nline2")

	// Byte-identical boilerplate must be reported as uncustomized, not as a
	// whitespace-only difference.
	res := validate.New(def).Validate(got)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "contains only boilerplate text")
}

func TestContent_NoAgentInstructions(t *testing.T) {
	def, err := format.ParseFormat("# DOCSPEC: {{TARGET_FILE}}\n\nIntro.\n\n## 1. A\n\nalpha\n")
	require.NoError(t, err)

	got := New(def).Content("README.md")
	assert.NotContains(t, got, markdown.AgentInstructionsMarker)
	assert.NotContains(t, got, "\n\n\n", "placeholder removal must not leave blank runs")
}

func TestWriteFile(t *testing.T) {
	g := New(sampleDef(t))
	path := filepath.Join(t.TempDir(), "nested", "dir", "README.docspec.md")

	require.NoError(t, g.WriteFile(path, "README.md"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, g.Content("README.md"), string(data))

	// Overwrites unconditionally.
	require.NoError(t, g.WriteFile(path, "OTHER.md"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# DOCSPEC: OTHER.md")
}
