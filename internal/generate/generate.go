// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate scaffolds docspec instance documents from the format
// definition. Generated documents contain pure boilerplate and are expected
// to fail validation until a human (or agent) customizes every section.
package generate

import (
	"fmt"
	"strings"

	"github.com/docspec-io/docspec/internal/format"
	"github.com/docspec-io/docspec/internal/markdown"
	"github.com/docspec-io/docspec/internal/render"
)

// Generator renders docspec documents for one format definition.
type Generator struct {
	def *format.Definition
}

// New returns a Generator bound to the given format definition.
func New(def *format.Definition) *Generator {
	return &Generator{def: def}
}

// Content renders a complete docspec document for the given target
// identifier. It is a pure function of the definition and the argument:
// identical inputs produce byte-identical output. Section boilerplate is
// rendered verbatim so that a fresh document compares equal to it.
func (g *Generator) Content(target string) string {
	doc := strings.ReplaceAll(g.def.Template, format.TargetPlaceholder, target)

	if g.def.AgentInstructions == "" {
		// Remove the placeholder together with its trailing blank line.
		doc = strings.Replace(doc, format.AgentPlaceholder+"\n\n", "", 1)
	} else {
		body := strings.ReplaceAll(g.def.AgentInstructions, format.TargetPlaceholder, target)
		doc = strings.Replace(doc, format.AgentPlaceholder, render.Header(2, markdown.AgentInstructionsMarker)+body, 1)
	}

	parts := make([]string, 0, len(g.def.Sections))
	for _, s := range g.def.Sections {
		boilerplate := strings.ReplaceAll(s.Boilerplate, format.TargetPlaceholder, target)
		parts = append(parts, fmt.Sprintf("## %d. %s\n\n%s", s.Number, s.Name, boilerplate))
	}
	doc = strings.Replace(doc, format.SectionsPlaceholder, strings.Join(parts, "\n\n"), 1)

	return strings.TrimSpace(doc) + "\n"
}

// WriteFile renders the document and writes it to path, creating parent
// directories as needed. An existing file is overwritten unconditionally.
func (g *Generator) WriteFile(path, target string) error {
	return render.AtomicWrite(path, []byte(g.Content(target)))
}
