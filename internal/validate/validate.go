// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate checks docspec instance documents against the loaded
// format definition. Customization is measured purely by textual distance
// from the section's boilerplate; prose semantics are out of scope.
package validate

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/docspec-io/docspec/internal/format"
	"github.com/docspec-io/docspec/internal/markdown"
)

// minSectionLength is the rune count below which customized content is
// considered incomplete.
const minSectionLength = 50

// Result is the outcome of validating one docspec document. Valid holds iff
// Errors is empty.
type Result struct {
	Valid  bool
	Errors []string
}

// Validator checks docspec documents against one format definition.
// Construct with New and reuse freely; it holds no mutable state.
type Validator struct {
	def *format.Definition
}

// New returns a Validator bound to the given format definition.
func New(def *format.Definition) *Validator {
	return &Validator{def: def}
}

// ValidateFile reads and validates a docspec file. Read failures are
// reported inside the Result, never returned, so batch callers can continue
// past an unreadable file.
func (v *Validator) ValidateFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("Failed to read file: %v", err)}}
	}
	return v.Validate(string(data))
}

// Validate checks in-memory document text. Errors are ordered: missing
// required sections first, in the format's declared order, then per-section
// content defects in document order. Section-name matching is exact and
// case-sensitive. Sections not named by the format are ignored.
func (v *Validator) Validate(text string) Result {
	sections := markdown.ParseSections(text)

	present := make(map[string]bool, len(sections))
	for _, s := range sections {
		present[s.Name] = true
	}

	var errs []string
	for _, spec := range v.def.Sections {
		if !present[spec.Name] {
			errs = append(errs, fmt.Sprintf("Missing required section: %q", spec.Name))
		}
	}

	for _, s := range sections {
		spec := v.def.Section(s.Name)
		if spec == nil {
			continue
		}
		if defect := checkContent(s, spec); defect != "" {
			errs = append(errs, defect)
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// checkContent applies the content rules in order and reports the first
// matching defect, or "" when the section passes.
func checkContent(s markdown.Section, spec *format.SectionSpec) string {
	content := markdown.StripSeparators(s.Content)
	reference := strings.TrimSpace(spec.Boilerplate)

	switch {
	case content == "":
		return fmt.Sprintf("Section %q (line %d) is empty", s.Name, s.Line)
	case content == reference:
		return fmt.Sprintf("Section %q (line %d) contains only boilerplate text and has not been customized", s.Name, s.Line)
	case normalizeWhitespace(content) == normalizeWhitespace(reference):
		return fmt.Sprintf("Section %q (line %d) is too similar to boilerplate (only whitespace differences)", s.Name, s.Line)
	case utf8.RuneCountInString(content) < minSectionLength:
		return fmt.Sprintf("Section %q (line %d) appears to be incomplete (too short)", s.Name, s.Line)
	}
	return ""
}

// normalizeWhitespace collapses every whitespace run to a single space so
// that documents differing only in spacing or line wrapping compare equal.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
