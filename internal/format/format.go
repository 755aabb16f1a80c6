// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Docspec - Docspec is a structured-document convention and toolchain for
keeping markdown documentation honest. It parses docspec files, validates
that their sections contain genuine content rather than unmodified
boilerplate, and scaffolds new docspec instances from a canonical format
definition.

Copyright (C) 2025  Docspec Authors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package format models the canonical docspec format definition: the ordered
// required sections, their boilerplate, the generation template, and the
// optional shared agent-instructions block.
package format

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/docspec-io/docspec/internal/markdown"
)

// Placeholder tokens recognized in the format-definition document. The target
// placeholder may appear anywhere in the preamble, boilerplate, or
// agent-instructions block; the other two are appended to the template by
// ParseFormat and consumed by the generator.
const (
	TargetPlaceholder   = "{{TARGET_FILE}}"
	AgentPlaceholder    = "{{AGENT_INSTRUCTIONS}}"
	SectionsPlaceholder = "{{SECTIONS}}"
)

// SectionSpec is one required section of the format: its ordering number,
// its canonical name, and the reference boilerplate customization is
// measured against. Sections are addressed by Name; Number only orders them.
type SectionSpec struct {
	Number      int
	Name        string
	Boilerplate string
}

// Definition is the parsed format-definition document.
type Definition struct {
	// Sections are the required sections in ascending Number order.
	Sections []SectionSpec
	// Template is the document skeleton: the preamble of the format file
	// with the agent-instructions and section-list placeholders appended.
	Template string
	// AgentInstructions is the shared pass-through block, or "" when the
	// format defines none.
	AgentInstructions string
}

// Section returns the section spec with the given canonical name, or nil.
func (d *Definition) Section(name string) *SectionSpec {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i]
		}
	}
	return nil
}

var (
	numberedHeadingRe = regexp.MustCompile(`^#{2,}\s+(\d+)\.\s+(.+)$`)
	anyHeadingRe      = regexp.MustCompile(`^#{2,}\s+(.+)$`)
)

// ParseFormat interprets text as a format-definition document. Only numbered
// headings ("## <digits>. <title>") delimit required sections; at least one
// must exist. Everything strictly before the first numbered heading, or
// before the agent-instructions heading if that comes first, becomes the
// template preamble. Duplicate section numbers are not rejected; they sort
// deterministically but their relative order is unspecified.
func ParseFormat(text string) (*Definition, error) {
	lines := strings.Split(text, "\n")

	type headingMark struct {
		line     int // index into lines
		numbered bool
		agent    bool
		number   int
		title    string
	}
	var marks []headingMark
	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if m := numberedHeadingRe.FindStringSubmatch(trimmed); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil && n > 0 {
				marks = append(marks, headingMark{line: i, numbered: true, number: n, title: strings.TrimSpace(m[2])})
				continue
			}
		}
		if m := anyHeadingRe.FindStringSubmatch(trimmed); m != nil {
			title := strings.TrimSpace(m[1])
			marks = append(marks, headingMark{line: i, agent: title == markdown.AgentInstructionsMarker, title: title})
		}
	}

	firstBoundary := len(lines)
	for _, m := range marks {
		if m.numbered || m.agent {
			firstBoundary = m.line
			break
		}
	}

	var hasNumbered bool
	for _, m := range marks {
		if m.numbered {
			hasNumbered = true
			break
		}
	}
	if !hasNumbered {
		return nil, fmt.Errorf(`no numbered section headings found: the format file needs at least one heading matching "## <number>. <title>"`)
	}

	def := &Definition{
		Template: strings.TrimSpace(strings.Join(lines[:firstBoundary], "\n")) +
			"\n\n" + AgentPlaceholder + "\n\n" + SectionsPlaceholder + "\n",
	}

	for idx, m := range marks {
		if m.agent {
			// Body runs to the next heading of any kind.
			end := len(lines)
			if idx+1 < len(marks) {
				end = marks[idx+1].line
			}
			body := markdown.StripSeparators(strings.Join(lines[m.line+1:end], "\n"))
			if body != "" {
				def.AgentInstructions = body
			}
			continue
		}
		if !m.numbered {
			continue
		}
		// Boilerplate runs to the next numbered heading or end of document.
		end := len(lines)
		for _, later := range marks[idx+1:] {
			if later.numbered {
				end = later.line
				break
			}
		}
		def.Sections = append(def.Sections, SectionSpec{
			Number:      m.number,
			Name:        m.title,
			Boilerplate: markdown.StripSeparators(strings.Join(lines[m.line+1:end], "\n")),
		})
	}

	sort.SliceStable(def.Sections, func(i, j int) bool {
		return def.Sections[i].Number < def.Sections[j].Number
	})

	return def, nil
}
