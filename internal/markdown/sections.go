// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown splits semi-structured markdown documents into named,
// heading-delimited sections. It is a pure text transformation with no I/O;
// both the format loader and the validator consume it.
package markdown

import (
	"regexp"
	"strings"
)

// AgentInstructionsMarker is the heading text that introduces the optional
// pass-through agent-instructions block. The block is never part of the
// parsed section list.
const AgentInstructionsMarker = "AGENT INSTRUCTIONS"

// Section is one heading-delimited span of a document.
type Section struct {
	// Name is the heading text with any leading "<digits>. " prefix stripped.
	Name string
	// Content is the verbatim body between this heading and the next,
	// trimmed of leading and trailing whitespace. Separator lines ("---")
	// are kept; callers that compare content strip them themselves.
	Content string
	// Line is the 1-based line number of the heading.
	Line int
}

// lineKind classifies a single input line for the section state machine.
type lineKind int

const (
	lineBody lineKind = iota
	lineHeading
	lineAgentHeading
	lineSeparator
)

var (
	headingRe   = regexp.MustCompile(`^#{2,}\s+(.+)$`)
	numPrefixRe = regexp.MustCompile(`^\d+\.\s+`)
)

// classify tags a raw line. Heading detection happens on the trimmed line so
// indented headings still count.
func classify(raw string) (kind lineKind, headingText string) {
	trimmed := strings.TrimSpace(raw)
	if m := headingRe.FindStringSubmatch(trimmed); m != nil {
		text := strings.TrimSpace(m[1])
		if text == AgentInstructionsMarker {
			return lineAgentHeading, text
		}
		return lineHeading, text
	}
	if trimmed == "---" {
		return lineSeparator, ""
	}
	return lineBody, ""
}

// SectionName strips the optional numeric prefix from a heading's text, so
// "2. Update Triggers" and "Update Triggers" name the same section.
func SectionName(headingText string) string {
	return numPrefixRe.ReplaceAllString(headingText, "")
}

// ParseSections scans text top to bottom and returns its sections in document
// order. A heading is any line of two or more '#' characters followed by
// whitespace and text. The agent-instructions heading closes the previous
// section but contributes no section itself; its body is discarded. A
// document without headings yields an empty slice.
func ParseSections(text string) []Section {
	var (
		sections []Section
		current  *Section
		body     []string
		inAgent  bool
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *current)
		current = nil
		body = nil
	}

	for i, raw := range strings.Split(text, "\n") {
		kind, headingText := classify(raw)
		switch kind {
		case lineAgentHeading:
			flush()
			inAgent = true
		case lineHeading:
			flush()
			inAgent = false
			current = &Section{Name: SectionName(headingText), Line: i + 1}
		default:
			if inAgent || current == nil {
				continue
			}
			body = append(body, raw)
		}
	}
	flush()

	return sections
}

// StripSeparators removes separator-only lines ("---" after trimming) and
// trims the result. Content comparison against boilerplate always happens on
// this form.
func StripSeparators(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "---" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
