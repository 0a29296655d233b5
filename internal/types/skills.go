// Package types provides type definitions for structured data used throughout the TalentLens scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// SkillEntry is a single canonical skill from the skill dictionary
type SkillEntry struct {
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases,omitempty"`
	Category string   `json:"-"`
}

// Variations returns the canonical name followed by every alias
func (e SkillEntry) Variations() []string {
	out := make([]string, 0, len(e.Aliases)+1)
	out = append(out, e.Name)
	out = append(out, e.Aliases...)
	return out
}

// SkillSet maps a dictionary category to the sorted canonical skill names found in a text.
// A SkillSet is built once by the extractor and treated as read-only afterwards.
type SkillSet map[string][]string

// Categories returns the category names in sorted order
func (s SkillSet) Categories() []string {
	cats := make([]string, 0, len(s))
	for cat := range s {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// Flatten returns every skill in category order, then name order.
func (s SkillSet) Flatten() []string {
	flat := make([]string, 0, s.Count())
	for _, cat := range s.Categories() {
		flat = append(flat, s[cat]...)
	}
	return flat
}

// Count returns the total number of skills across categories
func (s SkillSet) Count() int {
	n := 0
	for _, skills := range s {
		n += len(skills)
	}
	return n
}

// IsEmpty reports whether no skill was found in any category
func (s SkillSet) IsEmpty() bool {
	return s.Count() == 0
}
