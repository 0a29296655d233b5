// Package dictionary loads the categorized skill reference data used for extraction.
package dictionary

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Priyagaggar/TalentLens-AI/internal/schemas"
	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

//go:embed data/skills.json
var defaultSkills []byte

// LoadError is returned when a skill dictionary is missing, malformed or inconsistent.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skill dictionary %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("skill dictionary %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Dictionary is an immutable set of skill entries grouped by category.
// It is safe for concurrent use once constructed.
type Dictionary struct {
	categories  []string
	entries     map[string][]types.SkillEntry
	fingerprint string
}

// Default returns the dictionary compiled into the binary.
func Default() (*Dictionary, error) {
	return parse("(embedded)", defaultSkills)
}

// Load reads and validates a dictionary JSON file.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return parse(path, data)
}

// Parse validates and builds a dictionary from raw JSON.
func Parse(data []byte) (*Dictionary, error) {
	return parse("(bytes)", data)
}

func parse(source string, data []byte) (*Dictionary, error) {
	if err := schemas.Validate(schemas.SkillDictionary, data); err != nil {
		return nil, &LoadError{Source: source, Message: "does not match schema", Cause: err}
	}

	var raw map[string][]types.SkillEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid JSON", Cause: err}
	}

	d := &Dictionary{
		categories: make([]string, 0, len(raw)),
		entries:    make(map[string][]types.SkillEntry, len(raw)),
	}

	for category, list := range raw {
		seen := make(map[string]bool, len(list))
		entries := make([]types.SkillEntry, 0, len(list))
		for _, entry := range list {
			entry.Name = strings.TrimSpace(entry.Name)
			key := strings.ToLower(entry.Name)
			if seen[key] {
				return nil, &LoadError{
					Source:  source,
					Message: fmt.Sprintf("duplicate skill %q in category %q", entry.Name, category),
				}
			}
			seen[key] = true

			aliases := make([]string, 0, len(entry.Aliases))
			for _, alias := range entry.Aliases {
				if alias = strings.TrimSpace(alias); alias != "" {
					aliases = append(aliases, alias)
				}
			}
			entry.Aliases = aliases
			entry.Category = category
			entries = append(entries, entry)
		}
		d.categories = append(d.categories, category)
		d.entries[category] = entries
	}
	sort.Strings(d.categories)

	// encoding/json writes map keys sorted, so equal content hashes equally
	canonical, err := json.Marshal(d.entries)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "failed to fingerprint", Cause: err}
	}
	sum := sha256.Sum256(canonical)
	d.fingerprint = hex.EncodeToString(sum[:8])

	return d, nil
}

// Categories returns the category names in sorted order
func (d *Dictionary) Categories() []string {
	out := make([]string, len(d.categories))
	copy(out, d.categories)
	return out
}

// Entries returns the skills of one category in file order
func (d *Dictionary) Entries(category string) []types.SkillEntry {
	return d.entries[category]
}

// Len returns the number of skills across all categories
func (d *Dictionary) Len() int {
	n := 0
	for _, entries := range d.entries {
		n += len(entries)
	}
	return n
}

// Fingerprint identifies the dictionary content; it changes whenever any entry changes.
func (d *Dictionary) Fingerprint() string {
	return d.fingerprint
}
