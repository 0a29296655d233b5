// Package pipeline orchestrates résumé scoring: one job description is prepared once,
// then every résumé is analyzed against it concurrently and the batch is ranked.
package pipeline

import (
	"fmt"

	"github.com/Priyagaggar/TalentLens-AI/internal/matching"
	"github.com/Priyagaggar/TalentLens-AI/internal/ranking"
	"github.com/Priyagaggar/TalentLens-AI/internal/similarity"
	"github.com/Priyagaggar/TalentLens-AI/internal/skills"
)

// DefaultWorkers bounds how many résumés are analyzed at once
const DefaultWorkers = 4

// Options holds the tunables of one scoring run
type Options struct {
	ExtractionThreshold int
	GapThreshold        int
	MaxFeatures         int
	Weights             ranking.Weights
	ExperienceCap       float64
	Workers             int
}

// DefaultOptions returns thresholds 90/70, 500 features, weights 0.4/0.4/0.2 and a 10 year cap
func DefaultOptions() Options {
	return Options{
		ExtractionThreshold: skills.DefaultThreshold,
		GapThreshold:        matching.DefaultThreshold,
		MaxFeatures:         similarity.DefaultMaxFeatures,
		Weights:             ranking.DefaultWeights(),
		ExperienceCap:       ranking.DefaultExperienceCap,
		Workers:             DefaultWorkers,
	}
}

// withDefaults fills zero values from DefaultOptions
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ExtractionThreshold == 0 {
		o.ExtractionThreshold = d.ExtractionThreshold
	}
	if o.GapThreshold == 0 {
		o.GapThreshold = d.GapThreshold
	}
	if o.MaxFeatures == 0 {
		o.MaxFeatures = d.MaxFeatures
	}
	if o.Weights == (ranking.Weights{}) {
		o.Weights = d.Weights
	}
	if o.ExperienceCap == 0 {
		o.ExperienceCap = d.ExperienceCap
	}
	if o.Workers == 0 {
		o.Workers = d.Workers
	}
	return o
}

// Validate rejects options no component can honor
func (o Options) Validate() error {
	if o.ExtractionThreshold < 0 || o.ExtractionThreshold > 100 {
		return fmt.Errorf("extraction threshold must be within 0-100, got %d", o.ExtractionThreshold)
	}
	if o.GapThreshold < 0 || o.GapThreshold > 100 {
		return fmt.Errorf("gap threshold must be within 0-100, got %d", o.GapThreshold)
	}
	if o.MaxFeatures < 0 {
		return fmt.Errorf("max features must not be negative, got %d", o.MaxFeatures)
	}
	if o.ExperienceCap < 0 {
		return fmt.Errorf("experience cap must not be negative, got %g", o.ExperienceCap)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	return ranking.ValidateWeights(o.Weights)
}
