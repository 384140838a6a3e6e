// Package persona maps free-text persona and job descriptions onto weighted
// keyword profiles used by the relevance scorer.
package persona

import (
	"strings"
)

// Profile is the weighted keyword model for one analysis run. Built once,
// immutable afterward, safe to share across concurrent scoring workers.
// JobTerms is a labeled subset of Keywords so job alignment can be weighted
// independently of generic persona affinity.
type Profile struct {
	RawPersona string
	RawJob     string
	Category   string
	Keywords   map[string]float64
	JobTerms   map[string]float64
}

// minOverlap is the least label/synonym overlap needed to claim an
// archetype; below it the profile degrades to custom term extraction.
const minOverlap = 1

// Resolve builds a profile from a persona description and a job
// description. Empty or unparseable input yields a minimal profile with no
// keywords rather than an error; scoring then runs on quality and position
// alone.
func Resolve(personaText, jobText string) *Profile {
	p := &Profile{
		RawPersona: personaText,
		RawJob:     jobText,
		Category:   "custom",
		Keywords:   make(map[string]float64),
		JobTerms:   make(map[string]float64),
	}

	if arch := matchArchetype(personaText); arch != nil {
		p.Category = arch.Name
		for _, kw := range arch.Keywords {
			p.Keywords[kw.Term] += kw.Weight
		}
	} else {
		// Custom persona: keywords come from the persona and job text
		// themselves.
		for term, w := range ExtractTerms(personaText) {
			p.Keywords[term] += w
		}
	}

	// Job terms always contribute, merged additively so job-specific
	// vocabulary is never silenced by a matched archetype.
	for _, preset := range jobPresets {
		if overlapCount(jobText, preset.Synonyms) > 0 {
			for _, kw := range preset.Keywords {
				p.JobTerms[kw.Term] += kw.Weight
			}
			break
		}
	}
	for term, w := range ExtractTerms(jobText) {
		p.JobTerms[term] += w
	}
	for term, w := range p.JobTerms {
		p.Keywords[term] += w
	}

	return p
}

// Empty reports whether the profile carries no keywords at all.
func (p *Profile) Empty() bool {
	return len(p.Keywords) == 0
}

// matchArchetype selects the archetype with the most label/synonym overlap
// against the persona text. Ties resolve to declaration order, first wins.
func matchArchetype(personaText string) *Archetype {
	best := -1
	bestOverlap := 0
	for i := range archetypes {
		n := overlapCount(personaText, archetypes[i].Synonyms)
		if n > bestOverlap {
			best = i
			bestOverlap = n
		}
	}
	if best < 0 || bestOverlap < minOverlap {
		return nil
	}
	return &archetypes[best]
}

// overlapCount counts how many of the given label terms occur in the text,
// case-insensitive, whole-word or whole-phrase.
func overlapCount(text string, labels []string) int {
	lower := " " + strings.Join(tokenize(text), " ") + " "
	n := 0
	for _, label := range labels {
		if strings.Contains(lower, " "+strings.ToLower(label)+" ") {
			n++
		}
	}
	return n
}
