package graph

import (
	"sort"
	"strings"
)

// HasNode reports whether a node with the given key exists.
func (g *Graph) HasNode(key string) bool {
	_, ok := g.Nodes[key]
	return ok
}

// ConceptsInUnit returns the normalized terms of every concept scoped to
// the given (subject, unit) pair, sorted ascending.
func (g *Graph) ConceptsInUnit(subject, unit string) []string {
	prefix := conceptPrefix(subject, unit)

	var terms []string
	for key, node := range g.Nodes {
		if node.Type == NodeTypeConcept && strings.HasPrefix(key, prefix) {
			terms = append(terms, node.Term)
		}
	}
	sort.Strings(terms)

	return terms
}

// RelatedConcept pairs a concept term with the number of notes it shares
// with the queried concept.
type RelatedConcept struct {
	Term        string
	SharedNotes int
}

// RelatedConcepts finds concepts that share at least one contributing note
// with the named concept, ranked by shared-note count descending and term
// ascending on ties. The second return value is false when the concept
// does not exist in the given scope.
func (g *Graph) RelatedConcepts(subject, unit, term string) ([]RelatedConcept, bool) {
	conceptKey := ConceptKey(subject, unit, term)
	if !g.HasNode(conceptKey) {
		return nil, false
	}

	notes := make(map[string]bool)
	for _, e := range g.Edges {
		if e.Relation == RelationMentions && e.Target == conceptKey {
			notes[e.Source] = true
		}
	}

	counts := make(map[string]int)
	for _, e := range g.Edges {
		if e.Relation != RelationMentions || !notes[e.Source] || e.Target == conceptKey {
			continue
		}
		counts[e.Target]++
	}

	related := make([]RelatedConcept, 0, len(counts))
	for key, count := range counts {
		related = append(related, RelatedConcept{
			Term:        g.Nodes[key].Term,
			SharedNotes: count,
		})
	}
	sort.Slice(related, func(i, j int) bool {
		if related[i].SharedNotes != related[j].SharedNotes {
			return related[i].SharedNotes > related[j].SharedNotes
		}
		return related[i].Term < related[j].Term
	})

	return related, true
}

// UnitConceptCount pairs a unit key with the number of concepts scoped to it.
type UnitConceptCount struct {
	Unit     string
	Concepts int
}

// Stats summarizes the whole graph.
type Stats struct {
	Subjects        int
	Units           int
	Notes           int
	Concepts        int
	Edges           int
	ConceptsPerUnit []UnitConceptCount
}

// ComputeStats counts nodes by type and concepts per unit scope.
// Per-unit entries are sorted by concept count descending, unit ascending.
func (g *Graph) ComputeStats() Stats {
	stats := Stats{Edges: len(g.Edges)}

	perUnit := make(map[string]int)
	for key, node := range g.Nodes {
		switch node.Type {
		case NodeTypeSubject:
			stats.Subjects++
		case NodeTypeUnit:
			stats.Units++
		case NodeTypeNote:
			stats.Notes++
		case NodeTypeConcept:
			stats.Concepts++
			// concept::{subject}::{unit}::{term} -> {subject}::{unit}
			parts := strings.Split(key, keySeparator)
			if len(parts) >= 4 {
				perUnit[strings.Join(parts[1:3], keySeparator)]++
			}
		}
	}

	for unit, count := range perUnit {
		stats.ConceptsPerUnit = append(stats.ConceptsPerUnit, UnitConceptCount{
			Unit:     unit,
			Concepts: count,
		})
	}
	sort.Slice(stats.ConceptsPerUnit, func(i, j int) bool {
		if stats.ConceptsPerUnit[i].Concepts != stats.ConceptsPerUnit[j].Concepts {
			return stats.ConceptsPerUnit[i].Concepts > stats.ConceptsPerUnit[j].Concepts
		}
		return stats.ConceptsPerUnit[i].Unit < stats.ConceptsPerUnit[j].Unit
	})

	return stats
}
