// Package graph holds the scoped, provenance-tracked knowledge graph:
// a node arena keyed by scoped string keys, an ordered edge list, and the
// per-note content hash records that drive skip/rebuild decisions.
//
// The subject/unit/note hierarchy is encoded in the node keys themselves;
// the only persisted edges are "mentions" edges from notes to concepts,
// each stamped with the note key that contributed it.
package graph

import "sort"

// NodeType identifies the kind of node stored in the graph.
type NodeType string

const (
	NodeTypeSubject NodeType = "subject"
	NodeTypeUnit    NodeType = "unit"
	NodeTypeNote    NodeType = "note"
	NodeTypeConcept NodeType = "concept"
)

// RelationMentions links a note to a concept it mentions.
const RelationMentions = "mentions"

// Node is a graph node record. Identity lives in the node key; attributes
// are set once at creation and never mutated.
type Node struct {
	Type    NodeType `json:"type"`
	Name    string   `json:"name,omitempty"`
	Subject string   `json:"subject,omitempty"`
	Path    string   `json:"path,omitempty"`
	Term    string   `json:"term,omitempty"`
}

// Edge is a directed relation between two nodes. SourceNote records the
// note node key that caused the edge to exist and is the sole key used for
// provenance-based removal.
type Edge struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Relation   string `json:"relation"`
	SourceNote string `json:"source_note"`
}

// Graph is the in-memory form of the knowledge graph. It is reconstructed
// from the persisted store on every invocation; there is no long-lived
// server state.
type Graph struct {
	Nodes  map[string]Node
	Edges  []Edge
	Hashes map[string]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Nodes:  make(map[string]Node),
		Hashes: make(map[string]string),
	}
}

// RecordedHash returns the content fingerprint last recorded for a note.
func (g *Graph) RecordedHash(noteKey string) (string, bool) {
	hash, ok := g.Hashes[noteKey]
	return hash, ok
}

// SetRecordedHash records the content fingerprint for a note.
func (g *Graph) SetRecordedHash(noteKey, fingerprint string) {
	g.Hashes[noteKey] = fingerprint
}

// EnsureScopePath makes sure the subject, unit, and note nodes for a load
// exist, creating any that are absent. Existing nodes are left untouched.
// It returns the three node keys.
func (g *Graph) EnsureScopePath(subject, unit, notePath string) (string, string, string) {
	subjectKey := SubjectKey(subject)
	if _, ok := g.Nodes[subjectKey]; !ok {
		g.Nodes[subjectKey] = Node{Type: NodeTypeSubject, Name: subject}
	}

	unitKey := UnitKey(subject, unit)
	if _, ok := g.Nodes[unitKey]; !ok {
		g.Nodes[unitKey] = Node{Type: NodeTypeUnit, Subject: subject, Name: unit}
	}

	noteKey := NoteKey(notePath)
	if _, ok := g.Nodes[noteKey]; !ok {
		g.Nodes[noteKey] = Node{Type: NodeTypeNote, Path: notePath}
	}

	return subjectKey, unitKey, noteKey
}

// MergeConcepts ensures a concept node exists for each term and links the
// note to it with a "mentions" edge. Existing concept nodes are reused;
// duplicate edge tuples are not appended. It returns the number of concepts
// linked and the number of edges created.
func (g *Graph) MergeConcepts(subject, unit, noteKey string, terms []string) (int, int) {
	existing := make(map[Edge]bool, len(g.Edges))
	for _, e := range g.Edges {
		existing[e] = true
	}

	edgesCreated := 0
	for _, term := range terms {
		conceptKey := ConceptKey(subject, unit, term)
		if _, ok := g.Nodes[conceptKey]; !ok {
			g.Nodes[conceptKey] = Node{Type: NodeTypeConcept, Term: term}
		}

		edge := Edge{
			Source:     noteKey,
			Target:     conceptKey,
			Relation:   RelationMentions,
			SourceNote: noteKey,
		}
		if existing[edge] {
			continue
		}
		existing[edge] = true
		g.Edges = append(g.Edges, edge)
		edgesCreated++
	}

	return len(terms), edgesCreated
}

// PurgeNote removes every edge contributed by the given note, then deletes
// any concept node left with zero incident edges across the whole graph.
// Subject, unit, and note nodes are never deleted here.
func (g *Graph) PurgeNote(noteKey string) {
	kept := g.Edges[:0:0]
	for _, e := range g.Edges {
		if e.SourceNote != noteKey {
			kept = append(kept, e)
		}
	}
	g.Edges = kept

	incident := make(map[string]int)
	for _, e := range g.Edges {
		incident[e.Source]++
		incident[e.Target]++
	}
	for key, node := range g.Nodes {
		if node.Type == NodeTypeConcept && incident[key] == 0 {
			delete(g.Nodes, key)
		}
	}
}

// SortEdges orders the edge list by (source, target, relation, source_note)
// so that identical graphs always serialize byte-identically.
func (g *Graph) SortEdges() {
	sort.Slice(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		if a.Relation != b.Relation {
			return a.Relation < b.Relation
		}
		return a.SourceNote < b.SourceNote
	})
}
