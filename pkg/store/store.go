// Package store persists the knowledge graph as a single JSON document.
//
// An absent file is equivalent to an empty graph. Saves go through a
// write-to-temp-then-rename sequence so a crash mid-write never corrupts
// the previously valid state.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"kg/pkg/graph"
)

// ErrCorruptStore indicates the persisted file violates the expected
// schema. This is fatal; no automatic repair is attempted.
var ErrCorruptStore = errors.New("corrupt store")

// FileStore reads and writes the persisted graph at a fixed path.
// Concurrent invocations against the same path are not coordinated here
// and must be serialized by the caller.
type FileStore struct {
	path string
}

// NewFileStoreParams defines the configuration for creating a FileStore.
type NewFileStoreParams struct {
	Path string
}

// NewFileStore creates a store backed by the file at params.Path.
func NewFileStore(params NewFileStoreParams) *FileStore {
	return &FileStore{
		path: params.Path,
	}
}

// Path returns the store's file path.
func (s *FileStore) Path() string {
	return s.path
}

type persistedGraph struct {
	Nodes  map[string]graph.Node `json:"nodes"`
	Edges  []graph.Edge          `json:"edges"`
	Hashes map[string]string     `json:"hashes"`
}

// Load deserializes the persisted graph. A missing file yields an empty
// graph; a file that fails to parse or validate yields ErrCorruptStore.
func (s *FileStore) Load() (*graph.Graph, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return graph.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}

	var persisted persistedGraph
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	if err := validate(&persisted); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}

	g := graph.New()
	for key, node := range persisted.Nodes {
		g.Nodes[key] = node
	}
	g.Edges = persisted.Edges
	for key, hash := range persisted.Hashes {
		g.Hashes[key] = hash
	}

	return g, nil
}

// Save serializes the graph atomically: the JSON document is written to a
// temporary file in the store's directory and renamed over the target.
// Edges are sorted first so identical graphs produce byte-identical files.
func (s *FileStore) Save(g *graph.Graph) error {
	g.SortEdges()

	persisted := persistedGraph{
		Nodes:  g.Nodes,
		Edges:  g.Edges,
		Hashes: g.Hashes,
	}
	if persisted.Edges == nil {
		persisted.Edges = []graph.Edge{}
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".kg-store-*")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync store %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close store %s: %w", s.path, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod store %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename store %s: %w", s.path, err)
	}

	return nil
}

var validNodeTypes = map[graph.NodeType]bool{
	graph.NodeTypeSubject: true,
	graph.NodeTypeUnit:    true,
	graph.NodeTypeNote:    true,
	graph.NodeTypeConcept: true,
}

func validate(persisted *persistedGraph) error {
	for key, node := range persisted.Nodes {
		if key == "" {
			return errors.New("empty node key")
		}
		if !validNodeTypes[node.Type] {
			return fmt.Errorf("node %s has unknown type %q", key, node.Type)
		}
	}

	for i, edge := range persisted.Edges {
		if edge.Source == "" || edge.Target == "" || edge.Relation == "" || edge.SourceNote == "" {
			return fmt.Errorf("edge %d has missing fields", i)
		}
		sourceNote, ok := persisted.Nodes[edge.SourceNote]
		if !ok || sourceNote.Type != graph.NodeTypeNote {
			return fmt.Errorf("edge %d source_note %q is not a note node", i, edge.SourceNote)
		}
	}

	for key := range persisted.Hashes {
		node, ok := persisted.Nodes[key]
		if !ok || node.Type != graph.NodeTypeNote {
			return fmt.Errorf("hash record %q is not keyed by a note node", key)
		}
	}

	return nil
}
