// Package pipeline orchestrates one document load end to end: extract,
// clean, hash, then either skip or purge-and-rebuild the note's
// contribution to the graph.
//
// A load is one logical transaction. The store is loaded up front, every
// mutation happens on the in-memory graph, and Save is the final step, so
// a failure at any stage leaves the persisted state untouched.
package pipeline

import (
	"context"
	"path/filepath"

	"kg/pkg/concepts"
	"kg/pkg/graph"
	"kg/pkg/loader"
	"kg/pkg/logger"
	"kg/pkg/textclean"
)

// Status of a completed load.
type Status string

const (
	StatusLoaded  Status = "LOADED"
	StatusSkipped Status = "SKIPPED"
)

// Report summarizes one completed load.
type Report struct {
	Status   Status
	Subject  string
	Unit     string
	NotePath string
	Concepts int
	Edges    int
}

// GraphStore is the persistence surface the pipeline drives.
type GraphStore interface {
	Load() (*graph.Graph, error)
	Save(*graph.Graph) error
}

// Pipeline runs document loads. One invocation processes exactly one
// document synchronously; there is no internal parallelism.
type Pipeline struct {
	extractor loader.PageExtractor
	store     GraphStore
	concepts  *concepts.Extractor
}

// NewPipelineParams defines the collaborators a Pipeline is built from.
type NewPipelineParams struct {
	Extractor loader.PageExtractor
	Store     GraphStore
	Concepts  *concepts.Extractor
}

// NewPipeline creates a pipeline from its collaborators.
func NewPipeline(params NewPipelineParams) *Pipeline {
	return &Pipeline{
		extractor: params.Extractor,
		store:     params.Store,
		concepts:  params.Concepts,
	}
}

// Load ingests the document at path under the given (subject, unit) scope.
// Unchanged content is skipped without touching the store; changed content
// has the note's previous contribution purged before the new concepts are
// merged in.
func (p *Pipeline) Load(ctx context.Context, subject, unit, path string) (*Report, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, failAt(StageStart, path, err)
	}

	pages, err := p.extractor.ExtractPages(ctx, absPath)
	if err != nil {
		return nil, failAt(StageStart, absPath, err)
	}
	if len(pages) == 0 {
		return nil, failAt(StageTextExtracted, absPath, textclean.ErrNoTextExtracted)
	}
	logger.Debug("extracted pages", "file", absPath, "pages", len(pages))

	cleaned, err := textclean.Clean(pages)
	if err != nil {
		return nil, failAt(StageTextExtracted, absPath, err)
	}

	fingerprint := textclean.Fingerprint(cleaned)
	logger.Debug("cleaned text hashed", "file", absPath, "fingerprint", fingerprint)

	g, err := p.store.Load()
	if err != nil {
		return nil, failAt(StageHashed, absPath, err)
	}

	noteKey := graph.NoteKey(absPath)
	if recorded, ok := g.RecordedHash(noteKey); ok && recorded == fingerprint {
		logger.Info("content unchanged, skipping", "file", absPath)
		return &Report{
			Status:   StatusSkipped,
			Subject:  subject,
			Unit:     unit,
			NotePath: absPath,
		}, nil
	}

	g.PurgeNote(noteKey)
	g.EnsureScopePath(subject, unit, absPath)

	terms := p.concepts.Extract(cleaned)
	conceptCount, edgeCount := g.MergeConcepts(subject, unit, noteKey, terms)
	g.SetRecordedHash(noteKey, fingerprint)

	if err := p.store.Save(g); err != nil {
		return nil, failAt(StageRebuilding, absPath, err)
	}
	logger.Info("note loaded", "file", absPath, "concepts", conceptCount, "edges", edgeCount)

	return &Report{
		Status:   StatusLoaded,
		Subject:  subject,
		Unit:     unit,
		NotePath: absPath,
		Concepts: conceptCount,
		Edges:    edgeCount,
	}, nil
}
