package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"kg/pkg/concepts"
	"kg/pkg/graph"
	"kg/pkg/store"
	"kg/pkg/textclean"
)

// fakeExtractor serves canned pages keyed by file base name.
type fakeExtractor struct {
	pages map[string][]string
	err   error
}

func (f *fakeExtractor) ExtractPages(_ context.Context, path string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[filepath.Base(path)], nil
}

func newTestPipeline(t *testing.T, extractor *fakeExtractor) (*Pipeline, *store.FileStore) {
	t.Helper()
	s := store.NewFileStore(store.NewFileStoreParams{
		Path: filepath.Join(t.TempDir(), "knowledge_graph.json"),
	})
	p := NewPipeline(NewPipelineParams{
		Extractor: extractor,
		Store:     s,
		Concepts:  concepts.NewExtractor(concepts.NewExtractorParams{MinFrequency: 2}),
	})
	return p, s
}

func TestLoadCreatesScopedConcept(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"entropy.pdf": {"Entropy increases. Entropy increases again."},
	}}
	p, s := newTestPipeline(t, extractor)

	report, err := p.Load(context.Background(), "Physics", "Thermodynamics", "entropy.pdf")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if report.Status != StatusLoaded {
		t.Errorf("status = %s, want LOADED", report.Status)
	}
	if report.Concepts != 1 || report.Edges != 1 {
		t.Errorf("report = %d concepts, %d edges, want 1 and 1", report.Concepts, report.Edges)
	}

	g, err := s.Load()
	if err != nil {
		t.Fatalf("store Load() error = %v", err)
	}
	if !g.HasNode("concept::Physics::Thermodynamics::entropy") {
		t.Errorf("concept node missing from saved graph")
	}
	if len(g.Edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(g.Edges))
	}
	noteKey := graph.NoteKey(report.NotePath)
	wantEdge := graph.Edge{
		Source:     noteKey,
		Target:     "concept::Physics::Thermodynamics::entropy",
		Relation:   graph.RelationMentions,
		SourceNote: noteKey,
	}
	if g.Edges[0] != wantEdge {
		t.Errorf("edge = %+v, want %+v", g.Edges[0], wantEdge)
	}
}

func TestLoadUnchangedContentSkips(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"entropy.pdf": {"Entropy increases. Entropy increases again."},
	}}
	p, s := newTestPipeline(t, extractor)

	if _, err := p.Load(context.Background(), "Physics", "Thermodynamics", "entropy.pdf"); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}

	report, err := p.Load(context.Background(), "Physics", "Thermodynamics", "entropy.pdf")
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if report.Status != StatusSkipped {
		t.Errorf("status = %s, want SKIPPED", report.Status)
	}
	if report.Concepts != 0 || report.Edges != 0 {
		t.Errorf("skip report = %d concepts, %d edges, want 0 and 0", report.Concepts, report.Edges)
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("store changed on skip")
	}
}

func TestLoadChangedContentRebuilds(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"note.pdf": {"Entropy increases. Entropy increases again."},
	}}
	p, s := newTestPipeline(t, extractor)

	if _, err := p.Load(context.Background(), "Physics", "Thermodynamics", "note.pdf"); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}

	extractor.pages["note.pdf"] = []string{"Energy flows. Energy flows again."}
	report, err := p.Load(context.Background(), "Physics", "Thermodynamics", "note.pdf")
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if report.Status != StatusLoaded {
		t.Errorf("status = %s, want LOADED", report.Status)
	}

	g, err := s.Load()
	if err != nil {
		t.Fatalf("store Load() error = %v", err)
	}
	if g.HasNode("concept::Physics::Thermodynamics::entropy") {
		t.Errorf("orphaned concept from previous content survived rebuild")
	}
	if !g.HasNode("concept::Physics::Thermodynamics::energy") {
		t.Errorf("concept from new content missing")
	}
	noteKey := graph.NoteKey(report.NotePath)
	for _, e := range g.Edges {
		if e.SourceNote == noteKey && e.Target == "concept::Physics::Thermodynamics::entropy" {
			t.Errorf("stale edge survived rebuild: %+v", e)
		}
	}
}

func TestLoadRebuildIsolation(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"a.pdf": {"Entropy increases. Entropy increases again."},
		"b.pdf": {"Entropy increases. Entropy increases again."},
	}}
	p, s := newTestPipeline(t, extractor)

	ctx := context.Background()
	if _, err := p.Load(ctx, "Physics", "Thermodynamics", "a.pdf"); err != nil {
		t.Fatalf("load a: %v", err)
	}
	if _, err := p.Load(ctx, "Math", "Information", "b.pdf"); err != nil {
		t.Fatalf("load b: %v", err)
	}

	// Rebuild a with different content; b's scope must be untouched.
	extractor.pages["a.pdf"] = []string{"Energy flows. Energy flows again."}
	if _, err := p.Load(ctx, "Physics", "Thermodynamics", "a.pdf"); err != nil {
		t.Fatalf("rebuild a: %v", err)
	}

	g, err := s.Load()
	if err != nil {
		t.Fatalf("store Load() error = %v", err)
	}
	if !g.HasNode("concept::Math::Information::entropy") {
		t.Errorf("rebuilding note a removed note b's concept")
	}
	if g.HasNode("concept::Physics::Thermodynamics::entropy") {
		t.Errorf("note a's old concept survived its rebuild")
	}
}

func TestLoadDeterministicAcrossStores(t *testing.T) {
	pages := map[string][]string{
		"note.pdf": {
			"Carnot Cycle defined\nhere with detail.\n7",
			"Carnot Cycle revisited. Entropy rises. Entropy falls.",
		},
	}

	run := func() ([]byte, *Report) {
		p, s := newTestPipeline(t, &fakeExtractor{pages: pages})
		report, err := p.Load(context.Background(), "Physics", "Thermodynamics", "note.pdf")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		data, err := os.ReadFile(s.Path())
		if err != nil {
			t.Fatalf("read store: %v", err)
		}
		return data, report
	}

	dataA, reportA := run()
	dataB, reportB := run()
	if !reflect.DeepEqual(reportA, reportB) {
		t.Errorf("reports differ: %+v vs %+v", reportA, reportB)
	}
	if string(dataA) != string(dataB) {
		t.Errorf("independent runs produced different store bytes")
	}
}

func TestLoadNoTextExtracted(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
	}{
		{name: "no pages", pages: nil},
		{name: "whitespace pages", pages: []string{"  ", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := &fakeExtractor{pages: map[string][]string{"empty.pdf": tt.pages}}
			p, s := newTestPipeline(t, extractor)

			_, err := p.Load(context.Background(), "Physics", "Thermodynamics", "empty.pdf")
			if !errors.Is(err, textclean.ErrNoTextExtracted) {
				t.Fatalf("Load() error = %v, want ErrNoTextExtracted", err)
			}

			// Failure before any mutation: the store file must not exist.
			if _, statErr := os.Stat(s.Path()); !errors.Is(statErr, os.ErrNotExist) {
				t.Errorf("store was written despite failed load")
			}
		})
	}
}

func TestStageError(t *testing.T) {
	cause := errors.New("boom")
	err := failAt(StageHashed, "/notes/a.pdf", cause)

	want := "boom (stage hashed, file /notes/a.pdf)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Errorf("StageError does not unwrap to its cause")
	}
}

func TestLoadExtractionFailureLeavesStoreUntouched(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"note.pdf": {"Entropy increases. Entropy increases again."},
	}}
	p, s := newTestPipeline(t, extractor)

	ctx := context.Background()
	if _, err := p.Load(ctx, "Physics", "Thermodynamics", "note.pdf"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}

	extractor.err = errors.New("pdftotext exploded")
	_, err = p.Load(ctx, "Physics", "Thermodynamics", "note.pdf")
	if err == nil {
		t.Fatalf("Load() succeeded despite extraction failure")
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageStart {
		t.Errorf("error = %v, want StageError at start", err)
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if string(before) != string(after) {
		t.Errorf("store mutated by failed load")
	}
}
