package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kg/pkg/graph"
	"kg/pkg/store"
)

func seedStore(t *testing.T) string {
	t.Helper()

	g := graph.New()
	_, _, noteA := g.EnsureScopePath("Physics", "Thermodynamics", "/notes/a.pdf")
	_, _, noteB := g.EnsureScopePath("Physics", "Thermodynamics", "/notes/b.pdf")
	g.MergeConcepts("Physics", "Thermodynamics", noteA, []string{"entropy", "heat"})
	g.MergeConcepts("Physics", "Thermodynamics", noteB, []string{"entropy"})
	g.SetRecordedHash(noteA, "aaa")
	g.SetRecordedHash(noteB, "bbb")

	path := filepath.Join(t.TempDir(), "knowledge_graph.json")
	s := store.NewFileStore(store.NewFileStoreParams{Path: path})
	if err := s.Save(g); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	t.Setenv("KG_STORE_PATH", path)
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandDefaultsToStdout(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.OutOrStdout() != os.Stdout {
		t.Errorf("root command reports do not default to stdout")
	}
	if cmd.ErrOrStderr() != os.Stderr {
		t.Errorf("root command errors do not default to stderr")
	}
}

func TestConceptsCommand(t *testing.T) {
	seedStore(t)

	out, err := runCommand(t, "concepts", "--subject", "Physics", "--unit", "Thermodynamics")
	if err != nil {
		t.Fatalf("concepts: %v", err)
	}

	entropy := strings.Index(out, "1. entropy")
	heat := strings.Index(out, "2. heat")
	if entropy == -1 || heat == -1 || heat < entropy {
		t.Errorf("concepts not listed in sorted order:\n%s", out)
	}
	if !strings.Contains(out, "Total concepts: 2") {
		t.Errorf("missing total count:\n%s", out)
	}
}

func TestConceptsCommandUnknownUnit(t *testing.T) {
	seedStore(t)

	out, err := runCommand(t, "concepts", "--subject", "Physics", "--unit", "Optics")
	if err != nil {
		t.Fatalf("concepts: %v", err)
	}
	if !strings.Contains(out, "No such unit.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRelatedCommand(t *testing.T) {
	seedStore(t)

	out, err := runCommand(t, "related", "--subject", "Physics", "--unit", "Thermodynamics", "Entropy")
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if !strings.Contains(out, "1. heat (shared notes: 1)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRelatedCommandUnknownConcept(t *testing.T) {
	seedStore(t)

	out, err := runCommand(t, "related", "--subject", "Physics", "--unit", "Thermodynamics", "phlogiston")
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if !strings.Contains(out, "Concept not found: phlogiston") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestStatusCommand(t *testing.T) {
	seedStore(t)

	out, err := runCommand(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}

	for _, want := range []string{
		"Subjects : 1",
		"Units    : 1",
		"Notes    : 2",
		"Concepts : 2",
		"Edges    : 3",
		" - Physics::Thermodynamics: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCommandEmptyStore(t *testing.T) {
	t.Setenv("KG_STORE_PATH", filepath.Join(t.TempDir(), "knowledge_graph.json"))

	out, err := runCommand(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Subjects : 0") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCommandsCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_graph.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write corrupt store: %v", err)
	}
	t.Setenv("KG_STORE_PATH", path)

	if _, err := runCommand(t, "status"); err == nil {
		t.Errorf("status succeeded on a corrupt store")
	}
}
