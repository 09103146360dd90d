package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/middlemost/podgen"
	"github.com/middlemost/podgen/watcher"
)

// Ensure a document dropped into the inbox is processed and archived.
func TestService_ProcessDroppedDocument(t *testing.T) {
	dir := t.TempDir()

	runner := &Runner{}
	runner.RunFn = func(ctx context.Context, doc *podgen.Document) (*podgen.Podcast, error) {
		if doc.Name != "notes.txt" {
			t.Errorf("unexpected document name: %q", doc.Name)
		}
		if string(doc.Data) != "hello" {
			t.Errorf("unexpected document data: %q", doc.Data)
		}
		return &podgen.Podcast{ID: "abc", Status: podgen.PodcastStatusCompleted}, nil
	}

	s := watcher.NewService()
	s.Path = filepath.Join(dir, "inbox")
	s.ArchivePath = filepath.Join(dir, "archive")
	s.Runner = runner

	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := os.WriteFile(filepath.Join(s.Path, "notes.txt"), []byte("hello"), 0666); err != nil {
		t.Fatal(err)
	}

	waitFor(t, 5*time.Second, func() bool {
		_, err := os.Stat(filepath.Join(s.ArchivePath, "notes.txt"))
		return err == nil
	})

	if runner.Calls() != 1 {
		t.Fatalf("unexpected run calls: %d", runner.Calls())
	}
}

// Ensure non-document files are ignored.
func TestService_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	runner := &Runner{}
	runner.RunFn = func(ctx context.Context, doc *podgen.Document) (*podgen.Podcast, error) {
		t.Errorf("unexpected run for: %q", doc.Name)
		return nil, nil
	}

	s := watcher.NewService()
	s.Path = filepath.Join(dir, "inbox")
	s.ArchivePath = filepath.Join(dir, "archive")
	s.Runner = runner

	if err := s.Open(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(s.Path, "image.png"), []byte("x"), 0666); err != nil {
		t.Fatal(err)
	}

	time.Sleep(time.Second)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if runner.Calls() != 0 {
		t.Fatalf("unexpected run calls: %d", runner.Calls())
	}
}

// Ensure documents already in the inbox at open time are processed.
func TestService_ProcessesExistingDocuments(t *testing.T) {
	dir := t.TempDir()
	inbox := filepath.Join(dir, "inbox")
	if err := os.MkdirAll(inbox, 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inbox, "old.txt"), []byte("old"), 0666); err != nil {
		t.Fatal(err)
	}

	runner := &Runner{}
	runner.RunFn = func(ctx context.Context, doc *podgen.Document) (*podgen.Podcast, error) {
		return &podgen.Podcast{ID: "abc"}, nil
	}

	s := watcher.NewService()
	s.Path = inbox
	s.ArchivePath = filepath.Join(dir, "archive")
	s.Runner = runner

	if err := s.Open(); err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	waitFor(t, 5*time.Second, func() bool {
		_, err := os.Stat(filepath.Join(s.ArchivePath, "old.txt"))
		return err == nil
	})
}

// waitFor polls fn until it returns true or the timeout elapses.
func waitFor(t *testing.T, timeout time.Duration, fn func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

// Runner is a mock pipeline runner that counts invocations.
type Runner struct {
	mu    sync.Mutex
	calls int

	RunFn func(ctx context.Context, doc *podgen.Document) (*podgen.Podcast, error)
}

func (r *Runner) Run(ctx context.Context, doc *podgen.Document) (*podgen.Podcast, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.RunFn(ctx, doc)
}

func (r *Runner) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
