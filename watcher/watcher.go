// Package watcher feeds documents dropped into an inbox directory through
// the podcast pipeline.
package watcher

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/middlemost/podgen"
	"golang.org/x/sync/errgroup"
)

// settleDelay is how long to wait after a create event before reading the
// file, so in-progress copies have a chance to finish.
const settleDelay = 500 * time.Millisecond

// Runner executes the pipeline for one document.
type Runner interface {
	Run(ctx context.Context, doc *podgen.Document) (*podgen.Podcast, error)
}

// Service watches an inbox directory and processes dropped documents.
// Processed inputs are moved to the archive directory. Multiple documents
// may be processed concurrently; a failed document only logs an error.
type Service struct {
	once    sync.Once
	closing chan struct{}
	done    chan struct{}
	group   *errgroup.Group

	Path        string // inbox directory
	ArchivePath string // processed inputs are moved here
	MaxParallel int

	Runner Runner

	LogOutput io.Writer
}

// NewService returns a new instance of Service.
func NewService() *Service {
	return &Service{
		closing:     make(chan struct{}),
		done:        make(chan struct{}),
		MaxParallel: 2,
		LogOutput:   io.Discard,
	}
}

// Open starts watching the inbox directory. Files already present in the
// inbox are processed first.
func (s *Service) Open() error {
	if err := os.MkdirAll(s.Path, 0777); err != nil {
		return err
	}
	if err := os.MkdirAll(s.ArchivePath, 0777); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(s.Path); err != nil {
		w.Close()
		return err
	}

	s.group = &errgroup.Group{}
	s.group.SetLimit(s.MaxParallel)

	// Pick up documents dropped while the service was down.
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		w.Close()
		return err
	}
	for _, e := range entries {
		if !e.IsDir() && isDocument(e.Name()) {
			s.schedule(filepath.Join(s.Path, e.Name()))
		}
	}

	go s.monitor(w)
	return nil
}

// Close stops the watcher and waits for in-flight documents to finish.
func (s *Service) Close() error {
	s.once.Do(func() { close(s.closing) })
	<-s.done
	return s.group.Wait()
}

// monitor consumes filesystem events until the service closes.
func (s *Service) monitor(w *fsnotify.Watcher) {
	defer close(s.done)
	defer w.Close()

	for {
		select {
		case <-s.closing:
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == fsnotify.Create && isDocument(event.Name) {
				s.schedule(event.Name)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(s.LogOutput, "watcher: error: err=%s\n", err)
		}
	}
}

// schedule queues one document for processing, bounded by MaxParallel.
func (s *Service) schedule(path string) {
	s.group.Go(func() error {
		time.Sleep(settleDelay)
		if err := s.process(path); err != nil {
			fmt.Fprintf(s.LogOutput, "watcher: process failed: path=%s err=%s\n", path, err)
		}
		return nil
	})
}

// process runs the pipeline for one dropped document and archives the input.
func (s *Service) process(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc := &podgen.Document{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}

	podcast, err := s.Runner.Run(context.Background(), doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.LogOutput, "watcher: podcast generated: file=%s id=%s audio=%s\n", doc.Name, podcast.ID, podcast.AudioPath)

	// Move the input out of the inbox so it is not processed again.
	return os.Rename(path, filepath.Join(s.ArchivePath, doc.Name))
}

// isDocument returns true if path has a supported document extension.
func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
		return true
	default:
		return false
	}
}
