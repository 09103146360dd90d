package local

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/middlemost/podgen"
)

// FileService stores audio artifacts on the local filesystem.
type FileService struct {
	Path          string
	GenerateToken func() string
}

// NewFileService returns a new instance of FileService.
func NewFileService() *FileService {
	return &FileService{
		GenerateToken: podgen.GenerateToken,
	}
}

// GenerateName returns a collision-resistant artifact name with the given
// extension.
func (s *FileService) GenerateName(ext string) string {
	return "podcast_" + s.GenerateToken() + ext
}

// FindFileByName returns a file and a reader to its contents.
// The reader must be closed by the caller.
func (s *FileService) FindFileByName(ctx context.Context, name string) (*podgen.File, io.ReadCloser, error) {
	if name == "" {
		return nil, nil, podgen.ErrFilenameRequired
	} else if !podgen.IsValidFilename(name) {
		return nil, nil, podgen.ErrInvalidFilename
	}

	// Stat file.
	path := filepath.Join(s.Path, name)
	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	} else if err != nil {
		return nil, nil, err
	}

	// Open local file.
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	} else if err != nil {
		return nil, nil, err
	}

	f := &podgen.File{Name: name, Size: fi.Size()}

	return f, file, nil
}

// CreateFile creates a new file with the contents of r. The contents are
// written to a temporary file and renamed into place so a failed write never
// leaves a partial artifact behind.
func (s *FileService) CreateFile(ctx context.Context, f *podgen.File, r io.Reader) error {
	if f.Name == "" {
		return podgen.ErrFilenameRequired
	} else if !podgen.IsValidFilename(f.Name) {
		return podgen.ErrInvalidFilename
	}

	// Ensure parent path exists.
	if err := os.MkdirAll(s.Path, 0777); err != nil {
		return err
	}

	// Write contents to a temporary file next to the final path.
	tmp, err := os.CreateTemp(s.Path, "."+f.Name+"-")
	if err != nil {
		return err
	}

	n, err := io.Copy(tmp, r)
	if e := tmp.Close(); err == nil {
		err = e
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	// Move into place.
	path := filepath.Join(s.Path, f.Name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	f.Size = n

	return nil
}
