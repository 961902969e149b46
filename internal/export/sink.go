// Package export writes workflow artifacts to disk and verifies them.
package export

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dbsmedya/synthflow/internal/logger"
	"github.com/dbsmedya/synthflow/internal/workflow"
)

// ErrChecksumMismatch is returned by Verify when file content differs from
// the recorded checksum.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Written describes one artifact that reached disk.
type Written struct {
	Name     string
	Path     string
	MIMEType string
	Bytes    int
	SHA256   string
}

// DirSink saves artifacts into a single directory.
type DirSink struct {
	dir    string
	logger *logger.Logger
}

// NewDirSink creates dir if needed and returns a sink writing into it.
func NewDirSink(dir string, log *logger.Logger) (*DirSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &DirSink{dir: dir, logger: log}, nil
}

// Dir returns the target directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// Write stores a under its own name. The file is written to a temporary
// name first and renamed so a partial file never carries the final name.
func (s *DirSink) Write(a workflow.Artifact) (Written, error) {
	name := filepath.Base(a.Name)
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		return Written{}, fmt.Errorf("invalid artifact name %q", a.Name)
	}
	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return Written{}, fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		return Written{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return Written{}, fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return Written{}, fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Written{}, fmt.Errorf("failed to save %s: %w", name, err)
	}

	w := Written{
		Name:     name,
		Path:     path,
		MIMEType: a.MIMEType,
		Bytes:    len(a.Data),
		SHA256:   Checksum(a.Data),
	}
	s.logger.Infow("Artifact written", "file", path, "bytes", w.Bytes, "sha256", w.SHA256)
	return w, nil
}

// WriteAll writes every artifact in order and stops at the first failure.
func (s *DirSink) WriteAll(artifacts ...workflow.Artifact) ([]Written, error) {
	out := make([]Written, 0, len(artifacts))
	for _, a := range artifacts {
		w, err := s.Write(a)
		if err != nil {
			return out, err
		}
		out = append(out, w)
	}
	return out, nil
}

// Checksum returns the hex sha256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify re-reads a written artifact and compares its checksum.
func Verify(w Written) error {
	data, err := os.ReadFile(w.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", w.Path, err)
	}

	if got := Checksum(data); got != w.SHA256 {
		return fmt.Errorf("%s: %w: expected %s, got %s", w.Name, ErrChecksumMismatch, w.SHA256, got)
	}
	return nil
}
