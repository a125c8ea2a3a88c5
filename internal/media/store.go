package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store places uploaded video artifacts on disk. Every save gets a freshly
// generated unique name, so re-recording an answer never overwrites a
// previously stored file
type Store struct {
	dir     string
	baseURL string
}

// NewStore creates a media store writing into dir; stored files are
// referenced as baseURL/<name>
func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &Store{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save writes the artifact under a new unique name with the given extension
// (e.g. ".webm") and returns its access reference
func (s *Store) Save(ext string, r io.Reader) (string, error) {
	if ext == "" {
		ext = ".webm"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Dir returns the directory the store writes into
func (s *Store) Dir() string {
	return s.dir
}
