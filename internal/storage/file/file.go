package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DMarby/utility-docs/internal/storage"
)

// Provider reads content documents from a directory
type Provider struct {
	root string
}

// New returns a new Provider instance for the directory at path
func New(path string) (*Provider, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%s: content path is not a directory", path)
	}

	return &Provider{
		root: path,
	}, nil
}

// Get returns the contents of a document
func (p *Provider) Get(ctx context.Context, name string) ([]byte, error) {
	// Names may not escape the content directory
	if !filepath.IsLocal(name) {
		return nil, storage.ErrNotFound
	}

	f, err := os.Open(filepath.Join(p.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return storage.ReadDocument(f)
}
