package embedded

import (
	"context"
	"errors"
	"io/fs"

	"github.com/DMarby/utility-docs/internal/storage"
)

// Provider implements a document storage on top of a fs.FS, such as an embed.FS
type Provider struct {
	fsys fs.FS
}

// New returns a new Provider instance rooted at dir inside fsys
func New(fsys fs.FS, dir string) (*Provider, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}

	return &Provider{
		fsys: sub,
	}, nil
}

// Get returns the contents of a document
func (p *Provider) Get(ctx context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, storage.ErrNotFound
	}

	f, err := p.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return storage.ReadDocument(f)
}
