package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// MaxDocumentSize is the largest content document a backend will return
const MaxDocumentSize = 1 << 20

// Provider is an interface for retrieving content documents by name, e.g. "index.yaml"
type Provider interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// Errors
var (
	ErrNotFound = errors.New("document does not exist")
	ErrTooLarge = fmt.Errorf("document is larger than %d bytes", MaxDocumentSize)
)

// ReadDocument reads a document from r, failing with ErrTooLarge past MaxDocumentSize
func ReadDocument(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}

	if len(data) > MaxDocumentSize {
		return nil, ErrTooLarge
	}

	return data, nil
}
