package embedded_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/DMarby/utility-docs/internal/storage"
	"github.com/DMarby/utility-docs/internal/storage/embedded"
)

func TestEmbedded(t *testing.T) {
	fsys := fstest.MapFS{
		"content/index.yaml": &fstest.MapFile{Data: []byte("pages: [cursor]\n")},
	}

	provider, err := embedded.New(fsys, "content")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Get a document by name", func(t *testing.T) {
		data, err := provider.Get(context.Background(), "index.yaml")
		if err != nil {
			t.Fatal(err)
		}

		if string(data) != "pages: [cursor]\n" {
			t.Errorf("wrong data %q", data)
		}
	})

	t.Run("Returns ErrNotFound on a nonexistant document", func(t *testing.T) {
		_, err := provider.Get(context.Background(), "cursor.yaml")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("wrong error %v", err)
		}
	})

	t.Run("Returns ErrNotFound on an invalid path", func(t *testing.T) {
		_, err := provider.Get(context.Background(), "../index.yaml")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("wrong error %v", err)
		}
	})
}
