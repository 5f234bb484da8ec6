package file_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DMarby/utility-docs/internal/storage"
	"github.com/DMarby/utility-docs/internal/storage/file"
)

func TestFile(t *testing.T) {
	provider, err := file.New("../../../test/fixtures/content")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Get a document by name", func(t *testing.T) {
		buf, err := provider.Get(context.Background(), "index.yaml")
		if err != nil {
			t.Fatal(err)
		}

		resultFixture, _ := os.ReadFile("../../../test/fixtures/content/index.yaml")
		if !reflect.DeepEqual(buf, resultFixture) {
			t.Error("document data doesn't match")
		}
	})

	t.Run("Returns error on a nonexistant path", func(t *testing.T) {
		_, err := file.New("")
		if err == nil {
			t.FailNow()
		}
	})

	t.Run("Returns error when the path is a file", func(t *testing.T) {
		_, err := file.New("../../../test/fixtures/content/index.yaml")
		if err == nil {
			t.FailNow()
		}
	})

	t.Run("Returns ErrNotFound on a nonexistant document", func(t *testing.T) {
		_, err := provider.Get(context.Background(), "nonexistant.yaml")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("wrong error %v", err)
		}
	})

	t.Run("Returns ErrNotFound for paths outside the directory", func(t *testing.T) {
		_, err := provider.Get(context.Background(), "../fixtures/content/index.yaml")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("wrong error %v", err)
		}
	})
}

func TestFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "huge.yaml"), bytes.Repeat([]byte("a"), storage.MaxDocumentSize+1), 0o644); err != nil {
		t.Fatal(err)
	}

	provider, err := file.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = provider.Get(context.Background(), "huge.yaml")
	if !errors.Is(err, storage.ErrTooLarge) {
		t.Fatalf("wrong error %v", err)
	}
}
