// Package builtin embeds the catalog that ships with the binary.
package builtin

import (
	"embed"

	"github.com/DMarby/utility-docs/internal/storage/embedded"
)

//go:embed content
var content embed.FS

// Storage returns a storage provider serving the built-in content documents
func Storage() (*embedded.Provider, error) {
	return embedded.New(content, "content")
}
