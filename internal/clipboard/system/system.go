// Package system writes to the clipboard of the machine the process runs on.
package system

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available, e.g. xclip or pbcopy
var ErrUnsupported = errors.New("no clipboard utility available")

// Writer implements clipboard.Writer for the system clipboard
type Writer struct{}

// WriteText writes text to the system clipboard
func (Writer) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return clipboard.WriteAll(text)
}
