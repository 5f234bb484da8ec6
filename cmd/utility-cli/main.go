package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/DMarby/utility-docs/internal/clipboard"
	"github.com/DMarby/utility-docs/internal/clipboard/system"
	"github.com/DMarby/utility-docs/internal/cmd"
	"github.com/DMarby/utility-docs/internal/content"
	"github.com/DMarby/utility-docs/internal/content/builtin"
	"github.com/DMarby/utility-docs/internal/logger"
	"github.com/DMarby/utility-docs/internal/storage"
	fileStorage "github.com/DMarby/utility-docs/internal/storage/file"
	"github.com/DMarby/utility-docs/internal/ui"

	"github.com/jamiealquiza/envy"
	"go.uber.org/zap"
)

const usage = `usage: utility-cli [flags] <command>

commands:
  list                  list the documented utilities
  show <key>            show the documentation of a utility
  copy <key> <class>    copy a class name to the clipboard

flags:
`

// Comandline flags
var (
	loglevel = zap.LevelFlag("log-level", zap.WarnLevel, "log level (default \"warn\") (debug, info, warn, error, dpanic, panic, fatal)")

	// Content
	contentBackend  = flag.String("content", "builtin", "which content backend to use (builtin, file)")
	contentFilePath = flag.String("content-file-path", "./test/fixtures/content", "path to the content documents")
)

var errUsage = errors.New("invalid usage")

func main() {
	// Parse environment variables
	envy.Parse("UTILITYDOCS")

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}

	// Parse commandline flags
	flag.Parse()

	// Initialize the logger
	log := logger.New(*loglevel, logger.Console())
	defer log.Sync()

	ctx, stop := cmd.InterruptContext(context.Background())
	defer stop()

	registry, err := setupContent(ctx)
	if err != nil {
		log.Fatalf("error loading content: %s", err)
	}
	defer registry.Shutdown()

	app := &cli{
		Content: registry,
		Marker:  clipboard.New(system.Writer{}, log.Named("clipboard")),
		Out:     os.Stdout,
	}

	if err := app.Run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupContent(ctx context.Context) (*content.Registry, error) {
	var store storage.Provider
	var err error

	switch *contentBackend {
	case "builtin":
		store, err = builtin.Storage()
	case "file":
		store, err = fileStorage.New(*contentFilePath)
	default:
		err = fmt.Errorf("invalid content backend")
	}

	if err != nil {
		return nil, err
	}

	return content.New(ctx, store)
}

type cli struct {
	Content content.Provider
	Marker  *clipboard.Marker
	Out     io.Writer
}

// Run runs the command in args
func (c *cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch {
	case args[0] == "list" && len(args) == 1:
		return c.list(ctx)
	case args[0] == "show" && len(args) == 2:
		return c.show(ctx, args[1])
	case args[0] == "copy" && len(args) == 3:
		return c.copy(ctx, args[1], args[2])
	}

	return errUsage
}

func (c *cli) list(ctx context.Context) error {
	pages, err := c.Content.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	for _, page := range pages {
		fmt.Fprintf(w, "%s\t%s\t%s\n", page.Key, page.Title, page.Description)
	}

	return w.Flush()
}

func (c *cli) show(ctx context.Context, key string) error {
	page, err := c.Content.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	fmt.Fprintf(c.Out, "%s\n%s\n\n", page.Title, page.Description)

	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	for _, card := range ui.Grid("", page.Prefix, page.Utilities, c.Marker).Cards {
		fmt.Fprintf(w, "  %s\t%s\n", card.Class, card.Description)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if page.Playground != nil {
		fmt.Fprintf(c.Out, "\nPlayground options:")
		for _, option := range page.Playground.Options {
			fmt.Fprintf(c.Out, " %s", option)
		}
		fmt.Fprintln(c.Out)
	}

	if len(page.Examples) > 0 {
		gallery := ui.Gallery{Examples: page.Examples, Categories: page.Categories}
		fmt.Fprintf(c.Out, "\nExamples:")
		for _, button := range gallery.Buttons(ui.AllCategories) {
			fmt.Fprintf(c.Out, " %s", button.Label)
		}
		fmt.Fprintln(c.Out)

		for _, example := range page.Examples {
			fmt.Fprintf(c.Out, "  - %s\n", example.Title)
		}
	}

	if len(page.Mistakes) > 0 {
		fmt.Fprintf(c.Out, "\nCommon mistakes:\n")
		for _, mistake := range ui.MistakeList(page.Mistakes) {
			fmt.Fprintf(c.Out, "  [%s] %s: %s\n", mistake.Severity, mistake.Title, mistake.Reason)
		}
	}

	if len(page.Tips) > 0 {
		fmt.Fprintf(c.Out, "\nTips:\n")
		for _, tip := range page.Tips {
			fmt.Fprintf(c.Out, "  %s %s\n", tip.Lead, tip.Body)
		}
	}

	return nil
}

// copy copies a class of a page, and shows the confirmation until the marker clears
func (c *cli) copy(ctx context.Context, key, class string) error {
	page, err := c.Content.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	found := false
	for _, item := range page.Utilities {
		if item.Class == class {
			found = true
			break
		}
	}

	if !found {
		return fmt.Errorf("%s is not a %s utility", class, page.Title)
	}

	cleared := make(chan struct{})
	c.Marker.OnChange = func(copied string) {
		if copied == "" {
			close(cleared)
		}
	}

	if !c.Marker.Copy(ctx, class) {
		return fmt.Errorf("could not copy %s to the clipboard", class)
	}

	fmt.Fprintf(c.Out, "Copied! %s\n", class)

	select {
	case <-cleared:
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * clipboard.ClearDelay):
	}

	return nil
}
