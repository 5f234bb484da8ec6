// Package web holds the page templates and static assets of the site.
package web

import (
	"embed"
	"io/fs"
)

//go:generate tailwindcss -c tailwind.config.js -i style.css -o embed/assets/css/style.css --minify
//go:embed embed
var Static embed.FS

// Templates returns the html templates
func Templates() fs.FS {
	return sub("embed/templates")
}

// Assets returns the static assets, served under /assets/
func Assets() fs.FS {
	return sub("embed/assets")
}

func sub(dir string) fs.FS {
	fsys, err := fs.Sub(Static, dir)
	if err != nil {
		// Only fails for invalid paths
		panic(err)
	}

	return fsys
}
