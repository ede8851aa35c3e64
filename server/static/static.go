// Package static embeds the browser client and the menu model.
package static

import (
	"embed"
	"io/fs"
)

//go:embed index.html style.css game.js models
var files embed.FS

// Files is the client with paths relative to the site root.
var Files fs.FS = files
