// Package templates embeds the HTML page and partial templates.
package templates

import "embed"

//go:embed *.html pages/*.html partials/*.html
var FS embed.FS
