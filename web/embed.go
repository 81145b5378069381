// Package web holds the directory's templates and static assets.
package web

import "embed"

// Templates embeds the layout, partial and page templates.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static embeds the stylesheet served under /static/.
//
//go:embed static/css/*.css
var Static embed.FS
